// Package fetch implements the bounded HTTP fetch automation tool: one URI
// in, the response body out, with a hard wall-clock timeout and structured
// failure classification instead of raised faults.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ashmarten/seedlog-backend/internal/config"
	"github.com/ashmarten/seedlog-backend/internal/domain"
)

const (
	// DefaultTimeoutMs applies when the caller omits the second argument.
	DefaultTimeoutMs = 30000
	// MaxTimeoutMs is the inclusive upper bound on the caller's timeout.
	MaxTimeoutMs = 300000

	maxBodyBytes = 10 << 20 // 10 MiB
)

// Tool fetches a URI with a bounded timeout and redirect budget.
type Tool struct {
	client *http.Client
	cfg    config.ToolConfig
}

// New creates the fetch tool. The redirect budget comes from config and the
// per-call timeout from the arguments, so the embedded client carries no
// timeout of its own.
func New(cfg config.ToolConfig) *Tool {
	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = 5
	}
	return &Tool{
		cfg: cfg,
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

// Name identifies the tool in the automation registry.
func (t *Tool) Name() string { return "fetch" }

// Execute runs one fetch. Positional arguments: [uri, timeoutMs?].
// Argument faults return a validation error before any request is sent;
// execution faults return a *domain.ToolError classifying the failure.
func (t *Tool) Execute(ctx context.Context, args []string) (string, error) {
	uri, timeoutMs, err := parseArgs(args)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", &domain.ToolError{Kind: domain.ToolErrorGeneric, Message: err.Error()}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", classifyRequestError(err, timeoutMs)
	}
	defer resp.Body.Close()

	// Redirects were already followed; anything outside 2xx/3xx is a remote
	// error, reported with its status rather than thrown.
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", &domain.ToolError{
			Kind:       domain.ToolErrorHTTP,
			Message:    resp.Status,
			StatusCode: resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", classifyRequestError(err, timeoutMs)
	}

	return string(body), nil
}

func parseArgs(args []string) (uri string, timeoutMs int, err error) {
	if len(args) < 1 {
		return "", 0, domain.NewValidationError("uri", "URI must start with http:// or https://")
	}

	uri = args[0]
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		return "", 0, domain.NewValidationError("uri", "URI must start with http:// or https://")
	}

	timeoutMs = DefaultTimeoutMs
	if len(args) >= 2 {
		parsed, parseErr := strconv.Atoi(args[1])
		if parseErr != nil || parsed < 0 || parsed > MaxTimeoutMs {
			return "", 0, domain.NewValidationError("timeoutMs", "timeoutMs must be between 0 and 300000")
		}
		timeoutMs = parsed
	}

	return uri, timeoutMs, nil
}

// classifyRequestError maps a transport failure to its tool error kind.
// Deadline expiry wins over the wrapping url.Error so a slow remote is
// reported as a timeout, not a network fault.
func classifyRequestError(err error, timeoutMs int) *domain.ToolError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.ToolError{
			Kind:    domain.ToolErrorTimeout,
			Message: fmt.Sprintf("operation exceeded %dms", timeoutMs),
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &domain.ToolError{Kind: domain.ToolErrorNetwork, Message: urlErr.Error()}
	}

	return &domain.ToolError{Kind: domain.ToolErrorGeneric, Message: err.Error()}
}
