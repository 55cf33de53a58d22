package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ashmarten/seedlog-backend/internal/config"
	"github.com/ashmarten/seedlog-backend/internal/domain"
)

func newTool() *Tool {
	return New(config.ToolConfig{MaxRedirects: 5})
}

func toolErr(t *testing.T, err error) *domain.ToolError {
	t.Helper()
	var te *domain.ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected *domain.ToolError, got %T: %v", err, err)
	}
	return te
}

func validationMsg(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T: %v", err, err)
	}
	if len(ve.Errors) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(ve.Errors))
	}
	return ve.Errors[0].Message
}

func TestExecute_HappyPath(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "hello body")
	}))
	defer srv.Close()

	got, err := newTool().Execute(context.Background(), []string{srv.URL})
	if err != nil {
		t.Fatalf("Execute: unexpected error: %v", err)
	}
	if got != "hello body" {
		t.Fatalf("expected body %q, got %q", "hello body", got)
	}
}

func TestExecute_URIValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"ftp scheme", []string{"ftp://example.com/file"}},
		{"bare host", []string{"example.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := newTool().Execute(context.Background(), tc.args)
			if msg := validationMsg(t, err); msg != "URI must start with http:// or https://" {
				t.Fatalf("unexpected message: %q", msg)
			}
		})
	}
}

func TestExecute_TimeoutValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		timeoutMs string
	}{
		{"negative", "-1"},
		{"above max", "400000"},
		{"not a number", "soon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := newTool().Execute(context.Background(), []string{"http://example.com", tc.timeoutMs})
			if msg := validationMsg(t, err); msg != "timeoutMs must be between 0 and 300000" {
				t.Fatalf("unexpected message: %q", msg)
			}
		})
	}
}

func TestExecute_HTTPError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTool().Execute(context.Background(), []string{srv.URL})
	te := toolErr(t, err)
	if te.Kind != domain.ToolErrorHTTP {
		t.Fatalf("expected http-error, got %s", te.Kind)
	}
	if te.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", te.StatusCode)
	}
	if te.StatusText != "Not Found" {
		t.Fatalf("expected status text %q, got %q", "Not Found", te.StatusText)
	}
}

func TestExecute_TimeoutIsNotGeneric(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := newTool().Execute(context.Background(), []string{srv.URL, "50"})
	te := toolErr(t, err)
	if te.Kind != domain.ToolErrorTimeout {
		t.Fatalf("expected timeout classification, got %s: %s", te.Kind, te.Message)
	}
}

func TestExecute_NetworkError(t *testing.T) {
	t.Parallel()

	// A closed server refuses the connection: request sent, no response.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTool().Execute(context.Background(), []string{url})
	te := toolErr(t, err)
	if te.Kind != domain.ToolErrorNetwork {
		t.Fatalf("expected network-error, got %s: %s", te.Kind, te.Message)
	}
}

func TestExecute_FollowsRedirects(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/middle", http.StatusFound)
	})
	mux.HandleFunc("/middle", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/end", http.StatusFound)
	})
	mux.HandleFunc("/end", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "made it")
	})

	got, err := newTool().Execute(context.Background(), []string{srv.URL + "/start"})
	if err != nil {
		t.Fatalf("Execute: unexpected error: %v", err)
	}
	if got != "made it" {
		t.Fatalf("expected body %q, got %q", "made it", got)
	}
}

func TestExecute_RedirectLimit(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	})

	_, err := newTool().Execute(context.Background(), []string{srv.URL + "/loop"})
	te := toolErr(t, err)
	if te.Kind != domain.ToolErrorNetwork {
		t.Fatalf("expected network-error for exceeded redirects, got %s: %s", te.Kind, te.Message)
	}
}
