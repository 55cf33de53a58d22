// Package automation implements the tool registry and runner. Tools are
// narrow capabilities invoked with positional string arguments; failures come
// back as structured results the caller can record or surface. The runner
// never retries on the tool's behalf.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
	"github.com/ashmarten/seedlog-backend/pkg/ctxutil"
)

// Tool is the contract every automation tool implements. Execute validates
// its arguments before any side effect and classifies its own failures.
type Tool interface {
	Name() string
	Execute(ctx context.Context, args []string) (string, error)
}

// RunInput holds the parameters for one tool run.
type RunInput struct {
	ToolName string
	Args     []string
	// AutomationID attributes any writes the run performs downstream.
	AutomationID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *RunInput) Validate() error {
	var errs []domain.FieldError

	if i.ToolName == "" {
		errs = append(errs, domain.FieldError{Field: "tool_name", Message: "required"})
	}
	if i.AutomationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "automation_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RunResult is the outcome of one tool run. Exactly one of Output and
// ToolError is meaningful; a populated ToolError is a result, not a Go error.
type RunResult struct {
	Output    string
	ToolError *domain.ToolError
}

// Service implements the automation tool registry and runner.
type Service struct {
	log   *slog.Logger
	tools map[string]Tool
}

// NewService creates an automation service with the given tools registered.
func NewService(logger *slog.Logger, tools ...Tool) *Service {
	s := &Service{
		log:   logger.With("service", "automation"),
		tools: make(map[string]Tool, len(tools)),
	}
	for _, t := range tools {
		s.tools[t.Name()] = t
	}
	return s
}

// Register adds or replaces a tool.
func (s *Service) Register(tool Tool) {
	s.tools[tool.Name()] = tool
}

// Tools returns the registered tool names, sorted.
func (s *Service) Tools() []string {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes one tool. Argument validation faults and unknown tools are
// returned as errors; classified execution failures come back inside the
// result so the caller decides whether to retry, record, or surface them.
func (s *Service) Run(ctx context.Context, input RunInput) (*RunResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	tool, ok := s.tools[input.ToolName]
	if !ok {
		return nil, fmt.Errorf("tool %q: %w", input.ToolName, domain.ErrNotFound)
	}

	ctx = ctxutil.WithAutomationID(ctx, input.AutomationID)

	output, err := tool.Execute(ctx, input.Args)
	if err == nil {
		s.log.Info("tool run succeeded",
			"tool", input.ToolName, "automation_id", input.AutomationID)
		return &RunResult{Output: output}, nil
	}

	var toolErr *domain.ToolError
	if errors.As(err, &toolErr) {
		s.log.Warn("tool run failed",
			"tool", input.ToolName, "automation_id", input.AutomationID,
			"kind", toolErr.Kind, "message", toolErr.Message)
		return &RunResult{ToolError: toolErr}, nil
	}

	// Validation faults and anything else unclassified stay errors.
	return nil, err
}
