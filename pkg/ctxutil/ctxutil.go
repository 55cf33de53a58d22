package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	automationIDKey ctxKey = "automation_id"
	requestIDKey    ctxKey = "request_id"
)

// WithAutomationID marks the context as running on behalf of an automation.
// Transactions and events recorded under this context carry the id as their
// automation back-reference.
func WithAutomationID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, automationIDKey, id)
}

// AutomationIDFromCtx extracts the automation id from the context.
// Returns nil when the context is not automation-scoped.
func AutomationIDFromCtx(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(automationIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return nil
	}
	return &id
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
