package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrIntegrity     = errors.New("integrity violation")
	ErrConflict      = errors.New("conflict")
	ErrSlugExhausted = errors.New("slug collision attempts exhausted")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// IntegrityError reports a transaction log that violates required invariants,
// e.g. a missing or duplicated creation transaction. Entities with such logs
// are excluded from normal reads and handled by the cleanup job; the log is
// never auto-repaired by guessing missing content.
type IntegrityError struct {
	EntityID uuid.UUID
	Kind     EntityKind
	Reason   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity: %s %s: %s", e.Kind, e.EntityID, e.Reason)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }

// NewIntegrityError creates an IntegrityError for an entity.
func NewIntegrityError(kind EntityKind, entityID uuid.UUID, reason string) *IntegrityError {
	return &IntegrityError{EntityID: entityID, Kind: kind, Reason: reason}
}

// PatchApplicationError reports a single event whose JSON patch failed to
// apply. It is isolated per event: the event is treated as inert and the
// remaining events are still applied.
type PatchApplicationError struct {
	EventID uuid.UUID
	Reason  string
}

func (e *PatchApplicationError) Error() string {
	return fmt.Sprintf("patch: event %s: %s", e.EventID, e.Reason)
}

// ToolErrorKind classifies an automation tool failure.
type ToolErrorKind string

const (
	ToolErrorTimeout ToolErrorKind = "timeout"
	ToolErrorHTTP    ToolErrorKind = "http-error"
	ToolErrorNetwork ToolErrorKind = "network-error"
	ToolErrorGeneric ToolErrorKind = "generic-error"
)

// ToolError is the structured failure result of an automation tool run.
// It is always returned as a value across the automation boundary, never
// raised as a panic; StatusCode and StatusText are set for http-error only.
type ToolError struct {
	Kind       ToolErrorKind
	Message    string
	StatusCode int
	StatusText string
}

func (e *ToolError) Error() string {
	if e.Kind == ToolErrorHTTP {
		return fmt.Sprintf("tool: %s: %d %s", e.Kind, e.StatusCode, e.StatusText)
	}
	return fmt.Sprintf("tool: %s: %s", e.Kind, e.Message)
}
