package seed

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
)

const (
	maxContentLength = 10000
	maxTagNameLength = 100
	maxPayloadBytes  = 65536
	maxPatchBytes    = 65536
)

// CaptureSeedInput holds the parameters for capturing a new seed.
type CaptureSeedInput struct {
	Content string
}

// Validate checks all fields and collects all errors.
func (i *CaptureSeedInput) Validate() error {
	var errs []domain.FieldError

	if i.Content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else if len(i.Content) > maxContentLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long (max 10000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateTagInput holds the parameters for creating a new tag.
type CreateTagInput struct {
	Name string
}

// Validate checks all fields and collects all errors.
func (i *CreateTagInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > maxTagNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 100)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AppendTransactionInput holds the parameters for appending one transaction
// to an existing entity's log.
type AppendTransactionInput struct {
	EntityID uuid.UUID
	Kind     domain.EntityKind
	Type     domain.TransactionType
	Data     json.RawMessage
}

// Validate checks all fields and collects all errors.
func (i *AppendTransactionInput) Validate() error {
	var errs []domain.FieldError

	if i.EntityID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "entity_id", Message: "required"})
	}
	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "invalid value"})
	} else if !i.Type.IsValidFor(i.Kind) {
		errs = append(errs, domain.FieldError{Field: "type", Message: "invalid value for " + i.Kind.String()})
	}
	if len(i.Data) == 0 {
		errs = append(errs, domain.FieldError{Field: "data", Message: "required"})
	} else if len(i.Data) > maxPayloadBytes {
		errs = append(errs, domain.FieldError{Field: "data", Message: "too large (max 64KiB)"})
	} else if !json.Valid(i.Data) {
		errs = append(errs, domain.FieldError{Field: "data", Message: "invalid JSON"})
	} else if i.Kind.IsValid() && i.Type.IsValidFor(i.Kind) {
		errs = append(errs, validatePayload(i.Type, i.Data)...)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// validatePayload checks the type-specific payload shape at the append
// boundary. Reducers are total and silently no-op on a malformed payload,
// so a broken row must be rejected here before it becomes a permanent log
// entry. Field names mirror the reducer payload structs.
func validatePayload(txType domain.TransactionType, data json.RawMessage) []domain.FieldError {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return []domain.FieldError{{Field: "data", Message: "must be a JSON object"}}
	}

	var errs []domain.FieldError
	requireString := func(key string) {
		var s string
		raw, ok := fields[key]
		if !ok || json.Unmarshal(raw, &s) != nil || s == "" {
			errs = append(errs, domain.FieldError{Field: "data." + key, Message: "required non-empty string"})
		}
	}

	switch txType {
	case domain.TransactionCreateSeed, domain.TransactionEditContent:
		requireString("content")
	case domain.TransactionAddTag, domain.TransactionRemoveTag:
		requireString("tag_id")
	case domain.TransactionAddCategory, domain.TransactionRemoveCategory:
		requireString("category")
	case domain.TransactionAddFollowup:
		requireString("followup_id")
		requireString("text")
	case domain.TransactionCompleteFollowup:
		requireString("followup_id")
	case domain.TransactionSetColor:
		// null clears the color; anything else must be a string.
		raw, ok := fields["color"]
		if !ok {
			errs = append(errs, domain.FieldError{Field: "data.color", Message: "required"})
		} else {
			var s *string
			if json.Unmarshal(raw, &s) != nil {
				errs = append(errs, domain.FieldError{Field: "data.color", Message: "must be a string or null"})
			}
		}
	case domain.TransactionCreateTag, domain.TransactionRenameTag:
		requireString("name")
	}
	return errs
}

// RecordEventInput holds the parameters for recording one overlay event.
// The patch must be well-formed JSON; whether it applies cleanly is decided
// at view time, not here.
type RecordEventInput struct {
	EntityID uuid.UUID
	Type     string
	Patch    json.RawMessage
	Enabled  bool
}

// Validate checks all fields and collects all errors.
func (i *RecordEventInput) Validate() error {
	var errs []domain.FieldError

	if i.EntityID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "entity_id", Message: "required"})
	}
	if i.Type == "" {
		errs = append(errs, domain.FieldError{Field: "type", Message: "required"})
	}
	if len(i.Patch) == 0 {
		errs = append(errs, domain.FieldError{Field: "patch", Message: "required"})
	} else if len(i.Patch) > maxPatchBytes {
		errs = append(errs, domain.FieldError{Field: "patch", Message: "too large (max 64KiB)"})
	} else if !json.Valid(i.Patch) {
		errs = append(errs, domain.FieldError{Field: "patch", Message: "invalid JSON"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListSeedsInput holds pagination parameters for listing seed views.
type ListSeedsInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i *ListSeedsInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
