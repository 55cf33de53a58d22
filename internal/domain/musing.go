package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// IdeaMusing is an algorithmically generated prompt for a seed.
// Lifecycle: created → shown (logged to shown history) → terminal via
// dismissal or completion. The two terminal states are mutually exclusive;
// once terminal a musing is excluded from candidate selection forever.
type IdeaMusing struct {
	ID           uuid.UUID
	SeedID       uuid.UUID
	TemplateType MusingTemplateType
	Content      json.RawMessage
	CreatedAt    time.Time
	Dismissed    bool
	DismissedAt  *time.Time
	Completed    bool
	CompletedAt  *time.Time
}

// IsTerminal reports whether the musing has been dismissed or completed.
func (m *IdeaMusing) IsTerminal() bool {
	return m.Dismissed || m.Completed
}

// ShownRecord is one append-only entry in a seed's shown history.
// ShownDate carries day granularity only; it drives the exclusion-window
// computation and is never mutated.
type ShownRecord struct {
	ID        uuid.UUID
	SeedID    uuid.UUID
	ShownDate time.Time
	CreatedAt time.Time
}
