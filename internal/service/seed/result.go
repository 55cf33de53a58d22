package seed

import (
	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// SeedView is a projected seed with its event overlay applied.
type SeedView struct {
	// Seed is the registry row (id, slug, created_at).
	Seed domain.Seed
	// State is the final state: the log projection with enabled events
	// overlaid on top.
	State domain.SeedState
	// AppliedEvents lists the events whose patches applied cleanly, in order.
	AppliedEvents []domain.Event
	// SkippedEvents collects per-event overlay failures. A non-empty list is
	// not an error; those events were inert for this view.
	SkippedEvents []*domain.PatchApplicationError
}

// TagView is a projected tag with its event overlay applied.
type TagView struct {
	Tag           domain.Tag
	State         domain.TagState
	AppliedEvents []domain.Event
	SkippedEvents []*domain.PatchApplicationError
}

// SeedPage is one page of seed views plus the total registry count.
type SeedPage struct {
	Seeds []SeedView
	Total int
}
