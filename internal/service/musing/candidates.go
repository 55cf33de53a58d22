package musing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// NextCandidatesInput selects musings for display. Count caps the result;
// zero falls back to the configured maximum.
type NextCandidatesInput struct {
	SeedID        uuid.UUID
	TemplateTypes []domain.MusingTemplateType
	Count         int
}

// Validate checks all fields and collects all errors.
func (i NextCandidatesInput) Validate() error {
	var errs []domain.FieldError

	if i.SeedID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "seed_id", Message: "required"})
	}
	for _, tt := range i.TemplateTypes {
		if !tt.IsValid() {
			errs = append(errs, domain.FieldError{Field: "template_types", Message: "invalid value " + tt.String()})
		}
	}
	if i.Count < 0 {
		errs = append(errs, domain.FieldError{Field: "count", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// NextCandidates returns up to Count non-terminal musings eligible for
// display. A seed inside the shown-history exclusion window yields an empty
// list: the window is per seed, not per musing, so one showing rests the
// whole seed. When the store holds fewer than Count, the generator tops the
// list up, cycling through the requested template types.
func (s *Service) NextCandidates(ctx context.Context, input NextCandidatesInput) ([]domain.IdeaMusing, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.seeds.GetByID(ctx, input.SeedID); err != nil {
		return nil, err
	}

	blocked, err := s.musings.HasShownSince(ctx, input.SeedID, s.windowCutoff())
	if err != nil {
		return nil, fmt.Errorf("check exclusion window: %w", err)
	}
	if blocked {
		s.log.Debug("seed inside exclusion window", "seed_id", input.SeedID)
		return []domain.IdeaMusing{}, nil
	}

	count := input.Count
	if count == 0 || count > s.cfg.MaxCandidates {
		count = s.cfg.MaxCandidates
	}
	if count <= 0 {
		count = 10
	}

	candidates, err := s.musings.ListCandidates(ctx, input.SeedID, input.TemplateTypes, count)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	if len(candidates) < count && s.generator != nil {
		types := input.TemplateTypes
		if len(types) == 0 {
			types = []domain.MusingTemplateType{domain.MusingTemplateNumberedIdeas}
		}
		for i := 0; len(candidates) < count; i++ {
			created, genErr := s.GenerateMusing(ctx, input.SeedID, types[i%len(types)])
			if genErr != nil {
				s.log.Warn("candidate top-up failed",
					"seed_id", input.SeedID, "error", genErr)
				break
			}
			candidates = append(candidates, *created)
		}
	}
	return candidates, nil
}

// RecordShown marks the seed as shown on the given date, starting a fresh
// exclusion window. A zero date means today. Recording is day-granular;
// showing the same seed twice in one day writes two harmless rows, and a
// past date lets callers backfill history.
func (s *Service) RecordShown(ctx context.Context, seedID uuid.UUID, date time.Time) (*domain.ShownRecord, error) {
	if _, err := s.seeds.GetByID(ctx, seedID); err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = s.now()
	}

	rec, err := s.musings.RecordShown(ctx, &domain.ShownRecord{
		SeedID:    seedID,
		ShownDate: s.startOfDay(date),
	})
	if err != nil {
		return nil, fmt.Errorf("record shown: %w", err)
	}

	s.log.Info("musing shown recorded", "seed_id", seedID, "shown_date", rec.ShownDate)
	return rec, nil
}
