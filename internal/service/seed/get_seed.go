package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
	"github.com/ashmarten/seedlog-backend/internal/patch"
	"github.com/ashmarten/seedlog-backend/internal/projection"
)

// seedProbe rejects overlay results that no longer decode as a seed state.
// An event that turns content into an object or tag_ids into a string would
// otherwise poison every later consumer of the view.
func seedProbe(doc json.RawMessage) error {
	var st domain.SeedState
	if err := json.Unmarshal(doc, &st); err != nil {
		return fmt.Errorf("result is not a valid seed state: %w", err)
	}
	return nil
}

func tagProbe(doc json.RawMessage) error {
	var st domain.TagState
	if err := json.Unmarshal(doc, &st); err != nil {
		return fmt.Errorf("result is not a valid tag state: %w", err)
	}
	return nil
}

// GetSeed builds the full view of one seed: log projection plus the enabled
// event overlay. Skipped events are reported in the view, not as errors.
func (s *Service) GetSeed(ctx context.Context, id uuid.UUID) (*SeedView, error) {
	row, err := s.seeds.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	txs, err := s.txs.ListByEntity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load transaction log: %w", err)
	}
	state, err := projection.ProjectSeed(txs)
	if err != nil {
		return nil, err
	}

	events, err := s.events.ListEnabledByEntity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	return s.buildSeedView(*row, *state, events)
}

func (s *Service) buildSeedView(row domain.Seed, state domain.SeedState, events []domain.Event) (*SeedView, error) {
	result, err := patch.ApplyEvents(state, events, seedProbe)
	if err != nil {
		return nil, fmt.Errorf("apply events: %w", err)
	}

	var final domain.SeedState
	if err := json.Unmarshal(result.Doc, &final); err != nil {
		return nil, fmt.Errorf("decode final state: %w", err)
	}

	view := &SeedView{
		Seed:          row,
		State:         final,
		AppliedEvents: eventsByID(events, result.Applied),
		SkippedEvents: result.Skipped,
	}

	for _, skipped := range result.Skipped {
		s.log.Warn("event skipped during overlay",
			"seed_id", row.ID, "event_id", skipped.EventID, "reason", skipped.Reason)
	}

	return view, nil
}

// GetTag builds the full view of one tag, mirroring GetSeed.
func (s *Service) GetTag(ctx context.Context, id uuid.UUID) (*TagView, error) {
	row, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	txs, err := s.txs.ListByEntity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load transaction log: %w", err)
	}
	state, err := projection.ProjectTag(txs)
	if err != nil {
		return nil, err
	}

	events, err := s.events.ListEnabledByEntity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	result, err := patch.ApplyEvents(*state, events, tagProbe)
	if err != nil {
		return nil, fmt.Errorf("apply events: %w", err)
	}

	var final domain.TagState
	if err := json.Unmarshal(result.Doc, &final); err != nil {
		return nil, fmt.Errorf("decode final state: %w", err)
	}

	return &TagView{
		Tag:           *row,
		State:         final,
		AppliedEvents: eventsByID(events, result.Applied),
		SkippedEvents: result.Skipped,
	}, nil
}

// ListSeeds returns one page of seed views. Seeds whose logs violate
// integrity are logged and left out of the page rather than failing it.
func (s *Service) ListSeeds(ctx context.Context, input ListSeedsInput) (*SeedPage, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	rows, total, err := s.seeds.List(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list seeds: %w", err)
	}

	page := &SeedPage{Seeds: make([]SeedView, 0, len(rows)), Total: total}
	for _, row := range rows {
		view, err := s.GetSeed(ctx, row.ID)
		if err != nil {
			if isIntegrityErr(err) {
				s.log.Warn("seed excluded from listing",
					"seed_id", row.ID, "error", err)
				continue
			}
			return nil, err
		}
		page.Seeds = append(page.Seeds, *view)
	}

	return page, nil
}

func isIntegrityErr(err error) bool {
	return errors.Is(err, domain.ErrIntegrity)
}

func eventsByID(events []domain.Event, ids []uuid.UUID) []domain.Event {
	byID := make(map[uuid.UUID]domain.Event, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}
	applied := make([]domain.Event, 0, len(ids))
	for _, id := range ids {
		if ev, ok := byID[id]; ok {
			applied = append(applied, ev)
		}
	}
	return applied
}
