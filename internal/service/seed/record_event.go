package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
	"github.com/ashmarten/seedlog-backend/pkg/ctxutil"
)

// RecordEvent stores one overlay event against an existing entity. The patch
// only has to be well-formed JSON here; malformed or inapplicable patches are
// skipped at view time without blocking the rest of the overlay.
func (s *Service) RecordEvent(ctx context.Context, input RecordEventInput) (*domain.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.seeds.GetByID(ctx, input.EntityID); err != nil {
		if _, tagErr := s.tags.GetByID(ctx, input.EntityID); tagErr != nil {
			return nil, err
		}
	}

	created, err := s.events.Create(ctx, &domain.Event{
		EntityID:     input.EntityID,
		Type:         input.Type,
		Patch:        input.Patch,
		Enabled:      input.Enabled,
		AutomationID: ctxutil.AutomationIDFromCtx(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("record event: %w", err)
	}

	s.log.Debug("event recorded",
		"entity_id", input.EntityID, "event_id", created.ID, "type", created.Type)
	return created, nil
}

// ToggleEvent flips an event's enabled flag. The effect is retroactive:
// the next view is built as if a disabled event never existed, and
// re-enabling restores it at its original position in the overlay order.
func (s *Service) ToggleEvent(ctx context.Context, id uuid.UUID, enabled bool) (*domain.Event, error) {
	ev, err := s.events.SetEnabled(ctx, id, enabled)
	if err != nil {
		return nil, err
	}

	s.log.Info("event toggled", "event_id", id, "enabled", enabled)
	return ev, nil
}

// ListEvents returns an entity's full event log, enabled or not.
func (s *Service) ListEvents(ctx context.Context, entityID uuid.UUID) ([]domain.Event, error) {
	return s.events.ListByEntity(ctx, entityID)
}
