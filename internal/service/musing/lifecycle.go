package musing

import (
	"context"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// Dismiss moves a musing to its dismissed terminal state. Dismissing a
// musing that is already dismissed or completed is a no-op, not an error:
// the first terminal transition wins and keeps its timestamp.
func (s *Service) Dismiss(ctx context.Context, id uuid.UUID) (*domain.IdeaMusing, error) {
	changed, err := s.musings.MarkDismissed(ctx, id, s.now().UTC())
	if err != nil {
		return nil, err
	}

	m, err := s.musings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changed {
		s.log.Info("musing dismissed", "musing_id", id)
	} else {
		s.log.Debug("dismiss on terminal musing ignored", "musing_id", id)
	}
	return m, nil
}

// Complete moves a musing to its completed terminal state, with the same
// idempotent no-op semantics as Dismiss.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*domain.IdeaMusing, error) {
	changed, err := s.musings.MarkCompleted(ctx, id, s.now().UTC())
	if err != nil {
		return nil, err
	}

	m, err := s.musings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changed {
		s.log.Info("musing completed", "musing_id", id)
	} else {
		s.log.Debug("complete on terminal musing ignored", "musing_id", id)
	}
	return m, nil
}

// GetMusing returns one musing by id.
func (s *Service) GetMusing(ctx context.Context, id uuid.UUID) (*domain.IdeaMusing, error) {
	return s.musings.GetByID(ctx, id)
}
