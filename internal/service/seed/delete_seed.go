package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// DeleteSeed removes a seed and everything hanging off it: transaction log,
// events, musings, shown history, and finally the registry row. All in one
// transaction so a failure leaves the seed fully intact.
func (s *Service) DeleteSeed(ctx context.Context, id uuid.UUID) error {
	if _, err := s.seeds.GetByID(ctx, id); err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.events.DeleteByEntity(txCtx, id); err != nil {
			return fmt.Errorf("delete events: %w", err)
		}
		if _, err := s.txs.DeleteByEntity(txCtx, id); err != nil {
			return fmt.Errorf("delete transactions: %w", err)
		}
		if _, err := s.musings.DeleteBySeed(txCtx, id); err != nil {
			return fmt.Errorf("delete musings: %w", err)
		}
		if _, err := s.musings.DeleteShownBySeed(txCtx, id); err != nil {
			return fmt.Errorf("delete shown history: %w", err)
		}
		if err := s.seeds.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete seed row: %w", err)
		}

		s.log.Info("seed deleted", "seed_id", id)
		return nil
	})
}

// DeleteTag removes a tag, its log, and its events. Seeds referencing the
// tag keep the reference in their logs; projection simply yields a dangling
// tag id, which readers treat like any unknown tag.
func (s *Service) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tags.GetByID(ctx, id); err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.events.DeleteByEntity(txCtx, id); err != nil {
			return fmt.Errorf("delete events: %w", err)
		}
		if _, err := s.txs.DeleteByEntity(txCtx, id); err != nil {
			return fmt.Errorf("delete transactions: %w", err)
		}
		if err := s.tags.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete tag row: %w", err)
		}

		s.log.Info("tag deleted", "tag_id", id)
		return nil
	})
}

// ListTags returns all tag registry rows.
func (s *Service) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}
