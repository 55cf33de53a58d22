package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
	"github.com/ashmarten/seedlog-backend/pkg/ctxutil"
)

type createSeedPayload struct {
	Content string `json:"content"`
}

// CaptureSeed creates a new seed: one registry row plus its creation
// transaction, atomically. The slug is assigned best-effort afterwards;
// a failure there leaves the row for the backfill job.
func (s *Service) CaptureSeed(ctx context.Context, input CaptureSeedInput) (*domain.Seed, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(createSeedPayload{Content: input.Content})
	if err != nil {
		return nil, fmt.Errorf("marshal creation payload: %w", err)
	}

	var created *domain.Seed
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()

		var createErr error
		created, createErr = s.seeds.Create(txCtx, &domain.Seed{
			ID:        uuid.New(),
			CreatedAt: now,
		})
		if createErr != nil {
			return fmt.Errorf("create seed row: %w", createErr)
		}

		_, appendErr := s.txs.Append(txCtx, &domain.Transaction{
			EntityID:     created.ID,
			Kind:         domain.EntityKindSeed,
			Type:         domain.TransactionCreateSeed,
			Data:         data,
			CreatedAt:    now,
			AutomationID: ctxutil.AutomationIDFromCtx(ctx),
		})
		if appendErr != nil {
			return fmt.Errorf("append creation transaction: %w", appendErr)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	slug, slugErr := s.assignSlug(ctx, s.seeds, created.ID, input.Content)
	if slugErr != nil {
		s.log.Warn("slug assignment deferred to backfill",
			"seed_id", created.ID, "error", slugErr)
		return created, nil
	}
	created.Slug = &slug

	s.log.Info("seed captured", "seed_id", created.ID, "slug", slug)
	return created, nil
}
