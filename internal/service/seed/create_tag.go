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

type createTagPayload struct {
	Name string `json:"name"`
}

// CreateTag creates a new tag: one registry row plus its creation
// transaction, atomically. Slug assignment mirrors CaptureSeed.
func (s *Service) CreateTag(ctx context.Context, input CreateTagInput) (*domain.Tag, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(createTagPayload{Name: input.Name})
	if err != nil {
		return nil, fmt.Errorf("marshal creation payload: %w", err)
	}

	var created *domain.Tag
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()

		var createErr error
		created, createErr = s.tags.Create(txCtx, &domain.Tag{
			ID:        uuid.New(),
			CreatedAt: now,
		})
		if createErr != nil {
			return fmt.Errorf("create tag row: %w", createErr)
		}

		_, appendErr := s.txs.Append(txCtx, &domain.Transaction{
			EntityID:     created.ID,
			Kind:         domain.EntityKindTag,
			Type:         domain.TransactionCreateTag,
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

	slug, slugErr := s.assignSlug(ctx, s.tags, created.ID, input.Name)
	if slugErr != nil {
		s.log.Warn("slug assignment deferred to backfill",
			"tag_id", created.ID, "error", slugErr)
		return created, nil
	}
	created.Slug = &slug

	s.log.Info("tag created", "tag_id", created.ID, "slug", slug)
	return created, nil
}
