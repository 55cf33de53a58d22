package seed

import (
	"context"
	"fmt"

	"github.com/ashmarten/seedlog-backend/internal/domain"
	"github.com/ashmarten/seedlog-backend/pkg/ctxutil"
)

// AppendTransaction appends one transaction to an existing entity's log.
// Creation transactions are rejected here: an entity gets exactly one, and
// it is written by CaptureSeed / CreateTag together with the registry row.
func (s *Service) AppendTransaction(ctx context.Context, input AppendTransactionInput) (*domain.Transaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.Type == domain.CreationType(input.Kind) {
		exists, err := s.txs.ExistsCreation(ctx, input.EntityID, input.Type)
		if err != nil {
			return nil, fmt.Errorf("check creation transaction: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("entity %s already has a creation transaction: %w",
				input.EntityID, domain.ErrConflict)
		}
	}

	// The registry row must exist before the log grows.
	switch input.Kind {
	case domain.EntityKindSeed:
		if _, err := s.seeds.GetByID(ctx, input.EntityID); err != nil {
			return nil, err
		}
	case domain.EntityKindTag:
		if _, err := s.tags.GetByID(ctx, input.EntityID); err != nil {
			return nil, err
		}
	}

	appended, err := s.txs.Append(ctx, &domain.Transaction{
		EntityID:     input.EntityID,
		Kind:         input.Kind,
		Type:         input.Type,
		Data:         input.Data,
		AutomationID: ctxutil.AutomationIDFromCtx(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("append transaction: %w", err)
	}

	s.log.Debug("transaction appended",
		"entity_id", input.EntityID, "type", input.Type, "seq", appended.Seq)
	return appended, nil
}
