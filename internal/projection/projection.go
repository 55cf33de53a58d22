// Package projection reconstructs entity state from append-only transaction
// logs. Replay is deterministic and side-effect free: reducers are pure
// functions over (state, transaction), so projecting the same ordered
// sequence twice yields identical state.
//
// The caller is responsible for passing transactions in store order
// (created_at ascending, insertion seq breaking ties).
package projection

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// ProjectSeed replays a seed's transaction log into its current state.
// Returns *domain.IntegrityError when the log violates required invariants:
// empty log, first transaction not create_seed, duplicated creation, or a
// creation payload missing non-empty content. Such entities must be excluded
// from normal operation and handled by the cleanup job.
func ProjectSeed(txs []domain.Transaction) (*domain.SeedState, error) {
	if len(txs) == 0 {
		return nil, domain.NewIntegrityError(domain.EntityKindSeed, uuid.Nil, "empty transaction log")
	}

	entityID := txs[0].EntityID
	if txs[0].Type != domain.TransactionCreateSeed {
		return nil, domain.NewIntegrityError(domain.EntityKindSeed, entityID,
			"first transaction is "+txs[0].Type.String()+", want create_seed")
	}

	var create createSeedPayload
	if err := json.Unmarshal(txs[0].Data, &create); err != nil || create.Content == "" {
		return nil, domain.NewIntegrityError(domain.EntityKindSeed, entityID,
			"create_seed payload has no content")
	}

	state := &domain.SeedState{
		ID:         entityID,
		Content:    create.Content,
		TagIDs:     []string{},
		Categories: []string{},
		Followups:  []domain.Followup{},
		CreatedAt:  txs[0].CreatedAt,
		UpdatedAt:  txs[0].CreatedAt,
	}

	for _, tx := range txs[1:] {
		if tx.Type == domain.TransactionCreateSeed {
			return nil, domain.NewIntegrityError(domain.EntityKindSeed, entityID,
				"duplicate create_seed transaction")
		}
		reduceSeed(state, tx)
	}

	return state, nil
}

// ProjectTag replays a tag's transaction log into its current state,
// under the same integrity invariants as ProjectSeed.
func ProjectTag(txs []domain.Transaction) (*domain.TagState, error) {
	if len(txs) == 0 {
		return nil, domain.NewIntegrityError(domain.EntityKindTag, uuid.Nil, "empty transaction log")
	}

	entityID := txs[0].EntityID
	if txs[0].Type != domain.TransactionCreateTag {
		return nil, domain.NewIntegrityError(domain.EntityKindTag, entityID,
			"first transaction is "+txs[0].Type.String()+", want create_tag")
	}

	var create createTagPayload
	if err := json.Unmarshal(txs[0].Data, &create); err != nil || create.Name == "" {
		return nil, domain.NewIntegrityError(domain.EntityKindTag, entityID,
			"create_tag payload has no name")
	}

	state := &domain.TagState{
		ID:        entityID,
		Name:      create.Name,
		CreatedAt: txs[0].CreatedAt,
		UpdatedAt: txs[0].CreatedAt,
	}

	for _, tx := range txs[1:] {
		if tx.Type == domain.TransactionCreateTag {
			return nil, domain.NewIntegrityError(domain.EntityKindTag, entityID,
				"duplicate create_tag transaction")
		}
		reduceTag(state, tx)
	}

	return state, nil
}

// touch advances UpdatedAt for a transaction that changed state.
func touch(updatedAt *time.Time, at time.Time) {
	*updatedAt = at
}
