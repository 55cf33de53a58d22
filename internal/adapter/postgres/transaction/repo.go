// Package transaction implements the append-only transaction log repository
// using PostgreSQL. Rows are immutable once written; the only delete path is
// whole-entity removal during cascade deletion or cleanup.
package transaction

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ashmarten/seedlog-backend/internal/adapter/postgres"
	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// Repo provides transaction log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new transaction log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const appendSQL = `
INSERT INTO transactions (id, entity_id, entity_kind, transaction_type, transaction_data, created_at, automation_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING seq`

const listByEntitySQL = `
SELECT id, entity_id, entity_kind, transaction_type, transaction_data, created_at, automation_id, seq
FROM transactions
WHERE entity_id = $1
ORDER BY created_at ASC, seq ASC`

const existsCreationSQL = `
SELECT EXISTS (
    SELECT 1 FROM transactions WHERE entity_id = $1 AND transaction_type = $2
)`

const deleteByEntitySQL = `DELETE FROM transactions WHERE entity_id = $1`

// Append inserts one transaction as a single atomic row write and returns it
// with the store-assigned insertion seq. The log is never updated in place.
func (r *Repo) Append(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rec := *tx
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	err := querier.QueryRow(ctx, appendSQL,
		rec.ID, rec.EntityID, rec.Kind, rec.Type, rec.Data, rec.CreatedAt, rec.AutomationID,
	).Scan(&rec.Seq)
	if err != nil {
		return nil, postgres.MapError(err, "transaction", rec.ID)
	}

	return &rec, nil
}

// ListByEntity returns an entity's full log in replay order:
// created_at ascending, insertion seq breaking ties.
func (r *Repo) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]domain.Transaction, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByEntitySQL, entityID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Filter narrows a cross-entity transaction listing.
type Filter struct {
	Kind         *domain.EntityKind
	Types        []domain.TransactionType
	AutomationID *uuid.UUID
	CreatedAfter *time.Time
	Limit        int
}

// List returns transactions matching the filter in global log order.
// Used by audit tooling and the cleanup job, not by projection.
func (r *Repo) List(ctx context.Context, f Filter) ([]domain.Transaction, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	q := sq.Select("id", "entity_id", "entity_kind", "transaction_type", "transaction_data", "created_at", "automation_id", "seq").
		From("transactions").
		OrderBy("created_at ASC", "seq ASC").
		PlaceholderFormat(sq.Dollar)

	if f.Kind != nil {
		q = q.Where(sq.Eq{"entity_kind": *f.Kind})
	}
	if len(f.Types) > 0 {
		q = q.Where(sq.Eq{"transaction_type": f.Types})
	}
	if f.AutomationID != nil {
		q = q.Where(sq.Eq{"automation_id": *f.AutomationID})
	}
	if f.CreatedAfter != nil {
		q = q.Where(sq.Gt{"created_at": *f.CreatedAfter})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build transaction filter query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("filter transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ExistsCreation reports whether the entity already has a creation transaction
// of the given type.
func (r *Repo) ExistsCreation(ctx context.Context, entityID uuid.UUID, creationType domain.TransactionType) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsCreationSQL, entityID, creationType).Scan(&exists); err != nil {
		return false, fmt.Errorf("check creation transaction: %w", err)
	}
	return exists, nil
}

// DeleteByEntity removes an entity's whole log. Cascade deletion only —
// individual transactions are never deleted.
func (r *Repo) DeleteByEntity(ctx context.Context, entityID uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByEntitySQL, entityID)
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.EntityID, &tx.Kind, &tx.Type, &tx.Data,
			&tx.CreatedAt, &tx.AutomationID, &tx.Seq,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return txs, nil
}
