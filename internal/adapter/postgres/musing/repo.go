// Package musing implements the idea musing and shown-history repositories
// using PostgreSQL. Shown history is append-only; musings mutate only
// through their terminal transitions (dismiss/complete).
package musing

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ashmarten/seedlog-backend/internal/adapter/postgres"
	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// Repo provides idea musing persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new idea musing repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const musingColumns = "id, seed_id, template_type, content, created_at, dismissed, dismissed_at, completed, completed_at"

const createSQL = `
INSERT INTO idea_musings (id, seed_id, template_type, content, created_at)
VALUES ($1, $2, $3, $4, $5)`

const getByIDSQL = `
SELECT ` + musingColumns + ` FROM idea_musings WHERE id = $1`

const markDismissedSQL = `
UPDATE idea_musings SET dismissed = true, dismissed_at = $2
WHERE id = $1 AND NOT dismissed AND NOT completed`

const markCompletedSQL = `
UPDATE idea_musings SET completed = true, completed_at = $2
WHERE id = $1 AND NOT dismissed AND NOT completed`

const deleteBySeedSQL = `DELETE FROM idea_musings WHERE seed_id = $1`

const recordShownSQL = `
INSERT INTO idea_musing_shown_history (id, seed_id, shown_date, created_at)
VALUES ($1, $2, $3, $4)`

const hasShownSinceSQL = `
SELECT EXISTS (
    SELECT 1 FROM idea_musing_shown_history WHERE seed_id = $1 AND shown_date >= $2::date
)`

const deleteShownBySeedSQL = `DELETE FROM idea_musing_shown_history WHERE seed_id = $1`

// Create inserts a new musing in its initial (non-terminal) state.
func (r *Repo) Create(ctx context.Context, m *domain.IdeaMusing) (*domain.IdeaMusing, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rec := *m
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := querier.Exec(ctx, createSQL,
		rec.ID, rec.SeedID, rec.TemplateType, rec.Content, rec.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "idea_musing", rec.ID)
	}
	return &rec, nil
}

// GetByID returns a musing. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.IdeaMusing, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var m domain.IdeaMusing
	err := querier.QueryRow(ctx, getByIDSQL, id).Scan(
		&m.ID, &m.SeedID, &m.TemplateType, &m.Content, &m.CreatedAt,
		&m.Dismissed, &m.DismissedAt, &m.Completed, &m.CompletedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "idea_musing", id)
	}
	return &m, nil
}

// ListCandidates returns non-terminal musings for a seed, optionally narrowed
// to template types, oldest-first, capped at limit.
func (r *Repo) ListCandidates(ctx context.Context, seedID uuid.UUID, templateTypes []domain.MusingTemplateType, limit int) ([]domain.IdeaMusing, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	q := sq.Select("id", "seed_id", "template_type", "content", "created_at",
		"dismissed", "dismissed_at", "completed", "completed_at").
		From("idea_musings").
		Where(sq.Eq{"seed_id": seedID}).
		Where("NOT dismissed AND NOT completed").
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar)

	if len(templateTypes) > 0 {
		q = q.Where(sq.Eq{"template_type": templateTypes})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build candidates query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var musings []domain.IdeaMusing
	for rows.Next() {
		var m domain.IdeaMusing
		if err := rows.Scan(
			&m.ID, &m.SeedID, &m.TemplateType, &m.Content, &m.CreatedAt,
			&m.Dismissed, &m.DismissedAt, &m.Completed, &m.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan musing: %w", err)
		}
		musings = append(musings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate musings: %w", err)
	}
	if musings == nil {
		musings = []domain.IdeaMusing{}
	}
	return musings, nil
}

// MarkDismissed transitions a non-terminal musing to dismissed.
// Reports whether a row changed; false means the musing was already terminal.
func (r *Repo) MarkDismissed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markDismissedSQL, id, at)
	if err != nil {
		return false, postgres.MapError(err, "idea_musing", id)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkCompleted transitions a non-terminal musing to completed.
// Reports whether a row changed; false means the musing was already terminal.
func (r *Repo) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markCompletedSQL, id, at)
	if err != nil {
		return false, postgres.MapError(err, "idea_musing", id)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteBySeed removes a seed's musings (cascade deletion only).
func (r *Repo) DeleteBySeed(ctx context.Context, seedID uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteBySeedSQL, seedID)
	if err != nil {
		return 0, fmt.Errorf("delete musings: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RecordShown appends one shown-history row. Duplicate seed/date pairs are
// permitted; exclusion checks are day-granular, so extra rows are harmless.
func (r *Repo) RecordShown(ctx context.Context, rec *domain.ShownRecord) (*domain.ShownRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := *rec
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	_, err := querier.Exec(ctx, recordShownSQL, row.ID, row.SeedID, row.ShownDate, row.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "shown_record", row.ID)
	}
	return &row, nil
}

// HasShownSince reports whether the seed has any shown-history entry on or
// after the given calendar date.
func (r *Repo) HasShownSince(ctx context.Context, seedID uuid.UUID, since time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, hasShownSinceSQL, seedID, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("check shown history: %w", err)
	}
	return exists, nil
}

// DeleteShownBySeed removes a seed's shown history (cascade deletion only).
func (r *Repo) DeleteShownBySeed(ctx context.Context, seedID uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteShownBySeedSQL, seedID)
	if err != nil {
		return 0, fmt.Errorf("delete shown history: %w", err)
	}
	return tag.RowsAffected(), nil
}
