// Package seed implements the seed registry repository using PostgreSQL.
// A registry row carries only the id, the lazily assigned slug, and the
// creation timestamp; all business state is derived from the transaction log.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ashmarten/seedlog-backend/internal/adapter/postgres"
	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// Repo provides seed registry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new seed registry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO seeds (id, slug, created_at)
VALUES ($1, $2, $3)`

const getByIDSQL = `SELECT id, slug, created_at FROM seeds WHERE id = $1`

const listSQL = `SELECT id, slug, created_at FROM seeds ORDER BY created_at DESC LIMIT $1 OFFSET $2`

const countSQL = `SELECT count(*) FROM seeds`

const listWithoutSlugSQL = `
SELECT id, slug, created_at FROM seeds WHERE slug IS NULL ORDER BY created_at ASC LIMIT $1`

const slugExistsSQL = `SELECT EXISTS (SELECT 1 FROM seeds WHERE slug = $1)`

// assignSlugSQL only lands on rows that have no slug yet; a row with one is
// left untouched so the caller can distinguish conflict from not-found.
const assignSlugSQL = `UPDATE seeds SET slug = $2 WHERE id = $1 AND slug IS NULL`

const deleteSQL = `DELETE FROM seeds WHERE id = $1`

// Create inserts a new registry row.
func (r *Repo) Create(ctx context.Context, s *domain.Seed) (*domain.Seed, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rec := *s
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	if _, err := querier.Exec(ctx, createSQL, rec.ID, rec.Slug, rec.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "seed", rec.ID)
	}
	return &rec, nil
}

// GetByID returns a registry row. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seed, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.Seed
	err := querier.QueryRow(ctx, getByIDSQL, id).Scan(&s.ID, &s.Slug, &s.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "seed", id)
	}
	return &s, nil
}

// List returns registry rows newest-first with limit/offset pagination,
// plus the total count.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]domain.Seed, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := querier.QueryRow(ctx, countSQL).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count seeds: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}

	rows, err := querier.Query(ctx, listSQL, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list seeds: %w", err)
	}
	defer rows.Close()

	var seeds []domain.Seed
	for rows.Next() {
		var s domain.Seed
		if err := rows.Scan(&s.ID, &s.Slug, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan seed: %w", err)
		}
		seeds = append(seeds, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate seeds: %w", err)
	}
	if seeds == nil {
		seeds = []domain.Seed{}
	}

	return seeds, total, nil
}

// ListWithoutSlug returns rows that have not been assigned a slug yet,
// oldest-first. Used by the backfill job.
func (r *Repo) ListWithoutSlug(ctx context.Context, limit int) ([]domain.Seed, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if limit <= 0 {
		limit = 500
	}

	rows, err := querier.Query(ctx, listWithoutSlugSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list seeds without slug: %w", err)
	}
	defer rows.Close()

	var seeds []domain.Seed
	for rows.Next() {
		var s domain.Seed
		if err := rows.Scan(&s.ID, &s.Slug, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan seed: %w", err)
		}
		seeds = append(seeds, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seeds: %w", err)
	}
	if seeds == nil {
		seeds = []domain.Seed{}
	}
	return seeds, nil
}

// SlugExists reports whether any registry row already holds the slug.
// The generator re-checks on every counter increment, so a fresh query per
// attempt is the contract here, not an optimization target.
func (r *Repo) SlugExists(ctx context.Context, slug string) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, slugExistsSQL, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("check slug existence: %w", err)
	}
	return exists, nil
}

// AssignSlug writes a slug to a row that has none. Returns domain.ErrConflict
// if the row already has a slug (slugs are immutable once assigned) and
// domain.ErrNotFound if the row does not exist.
func (r *Repo) AssignSlug(ctx context.Context, id uuid.UUID, slug string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, assignSlugSQL, id, slug)
	if err != nil {
		return postgres.MapError(err, "seed", id)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// No row updated: distinguish an already-assigned slug from a missing row.
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("seed %s: slug already assigned: %w", id, domain.ErrConflict)
}

// Delete removes a registry row. Returns domain.ErrNotFound if absent.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "seed", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("seed %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
