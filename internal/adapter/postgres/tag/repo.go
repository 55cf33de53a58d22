// Package tag implements the tag registry repository using PostgreSQL.
package tag

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ashmarten/seedlog-backend/internal/adapter/postgres"
	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// Repo provides tag registry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tag registry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `INSERT INTO tags (id, slug, created_at) VALUES ($1, $2, $3)`

const getByIDSQL = `SELECT id, slug, created_at FROM tags WHERE id = $1`

const listSQL = `SELECT id, slug, created_at FROM tags ORDER BY created_at ASC`

const slugExistsSQL = `SELECT EXISTS (SELECT 1 FROM tags WHERE slug = $1)`

const assignSlugSQL = `UPDATE tags SET slug = $2 WHERE id = $1 AND slug IS NULL`

const deleteSQL = `DELETE FROM tags WHERE id = $1`

// Create inserts a new registry row.
func (r *Repo) Create(ctx context.Context, t *domain.Tag) (*domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rec := *t
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	if _, err := querier.Exec(ctx, createSQL, rec.ID, rec.Slug, rec.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "tag", rec.ID)
	}
	return &rec, nil
}

// GetByID returns a registry row. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.Tag
	err := querier.QueryRow(ctx, getByIDSQL, id).Scan(&t.ID, &t.Slug, &t.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "tag", id)
	}
	return &t, nil
}

// List returns all tag registry rows oldest-first.
func (r *Repo) List(ctx context.Context) ([]domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Slug, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}

// SlugExists reports whether any tag row already holds the slug.
func (r *Repo) SlugExists(ctx context.Context, slug string) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, slugExistsSQL, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("check slug existence: %w", err)
	}
	return exists, nil
}

// AssignSlug writes a slug to a row that has none. Returns domain.ErrConflict
// if the row already has one, domain.ErrNotFound if the row is missing.
func (r *Repo) AssignSlug(ctx context.Context, id uuid.UUID, slug string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, assignSlugSQL, id, slug)
	if err != nil {
		return postgres.MapError(err, "tag", id)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("tag %s: slug already assigned: %w", id, domain.ErrConflict)
}

// Delete removes a registry row. Returns domain.ErrNotFound if absent.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "tag", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
