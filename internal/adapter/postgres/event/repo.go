// Package event implements the JSON-Patch event log repository using
// PostgreSQL. Event rows carry one mutable column, enabled; patch and type
// are never edited in place — a correction is a new event that supersedes.
package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ashmarten/seedlog-backend/internal/adapter/postgres"
	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// Repo provides event log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO events (id, entity_id, event_type, patch, enabled, created_at, automation_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING seq`

const getByIDSQL = `
SELECT id, entity_id, event_type, patch, enabled, created_at, automation_id, seq
FROM events
WHERE id = $1`

const listByEntitySQL = `
SELECT id, entity_id, event_type, patch, enabled, created_at, automation_id, seq
FROM events
WHERE entity_id = $1
ORDER BY created_at ASC, seq ASC`

// listEnabledByEntitySQL is the required access pattern for building views:
// enabled events of one entity in replay order. Served by the partial index
// idx_events_entity_enabled_order.
const listEnabledByEntitySQL = `
SELECT id, entity_id, event_type, patch, enabled, created_at, automation_id, seq
FROM events
WHERE entity_id = $1 AND enabled
ORDER BY created_at ASC, seq ASC`

const setEnabledSQL = `
UPDATE events SET enabled = $2
WHERE id = $1
RETURNING id, entity_id, event_type, patch, enabled, created_at, automation_id, seq`

const deleteByEntitySQL = `DELETE FROM events WHERE entity_id = $1`

// Create inserts one event row and returns it with the assigned seq.
func (r *Repo) Create(ctx context.Context, ev *domain.Event) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rec := *ev
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	err := querier.QueryRow(ctx, createSQL,
		rec.ID, rec.EntityID, rec.Type, rec.Patch, rec.Enabled, rec.CreatedAt, rec.AutomationID,
	).Scan(&rec.Seq)
	if err != nil {
		return nil, postgres.MapError(err, "event", rec.ID)
	}

	return &rec, nil
}

// GetByID returns a single event. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ev, err := scanEvent(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "event", id)
	}
	return ev, nil
}

// ListByEntity returns all events for an entity, enabled or not, in replay order.
func (r *Repo) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]domain.Event, error) {
	return r.list(ctx, listByEntitySQL, entityID)
}

// ListEnabledByEntity returns only enabled events in replay order.
func (r *Repo) ListEnabledByEntity(ctx context.Context, entityID uuid.UUID) ([]domain.Event, error) {
	return r.list(ctx, listEnabledByEntitySQL, entityID)
}

// SetEnabled toggles the enabled flag, the only supported event mutation.
// Returns domain.ErrNotFound if the event does not exist.
func (r *Repo) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ev, err := scanEvent(querier.QueryRow(ctx, setEnabledSQL, id, enabled))
	if err != nil {
		return nil, postgres.MapError(err, "event", id)
	}
	return ev, nil
}

// DeleteByEntity removes an entity's whole event log (cascade deletion only).
func (r *Repo) DeleteByEntity(ctx context.Context, entityID uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByEntitySQL, entityID)
	if err != nil {
		return 0, fmt.Errorf("delete events: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) list(ctx context.Context, sql string, entityID uuid.UUID) ([]domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, entityID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var ev domain.Event
		if err := rows.Scan(
			&ev.ID, &ev.EntityID, &ev.Type, &ev.Patch, &ev.Enabled,
			&ev.CreatedAt, &ev.AutomationID, &ev.Seq,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var ev domain.Event
	err := row.Scan(
		&ev.ID, &ev.EntityID, &ev.Type, &ev.Patch, &ev.Enabled,
		&ev.CreatedAt, &ev.AutomationID, &ev.Seq,
	)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
