package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedRow creates a seed registry row without a slug.
// Returns a filled domain.Seed.
func SeedRow(t *testing.T, pool *pgxpool.Pool) domain.Seed {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	seed := domain.Seed{
		ID:        uuid.New(),
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO seeds (id, slug, created_at) VALUES ($1, $2, $3)`,
		seed.ID, seed.Slug, seed.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRow insert seed: %v", err)
	}

	return seed
}

// TagRow creates a tag registry row without a slug.
// Returns a filled domain.Tag.
func TagRow(t *testing.T, pool *pgxpool.Pool) domain.Tag {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	tag := domain.Tag{
		ID:        uuid.New(),
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO tags (id, slug, created_at) VALUES ($1, $2, $3)`,
		tag.ID, tag.Slug, tag.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: TagRow insert tag: %v", err)
	}

	return tag
}

// SeedWithLog creates a seed registry row plus its creation transaction.
// Returns the seed and the content used for the creation payload.
func SeedWithLog(t *testing.T, pool *pgxpool.Pool) (domain.Seed, string) {
	t.Helper()

	seed := SeedRow(t, pool)
	content := "Captured thought " + uniqueSuffix()

	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		t.Fatalf("testhelper: SeedWithLog marshal payload: %v", err)
	}

	AppendTransaction(t, pool, domain.Transaction{
		EntityID:  seed.ID,
		Kind:      domain.EntityKindSeed,
		Type:      domain.TransactionCreateSeed,
		Data:      payload,
		CreatedAt: seed.CreatedAt,
	})

	return seed, content
}

// AppendTransaction inserts one transaction row directly, filling ID and
// CreatedAt when zero. Returns the row with its assigned seq.
func AppendTransaction(t *testing.T, pool *pgxpool.Pool, tx domain.Transaction) domain.Transaction {
	t.Helper()
	ctx := context.Background()

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO transactions (id, entity_id, entity_kind, transaction_type, transaction_data, created_at, automation_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING seq`,
		tx.ID, tx.EntityID, tx.Kind, tx.Type, tx.Data, tx.CreatedAt, tx.AutomationID,
	).Scan(&tx.Seq)
	if err != nil {
		t.Fatalf("testhelper: AppendTransaction insert: %v", err)
	}

	return tx
}

// AppendEvent inserts one event row directly, filling ID and CreatedAt when
// zero. Returns the row with its assigned seq.
func AppendEvent(t *testing.T, pool *pgxpool.Pool, ev domain.Event) domain.Event {
	t.Helper()
	ctx := context.Background()

	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO events (id, entity_id, event_type, patch, enabled, created_at, automation_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING seq`,
		ev.ID, ev.EntityID, ev.Type, ev.Patch, ev.Enabled, ev.CreatedAt, ev.AutomationID,
	).Scan(&ev.Seq)
	if err != nil {
		t.Fatalf("testhelper: AppendEvent insert: %v", err)
	}

	return ev
}

// Musing creates an idea musing in its initial non-terminal state for the seed.
// Returns a filled domain.IdeaMusing.
func Musing(t *testing.T, pool *pgxpool.Pool, seedID uuid.UUID, templateType domain.MusingTemplateType) domain.IdeaMusing {
	t.Helper()
	ctx := context.Background()

	content, err := json.Marshal(map[string]string{"body": "musing " + uniqueSuffix()})
	if err != nil {
		t.Fatalf("testhelper: Musing marshal content: %v", err)
	}

	m := domain.IdeaMusing{
		ID:           uuid.New(),
		SeedID:       seedID,
		TemplateType: templateType,
		Content:      content,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO idea_musings (id, seed_id, template_type, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.SeedID, m.TemplateType, m.Content, m.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: Musing insert: %v", err)
	}

	return m
}

// ShownOn records a shown-history row for the seed on the given calendar date.
func ShownOn(t *testing.T, pool *pgxpool.Pool, seedID uuid.UUID, date time.Time) domain.ShownRecord {
	t.Helper()
	ctx := context.Background()

	rec := domain.ShownRecord{
		ID:        uuid.New(),
		SeedID:    seedID,
		ShownDate: date,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO idea_musing_shown_history (id, seed_id, shown_date, created_at)
		 VALUES ($1, $2, $3, $4)`,
		rec.ID, rec.SeedID, rec.ShownDate, rec.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: ShownOn insert: %v", err)
	}

	return rec
}
