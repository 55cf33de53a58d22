package event_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashmarten/seedlog-backend/internal/adapter/postgres/event"
	"github.com/ashmarten/seedlog-backend/internal/adapter/postgres/testhelper"
	"github.com/ashmarten/seedlog-backend/internal/domain"
)

func newRepo(t *testing.T) (*event.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return event.New(pool), pool
}

func patchDoc(t *testing.T, ops ...map[string]any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(ops)
	if err != nil {
		t.Fatalf("marshal patch: %v", err)
	}
	return b
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seed := testhelper.SeedRow(t, pool)

	ev := &domain.Event{
		EntityID: seed.ID,
		Type:     "auto-categorize",
		Patch:    patchDoc(t, map[string]any{"op": "add", "path": "/categories/-", "value": "research"}),
		Enabled:  true,
	}

	got, err := repo.Create(ctx, ev)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if got.ID == uuid.Nil {
		t.Error("Create: expected generated ID")
	}
	if got.Seq == 0 {
		t.Error("Create: expected store-assigned seq")
	}
	if !got.Enabled {
		t.Error("Create: expected enabled event")
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_ListEnabledByEntity_SkipsDisabled(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seed := testhelper.SeedRow(t, pool)
	base := time.Now().UTC().Truncate(time.Microsecond)

	enabled, err := repo.Create(ctx, &domain.Event{
		EntityID:  seed.ID,
		Type:      "auto-tag",
		Patch:     patchDoc(t, map[string]any{"op": "add", "path": "/categories/-", "value": "a"}),
		Enabled:   true,
		CreatedAt: base,
	})
	if err != nil {
		t.Fatalf("Create enabled: %v", err)
	}
	_, err = repo.Create(ctx, &domain.Event{
		EntityID:  seed.ID,
		Type:      "auto-tag",
		Patch:     patchDoc(t, map[string]any{"op": "add", "path": "/categories/-", "value": "b"}),
		Enabled:   false,
		CreatedAt: base.Add(time.Second),
	})
	if err != nil {
		t.Fatalf("Create disabled: %v", err)
	}

	all, err := repo.ListByEntity(ctx, seed.ID)
	if err != nil {
		t.Fatalf("ListByEntity: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 events total, got %d", len(all))
	}

	active, err := repo.ListEnabledByEntity(ctx, seed.ID)
	if err != nil {
		t.Fatalf("ListEnabledByEntity: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 enabled event, got %d", len(active))
	}
	if active[0].ID != enabled.ID {
		t.Errorf("expected enabled event %s, got %s", enabled.ID, active[0].ID)
	}
}

func TestRepo_SetEnabled_Toggle(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seed := testhelper.SeedRow(t, pool)

	ev, err := repo.Create(ctx, &domain.Event{
		EntityID: seed.ID,
		Type:     "auto-color",
		Patch:    patchDoc(t, map[string]any{"op": "replace", "path": "/color", "value": "#ff0000"}),
		Enabled:  true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.SetEnabled(ctx, ev.ID, false)
	if err != nil {
		t.Fatalf("SetEnabled(false): %v", err)
	}
	if got.Enabled {
		t.Error("expected disabled event after toggle")
	}
	if string(got.Patch) == "" {
		t.Error("expected patch to survive the toggle unchanged")
	}

	got, err = repo.SetEnabled(ctx, ev.ID, true)
	if err != nil {
		t.Fatalf("SetEnabled(true): %v", err)
	}
	if !got.Enabled {
		t.Error("expected re-enabled event after second toggle")
	}
}

func TestRepo_SetEnabled_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.SetEnabled(ctx, uuid.New(), false)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_DeleteByEntity(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seed := testhelper.SeedRow(t, pool)
	for i := 0; i < 3; i++ {
		if _, err := repo.Create(ctx, &domain.Event{
			EntityID: seed.ID,
			Type:     "auto-tag",
			Patch:    patchDoc(t, map[string]any{"op": "add", "path": "/categories/-", "value": "x"}),
			Enabled:  true,
		}); err != nil {
			t.Fatalf("Create event %d: %v", i, err)
		}
	}

	deleted, err := repo.DeleteByEntity(ctx, seed.ID)
	if err != nil {
		t.Fatalf("DeleteByEntity: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted events, got %d", deleted)
	}
}
