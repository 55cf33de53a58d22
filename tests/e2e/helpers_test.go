//go:build e2e

package e2e_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/ashmarten/seedlog-backend/internal/adapter/postgres"
	eventrepo "github.com/ashmarten/seedlog-backend/internal/adapter/postgres/event"
	musingrepo "github.com/ashmarten/seedlog-backend/internal/adapter/postgres/musing"
	seedrepo "github.com/ashmarten/seedlog-backend/internal/adapter/postgres/seed"
	tagrepo "github.com/ashmarten/seedlog-backend/internal/adapter/postgres/tag"
	"github.com/ashmarten/seedlog-backend/internal/adapter/postgres/testhelper"
	txrepo "github.com/ashmarten/seedlog-backend/internal/adapter/postgres/transaction"
	"github.com/ashmarten/seedlog-backend/internal/config"
	"github.com/ashmarten/seedlog-backend/internal/domain"
	musingsvc "github.com/ashmarten/seedlog-backend/internal/service/musing"
	seedsvc "github.com/ashmarten/seedlog-backend/internal/service/seed"
)

// testEnv wires the full stack against a real database: repositories,
// transaction manager, and both services.
type testEnv struct {
	Seeds   *seedsvc.Service
	Musings *musingsvc.Service
}

// staticGenerator fills musings with fixed content so flows are deterministic.
type staticGenerator struct{}

func (staticGenerator) Generate(_ context.Context, state domain.SeedState, _ domain.MusingTemplateType) (json.RawMessage, error) {
	out, err := json.Marshal(map[string]any{"ideas": []string{"idea about: " + state.Content}})
	return out, err
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	seeds := seedrepo.New(pool)
	tags := tagrepo.New(pool)
	txs := txrepo.New(pool)
	events := eventrepo.New(pool)
	musings := musingrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	return &testEnv{
		Seeds: seedsvc.NewService(logger, seeds, tags, txs, events, musings,
			txManager, config.SlugConfig{MaxAttempts: 100}),
		Musings: musingsvc.NewService(logger, musings, seeds, txs, staticGenerator{},
			config.MusingConfig{ExclusionWindowDays: 2, MaxCandidates: 10, Timezone: "UTC"}),
	}
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}
