// Command backfill-slugs assigns slugs to seeds that were created before
// slug generation existed or whose best-effort assignment failed at capture
// time. Safe to re-run; already-slugged rows are untouched.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ashmarten/seedlog-backend/internal/adapter/postgres"
	eventrepo "github.com/ashmarten/seedlog-backend/internal/adapter/postgres/event"
	musingrepo "github.com/ashmarten/seedlog-backend/internal/adapter/postgres/musing"
	seedrepo "github.com/ashmarten/seedlog-backend/internal/adapter/postgres/seed"
	tagrepo "github.com/ashmarten/seedlog-backend/internal/adapter/postgres/tag"
	txrepo "github.com/ashmarten/seedlog-backend/internal/adapter/postgres/transaction"
	"github.com/ashmarten/seedlog-backend/internal/app"
	"github.com/ashmarten/seedlog-backend/internal/config"
	"github.com/ashmarten/seedlog-backend/internal/domain"
	seedsvc "github.com/ashmarten/seedlog-backend/internal/service/seed"
)

func main() {
	batchSize := flag.Int("batch-size", 500, "maximum number of seeds to backfill per run")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	seeds := seedrepo.New(pool)
	tags := tagrepo.New(pool)
	txs := txrepo.New(pool)
	events := eventrepo.New(pool)
	musings := musingrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	svc := seedsvc.NewService(logger, seeds, tags, txs, events, musings, txManager, cfg.Slug)

	rows, err := seeds.ListWithoutSlug(ctx, *batchSize)
	if err != nil {
		logger.Error("list seeds without slug", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var assigned, skipped int
	for _, row := range rows {
		slug, err := svc.EnsureSeedSlug(ctx, row.ID)
		if err != nil {
			// A broken log cannot produce a slug; leave the row for cleanup.
			if errors.Is(err, domain.ErrIntegrity) {
				skipped++
				logger.Warn("seed skipped, log violates integrity",
					slog.String("seed_id", row.ID.String()), slog.String("error", err.Error()))
				continue
			}
			logger.Error("assign slug",
				slog.String("seed_id", row.ID.String()), slog.String("error", err.Error()))
			os.Exit(1)
		}
		assigned++
		logger.Debug("slug assigned",
			slog.String("seed_id", row.ID.String()), slog.String("slug", slug))
	}

	logger.Info("slug backfill completed",
		slog.Int("assigned", assigned),
		slog.Int("skipped", skipped),
		slog.Int("batch_size", *batchSize),
	)
}
