// Command cleanup scans every registry row, replays its transaction log, and
// removes entities whose logs violate integrity (no creation transaction,
// creation not first, duplicate creation). With -dry-run it only reports.
// It is intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
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
	"github.com/ashmarten/seedlog-backend/internal/projection"
	seedsvc "github.com/ashmarten/seedlog-backend/internal/service/seed"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report integrity violations without deleting")
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

	var checked, violations, deleted int

	const pageSize = 500
	for offset := 0; ; {
		seedRows, _, err := seeds.List(ctx, pageSize, offset)
		if err != nil {
			logger.Error("list seeds", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if len(seedRows) == 0 {
			break
		}
		offset += len(seedRows)

		for _, row := range seedRows {
			checked++
			logTxs, err := txs.ListByEntity(ctx, row.ID)
			if err != nil {
				logger.Error("load seed log",
					slog.String("seed_id", row.ID.String()), slog.String("error", err.Error()))
				os.Exit(1)
			}
			if _, projErr := projection.ProjectSeed(logTxs); projErr == nil {
				continue
			} else {
				violations++
				logger.Warn("seed integrity violation",
					slog.String("seed_id", row.ID.String()), slog.String("error", projErr.Error()))
			}
			if *dryRun {
				continue
			}
			if err := svc.DeleteSeed(ctx, row.ID); err != nil {
				logger.Error("delete seed",
					slog.String("seed_id", row.ID.String()), slog.String("error", err.Error()))
				os.Exit(1)
			}
			deleted++
			// Deleting shifts later pages left; re-read the same offset.
			offset--
		}
	}

	tagRows, err := tags.List(ctx)
	if err != nil {
		logger.Error("list tags", slog.String("error", err.Error()))
		os.Exit(1)
	}
	for _, row := range tagRows {
		checked++
		logTxs, err := txs.ListByEntity(ctx, row.ID)
		if err != nil {
			logger.Error("load tag log",
				slog.String("tag_id", row.ID.String()), slog.String("error", err.Error()))
			os.Exit(1)
		}
		if _, projErr := projection.ProjectTag(logTxs); projErr == nil {
			continue
		} else {
			violations++
			logger.Warn("tag integrity violation",
				slog.String("tag_id", row.ID.String()), slog.String("error", projErr.Error()))
		}
		if *dryRun {
			continue
		}
		if err := svc.DeleteTag(ctx, row.ID); err != nil {
			logger.Error("delete tag",
				slog.String("tag_id", row.ID.String()), slog.String("error", err.Error()))
			os.Exit(1)
		}
		deleted++
	}

	logger.Info("integrity cleanup completed",
		slog.Int("checked", checked),
		slog.Int("violations", violations),
		slog.Int("deleted", deleted),
		slog.Bool("dry_run", *dryRun),
	)
}
