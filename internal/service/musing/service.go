// Package musing implements the idea musing scheduler: candidate selection
// under the shown-history exclusion window, generation through a pluggable
// generator, and the terminal dismiss/complete lifecycle.
package musing

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/config"
	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type musingRepo interface {
	Create(ctx context.Context, m *domain.IdeaMusing) (*domain.IdeaMusing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.IdeaMusing, error)
	ListCandidates(ctx context.Context, seedID uuid.UUID, templateTypes []domain.MusingTemplateType, limit int) ([]domain.IdeaMusing, error)
	MarkDismissed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	RecordShown(ctx context.Context, rec *domain.ShownRecord) (*domain.ShownRecord, error)
	HasShownSince(ctx context.Context, seedID uuid.UUID, since time.Time) (bool, error)
}

type seedRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Seed, error)
}

type transactionRepo interface {
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]domain.Transaction, error)
}

// Generator produces musing content for a seed. Implementations range from
// template fills to LLM calls; the scheduler only cares about the contract.
type Generator interface {
	Generate(ctx context.Context, state domain.SeedState, templateType domain.MusingTemplateType) (json.RawMessage, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the idea musing scheduler.
type Service struct {
	log       *slog.Logger
	musings   musingRepo
	seeds     seedRepo
	txs       transactionRepo
	generator Generator
	cfg       config.MusingConfig
	loc       *time.Location

	// now is swappable in tests; the window is calendar-day sensitive.
	now func() time.Time
}

// NewService creates a new musing scheduler service. An invalid configured
// timezone falls back to UTC.
func NewService(
	logger *slog.Logger,
	musings musingRepo,
	seeds seedRepo,
	txs transactionRepo,
	generator Generator,
	cfg config.MusingConfig,
) *Service {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid musing timezone, using UTC", "timezone", cfg.Timezone)
		loc = time.UTC
	}
	return &Service{
		log:       logger.With("service", "musing"),
		musings:   musings,
		seeds:     seeds,
		txs:       txs,
		generator: generator,
		cfg:       cfg,
		loc:       loc,
		now:       time.Now,
	}
}

// startOfDay truncates t to midnight in the service's calendar.
func (s *Service) startOfDay(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// windowCutoff returns the earliest shown date that still blocks the seed.
// With a 2-day window, a seed shown today or yesterday is blocked; one shown
// the day before yesterday is eligible again.
func (s *Service) windowCutoff() time.Time {
	days := s.cfg.ExclusionWindowDays
	if days <= 0 {
		days = 2
	}
	return s.startOfDay(s.now()).AddDate(0, 0, -(days - 1))
}
