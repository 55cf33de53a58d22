// Package seed implements the capture business logic: the transaction log,
// projected views with event overlays, and slug assignment for seeds and tags.
package seed

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/config"
	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type seedRepo interface {
	Create(ctx context.Context, s *domain.Seed) (*domain.Seed, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Seed, error)
	List(ctx context.Context, limit, offset int) ([]domain.Seed, int, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	AssignSlug(ctx context.Context, id uuid.UUID, slug string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tagRepo interface {
	Create(ctx context.Context, t *domain.Tag) (*domain.Tag, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	AssignSlug(ctx context.Context, id uuid.UUID, slug string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type transactionRepo interface {
	Append(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]domain.Transaction, error)
	ExistsCreation(ctx context.Context, entityID uuid.UUID, creationType domain.TransactionType) (bool, error)
	DeleteByEntity(ctx context.Context, entityID uuid.UUID) (int64, error)
}

type eventRepo interface {
	Create(ctx context.Context, ev *domain.Event) (*domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]domain.Event, error)
	ListEnabledByEntity(ctx context.Context, entityID uuid.UUID) ([]domain.Event, error)
	SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) (*domain.Event, error)
	DeleteByEntity(ctx context.Context, entityID uuid.UUID) (int64, error)
}

type musingRepo interface {
	DeleteBySeed(ctx context.Context, seedID uuid.UUID) (int64, error)
	DeleteShownBySeed(ctx context.Context, seedID uuid.UUID) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the capture business logic.
type Service struct {
	log     *slog.Logger
	seeds   seedRepo
	tags    tagRepo
	txs     transactionRepo
	events  eventRepo
	musings musingRepo
	tx      txManager
	cfg     config.SlugConfig
}

// NewService creates a new capture service.
func NewService(
	logger *slog.Logger,
	seeds seedRepo,
	tags tagRepo,
	txs transactionRepo,
	events eventRepo,
	musings musingRepo,
	tx txManager,
	cfg config.SlugConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "seed"),
		seeds:   seeds,
		tags:    tags,
		txs:     txs,
		events:  events,
		musings: musings,
		tx:      tx,
		cfg:     cfg,
	}
}
