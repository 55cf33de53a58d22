package seed

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
	"github.com/ashmarten/seedlog-backend/internal/projection"
)

// slugStore is the slice of a registry repo the generator needs. Both the
// seed and tag repos satisfy it.
type slugStore interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	AssignSlug(ctx context.Context, id uuid.UUID, slug string) error
}

// assignSlug generates a unique slug from text and writes it to the registry
// row. The candidate sequence is "prefix/text", then "prefix/text-2",
// "prefix/text-3" and so on; uniqueness is re-checked against the store on
// every attempt so concurrent writers converge instead of colliding.
func (s *Service) assignSlug(ctx context.Context, store slugStore, id uuid.UUID, text string) (string, error) {
	base := domain.BuildSlug(id, text)

	maxAttempts := s.cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 100
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		candidate := base
		if attempt > 1 {
			candidate = base + "-" + strconv.Itoa(attempt)
		}

		taken, err := store.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if taken {
			continue
		}

		err = store.AssignSlug(ctx, id, candidate)
		if err == nil {
			return candidate, nil
		}
		// Lost a race for this candidate: try the next counter value.
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}

	return "", fmt.Errorf("slug for %s after %d attempts: %w", id, maxAttempts, domain.ErrSlugExhausted)
}

// EnsureSeedSlug assigns a slug to a seed that has none, deriving the text
// from the projected content. Idempotent: an already-slugged seed returns
// its slug unchanged. Used by the backfill job.
func (s *Service) EnsureSeedSlug(ctx context.Context, id uuid.UUID) (string, error) {
	row, err := s.seeds.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if row.Slug != nil {
		return *row.Slug, nil
	}

	txs, err := s.txs.ListByEntity(ctx, id)
	if err != nil {
		return "", fmt.Errorf("load transaction log: %w", err)
	}
	state, err := projection.ProjectSeed(txs)
	if err != nil {
		return "", fmt.Errorf("project seed: %w", err)
	}

	return s.assignSlug(ctx, s.seeds, id, state.Content)
}

// EnsureTagSlug assigns a slug to a tag that has none, deriving the text
// from the projected name. Idempotent like EnsureSeedSlug.
func (s *Service) EnsureTagSlug(ctx context.Context, id uuid.UUID) (string, error) {
	row, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if row.Slug != nil {
		return *row.Slug, nil
	}

	txs, err := s.txs.ListByEntity(ctx, id)
	if err != nil {
		return "", fmt.Errorf("load transaction log: %w", err)
	}
	state, err := projection.ProjectTag(txs)
	if err != nil {
		return "", fmt.Errorf("project tag: %w", err)
	}

	return s.assignSlug(ctx, s.tags, id, state.Name)
}
