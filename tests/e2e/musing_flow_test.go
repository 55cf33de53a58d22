//go:build e2e

package e2e_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashmarten/seedlog-backend/internal/domain"
	musingsvc "github.com/ashmarten/seedlog-backend/internal/service/musing"
	seedsvc "github.com/ashmarten/seedlog-backend/internal/service/seed"
)

// TestE2E_MusingFlow walks the scheduler lifecycle: generate, select,
// show (starting the exclusion window), and the terminal transitions.
func TestE2E_MusingFlow(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	seed, err := env.Seeds.CaptureSeed(ctx, seedsvc.CaptureSeedInput{
		Content: "Learn about spaced repetition",
	})
	require.NoError(t, err)

	first, err := env.Musings.GenerateMusing(ctx, seed.ID, domain.MusingTemplateNumberedIdeas)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"ideas":["idea about: Learn about spaced repetition"]}`,
		string(first.Content))

	second, err := env.Musings.GenerateMusing(ctx, seed.ID, domain.MusingTemplateMarkdown)
	require.NoError(t, err)

	candidates, err := env.Musings.NextCandidates(ctx, musingsvc.NextCandidatesInput{
		SeedID: seed.ID,
		Count:  2,
	})
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	// Showing the seed starts the exclusion window for the whole seed.
	_, err = env.Musings.RecordShown(ctx, seed.ID, time.Time{})
	require.NoError(t, err)

	candidates, err = env.Musings.NextCandidates(ctx, musingsvc.NextCandidatesInput{SeedID: seed.ID})
	require.NoError(t, err)
	assert.Empty(t, candidates)

	// Terminal transitions still work inside the window.
	dismissed, err := env.Musings.Dismiss(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, dismissed.Dismissed)

	// Completing a dismissed musing is an idempotent no-op.
	same, err := env.Musings.Complete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, same.Dismissed)
	assert.False(t, same.Completed)

	completed, err := env.Musings.Complete(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)
	require.NotNil(t, completed.CompletedAt)
}
