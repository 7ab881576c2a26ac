package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hansol-kim/building-ledger/internal/common"
)

func TestUpsertScore(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &SaveBuildingRequest{Name: "점수 테스트"})
	require.NoError(t, err)

	t.Run("first write creates the row", func(t *testing.T) {
		score, err := repo.UpsertScore(ctx, created.ID, map[string]*int{
			"accessibilityScore": intp(9),
		})
		require.NoError(t, err)
		require.NotNil(t, score.AccessibilityScore)
		assert.Equal(t, 9, *score.AccessibilityScore)
		assert.InDelta(t, 5.2, score.TotalScore, 0.001)
	})

	t.Run("sparse merge keeps earlier ratings", func(t *testing.T) {
		score, err := repo.UpsertScore(ctx, created.ID, map[string]*int{
			"yieldScore": intp(10),
		})
		require.NoError(t, err)
		require.NotNil(t, score.AccessibilityScore)
		assert.Equal(t, 9, *score.AccessibilityScore)
		require.NotNil(t, score.YieldScore)
		assert.Equal(t, 10, *score.YieldScore)
		// accessibility group mean 19/3 at 15%, yield group mean 6 at 10%
		assert.InDelta(t, 5.3, score.TotalScore, 0.001)
	})

	t.Run("explicit null clears a rating", func(t *testing.T) {
		score, err := repo.UpsertScore(ctx, created.ID, map[string]*int{
			"accessibilityScore": nil,
		})
		require.NoError(t, err)
		assert.Nil(t, score.AccessibilityScore)
		require.NotNil(t, score.YieldScore)
		assert.InDelta(t, 5.1, score.TotalScore, 0.001)
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		before, err := repo.UpsertScore(ctx, created.ID, map[string]*int{})
		require.NoError(t, err)
		after, err := repo.UpsertScore(ctx, created.ID, map[string]*int{"bogusScore": intp(1)})
		require.NoError(t, err)
		assert.Equal(t, before.TotalScore, after.TotalScore)
	})

	t.Run("missing building", func(t *testing.T) {
		_, err := repo.UpsertScore(ctx, 9999, map[string]*int{"yieldScore": intp(5)})
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})
}
