package flashcard

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"brainforge/internal/model"
	"brainforge/internal/repository"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deck(n int) []model.Flashcard {
	cards := make([]model.Flashcard, n)
	for i := range cards {
		cards[i] = model.Flashcard{ID: fmt.Sprintf("c%d", i+1), Front: fmt.Sprintf("front %d", i+1)}
	}
	return cards
}

func newReview(t *testing.T, n int) (*Review, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	r := NewReview("course-1", deck(n), repository.NewStudyRepository(store), rand.New(rand.NewSource(42)))
	return r, store
}

func currentID(t *testing.T, r *Review) string {
	t.Helper()
	card, ok, err := r.Current(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	return card.ID
}

func TestNavigationIsCircular(t *testing.T) {
	ctx := context.Background()
	r, _ := newReview(t, 3)

	assert.Equal(t, "c1", currentID(t, r))
	require.NoError(t, r.Prev(ctx))
	assert.Equal(t, "c3", currentID(t, r))
	require.NoError(t, r.Next(ctx))
	assert.Equal(t, "c1", currentID(t, r))
	require.NoError(t, r.Next(ctx))
	require.NoError(t, r.Next(ctx))
	require.NoError(t, r.Next(ctx))
	assert.Equal(t, "c1", currentID(t, r))
}

func TestFlipResetsOnNavigation(t *testing.T) {
	ctx := context.Background()
	r, _ := newReview(t, 2)

	assert.True(t, r.Flip())
	require.NoError(t, r.Next(ctx))

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, snap.Flipped)
}

func TestMarkStudiedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r, _ := newReview(t, 3)

	require.NoError(t, r.MarkStudied(ctx))
	require.NoError(t, r.MarkStudied(ctx))

	n, err := r.StudiedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestModeSwitchKeepsIndexInRange(t *testing.T) {
	ctx := context.Background()
	r, _ := newReview(t, 5)

	require.NoError(t, r.MarkDifficult(ctx))
	for i := 0; i < 4; i++ {
		require.NoError(t, r.Next(ctx))
	}
	assert.Equal(t, "c5", currentID(t, r))

	require.NoError(t, r.SetMode(ctx, ModeDifficult))
	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.FilteredCount)
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, "c1", snap.Card.ID)
	assert.True(t, snap.Difficult)

	assert.ErrorIs(t, r.SetMode(ctx, Mode("bogus")), ErrInvalidMode)
}

func TestUnstudiedModeHidesStudiedCards(t *testing.T) {
	ctx := context.Background()
	r, _ := newReview(t, 3)

	require.NoError(t, r.SetMode(ctx, ModeUnstudied))
	require.NoError(t, r.Next(ctx))
	require.NoError(t, r.Next(ctx))
	require.NoError(t, r.MarkStudied(ctx))

	filtered, err := r.Filtered(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, lo.Map(filtered, func(c model.Flashcard, _ int) string { return c.ID }))

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	assert.Less(t, snap.Index, snap.FilteredCount)
}

func TestEmptyFilterHasNoCard(t *testing.T) {
	ctx := context.Background()
	r, _ := newReview(t, 2)

	require.NoError(t, r.SetMode(ctx, ModeDifficult))
	_, ok, err := r.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, r.MarkStudied(ctx), ErrNoCard)
	require.NoError(t, r.Next(ctx))
}

func TestResetProgressClearsPersistedKeys(t *testing.T) {
	ctx := context.Background()
	r, store := newReview(t, 3)

	require.NoError(t, r.MarkStudied(ctx))
	require.NoError(t, r.MarkDifficult(ctx))
	require.NoError(t, r.ResetProgress(ctx))

	n, err := r.StudiedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = store.Get(ctx, "studied_course-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.Get(ctx, "difficult_course-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestShufflePreservesFilteredSet(t *testing.T) {
	ctx := context.Background()
	r, _ := newReview(t, 8)

	require.NoError(t, r.MarkStudied(ctx))
	require.NoError(t, r.SetMode(ctx, ModeUnstudied))
	require.NoError(t, r.Next(ctx))

	before, err := r.Filtered(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Shuffle(ctx))
	after, err := r.Filtered(ctx)
	require.NoError(t, err)

	ids := func(cards []model.Flashcard) []string {
		return lo.Map(cards, func(c model.Flashcard, _ int) string { return c.ID })
	}
	assert.ElementsMatch(t, ids(before), ids(after))

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Index)

	// 被筛掉的卡片仍然留在原位置
	require.NoError(t, r.SetMode(ctx, ModeAll))
	all, err := r.Filtered(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c1", all[0].ID)
	assert.Len(t, all, 8)
}
