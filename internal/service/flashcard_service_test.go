package service

import (
	"context"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"brainforge/internal/flashcard"
	"brainforge/internal/mock"
	"brainforge/internal/repository"
	"brainforge/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlashcardService(store *CourseStore) *FlashcardService {
	study := repository.NewStudyRepository(repository.NewMemoryStore())
	svc := NewFlashcardService(store, study, time.Hour)
	svc.newRand = func() *rand.Rand { return rand.New(rand.NewSource(7)) }
	return svc
}

func TestFlashcardReviewOnMockCourse(t *testing.T) {
	svc := newTestFlashcardService(newTestStore(unreachableAPI()))
	ctx := context.Background()

	view, err := svc.Start(ctx, mock.CourseID)
	require.NoError(t, err)
	assert.Equal(t, 5, view.TotalCount)
	require.NotNil(t, view.Card)
	assert.Equal(t, "1", view.Card.ID)

	view, err = svc.Flip(ctx, view.ID)
	require.NoError(t, err)
	assert.True(t, view.Flipped)

	view, err = svc.MarkStudied(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.StudiedCount)
	assert.True(t, view.Studied)

	view, err = svc.SetMode(ctx, view.ID, flashcard.ModeUnstudied)
	require.NoError(t, err)
	assert.Equal(t, 4, view.FilteredCount)
	assert.Equal(t, "2", view.Card.ID)

	view, err = svc.Prev(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "5", view.Card.ID)

	_, err = svc.SetMode(ctx, view.ID, flashcard.Mode("random"))
	assert.ErrorIs(t, err, flashcard.ErrInvalidMode)

	view, err = svc.ResetProgress(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.StudiedCount)
	assert.Equal(t, 5, view.FilteredCount)
}

func TestFlashcardReviewUsesCourseDeck(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, networksCourse)
	}))
	svc := newTestFlashcardService(newTestStore(api))
	ctx := context.Background()

	view, err := svc.Start(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, view.Notice)
	assert.Equal(t, 2, view.TotalCount)

	view, err = svc.MarkDifficult(ctx, view.ID)
	require.NoError(t, err)
	view, err = svc.SetMode(ctx, view.ID, flashcard.ModeDifficult)
	require.NoError(t, err)
	assert.Equal(t, 1, view.FilteredCount)
	assert.Equal(t, "OSI", view.Card.Front)

	view, err = svc.Shuffle(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, 1, view.FilteredCount)
}

func TestFlashcardReviewNotFound(t *testing.T) {
	svc := newTestFlashcardService(newTestStore(unreachableAPI()))

	_, err := svc.Next(context.Background(), "missing")
	assert.ErrorIs(t, err, util.ErrReviewNotFound)
}

func TestFlashcardReviewFallbackNotice(t *testing.T) {
	svc := newTestFlashcardService(newTestStore(unreachableAPI()))

	view, err := svc.Start(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, util.NoticeDemoData, view.Notice)
	assert.Equal(t, 5, view.TotalCount)
	assert.Equal(t, 1, svc.ActiveReviews())
}
