package quiz

import (
	"context"
	"fmt"
	"testing"
	"time"

	"brainforge/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func options() []model.Option {
	return []model.Option{{Letter: "A", Text: "x"}, {Letter: "B", Text: "y"}, {Letter: "C", Text: "z"}, {Letter: "D", Text: "w"}}
}

func makeQuiz(n, points int, correct string, limit int) model.Quiz {
	q := model.Quiz{TotalQuestions: n, ModuleTitle: "Test Quiz", TimeLimitSeconds: limit}
	for i := 0; i < n; i++ {
		q.Questions = append(q.Questions, model.Question{
			ID:            fmt.Sprintf("q%d", i+1),
			Text:          fmt.Sprintf("Question %d", i+1),
			Options:       options(),
			CorrectAnswer: correct,
			Points:        points,
		})
	}
	return q
}

func loaded(t *testing.T, q model.Quiz) *Session {
	t.Helper()
	s := NewSession()
	assert.Equal(t, StateLoading, s.State())
	require.NoError(t, s.Load(q))
	assert.Equal(t, StateInProgress, s.State())
	return s
}

func TestCorrectAnswerAwardsPoints(t *testing.T) {
	s := loaded(t, makeQuiz(1, 10, "B", 600))

	require.NoError(t, s.SelectAnswer("B"))
	done, err := s.Advance()
	require.NoError(t, err)
	assert.True(t, done)

	answers := s.Answers()
	require.Len(t, answers, 1)
	assert.True(t, answers[0].IsCorrect)
	assert.Equal(t, 10, answers[0].PointsAwarded)

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, 100, res.Percentage)
	assert.Equal(t, 10, res.EarnedPoints)
}

func TestIncorrectAnswerAwardsNothing(t *testing.T) {
	s := loaded(t, makeQuiz(1, 10, "B", 600))

	require.NoError(t, s.SelectAnswer("c"))
	_, err := s.Advance()
	require.NoError(t, err)

	answers := s.Answers()
	require.Len(t, answers, 1)
	assert.False(t, answers[0].IsCorrect)
	assert.Equal(t, 0, answers[0].PointsAwarded)
	assert.Equal(t, "C", answers[0].SelectedAnswer)
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	s := loaded(t, makeQuiz(2, 5, "A", 600))

	_, err := s.Advance()
	assert.ErrorIs(t, err, ErrNoAnswerSelected)
	assert.ErrorIs(t, s.SelectAnswer("E"), ErrInvalidAnswer)
}

func TestSelectAnswerOverwrites(t *testing.T) {
	s := loaded(t, makeQuiz(1, 5, "A", 600))

	require.NoError(t, s.SelectAnswer("B"))
	require.NoError(t, s.SelectAnswer(" a "))
	assert.Equal(t, "A", s.Snapshot().SelectedAnswer)
}

func TestGoBackRestoresSelection(t *testing.T) {
	s := loaded(t, makeQuiz(3, 5, "A", 600))

	require.NoError(t, s.SelectAnswer("D"))
	_, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Snapshot().CurrentIndex)
	assert.Empty(t, s.Snapshot().SelectedAnswer)

	require.NoError(t, s.GoBack())
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Equal(t, "D", snap.SelectedAnswer)
	assert.Len(t, s.Answers(), 1)

	// 已在第一题时保持不变
	require.NoError(t, s.GoBack())
	assert.Equal(t, 0, s.Snapshot().CurrentIndex)
}

func TestLoadRejectsEmptyQuiz(t *testing.T) {
	s := NewSession()
	assert.ErrorIs(t, s.Load(model.Quiz{}), ErrEmptyQuiz)
	assert.Equal(t, StateLoading, s.State())
	assert.ErrorIs(t, s.SelectAnswer("A"), ErrNotInProgress)
}

func TestTimerExpiryCompletes(t *testing.T) {
	s := loaded(t, makeQuiz(3, 5, "A", 3))

	require.NoError(t, s.SelectAnswer("A"))
	_, err := s.Advance()
	require.NoError(t, err)
	require.NoError(t, s.SelectAnswer("A"))

	assert.False(t, s.Tick())
	assert.False(t, s.Tick())
	assert.True(t, s.Tick())
	assert.Equal(t, StateCompleted, s.State())

	// 待提交的第二题答案在超时时被记录
	answers := s.Answers()
	assert.Len(t, answers, 2)
	assert.LessOrEqual(t, len(answers), 3)

	res, ok := s.Result()
	require.True(t, ok)
	assert.True(t, res.TimedOut)
	assert.Equal(t, 2, res.CorrectCount)
	assert.Equal(t, 67, res.Percentage)
	assert.Equal(t, 3, res.TimeSpentSeconds)
	assert.Equal(t, NotAnswered, res.Review[2].SelectedAnswer)
	assert.False(t, res.Review[2].IsCorrect)

	assert.False(t, s.Tick())
	_, err = s.Advance()
	assert.ErrorIs(t, err, ErrNotInProgress)
}

func TestRetakeKeepsPreviousResult(t *testing.T) {
	s := loaded(t, makeQuiz(1, 5, "A", 600))
	assert.ErrorIs(t, s.Retake(), ErrNotCompleted)

	require.NoError(t, s.SelectAnswer("A"))
	_, err := s.Advance()
	require.NoError(t, err)
	first := s.Attempt()

	require.NoError(t, s.Retake())
	snap := s.Snapshot()
	assert.Equal(t, StateInProgress, snap.State)
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Equal(t, 600, snap.RemainingSeconds)
	assert.Nil(t, snap.Result)
	require.NotNil(t, snap.PreviousResult)
	assert.Equal(t, 100, snap.PreviousResult.Percentage)
	assert.Greater(t, s.Attempt(), first)

	require.NoError(t, s.SelectAnswer("B"))
	_, err = s.Advance()
	require.NoError(t, err)
	snap = s.Snapshot()
	assert.Nil(t, snap.PreviousResult)
	require.NotNil(t, snap.Result)
	assert.Equal(t, 0, snap.Result.Percentage)
}

func TestOnCompleteCalledOnce(t *testing.T) {
	s := loaded(t, makeQuiz(1, 5, "A", 600))
	calls := 0
	s.OnComplete(func(Result) { calls++ })

	require.NoError(t, s.SelectAnswer("A"))
	_, err := s.Advance()
	require.NoError(t, err)
	s.Tick()

	assert.Equal(t, 1, calls)
}

func TestSnapshotHidesCorrectAnswer(t *testing.T) {
	s := loaded(t, makeQuiz(2, 5, "C", 600))
	snap := s.Snapshot()

	require.NotNil(t, snap.Question)
	assert.Equal(t, "q1", snap.Question.ID)
	assert.False(t, snap.CanAdvance)
	assert.False(t, snap.CanGoBack)
	assert.False(t, snap.IsLast)
}

func TestRunTimerStopsOnCompletion(t *testing.T) {
	s := loaded(t, makeQuiz(1, 5, "A", 2))

	done := make(chan struct{})
	go func() {
		RunTimer(context.Background(), s, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not stop")
	}
	assert.Equal(t, StateCompleted, s.State())
}

func TestRunTimerStopsOnCancel(t *testing.T) {
	s := loaded(t, makeQuiz(1, 5, "A", 600))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunTimer(ctx, s, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not stop")
	}
	assert.Equal(t, StateInProgress, s.State())
}
