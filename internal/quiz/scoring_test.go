package quiz

import (
	"math"
	"testing"

	"brainforge/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageMatchesCorrectRatio(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for k := 0; k <= n; k++ {
			for _, p := range []int{1, 5, 10} {
				q := makeQuiz(n, p, "A", 600)
				answers := make([]*model.AnsweredQuestion, n)
				for i := 0; i < n; i++ {
					letter := "B"
					if i < k {
						letter = "A"
					}
					a := Grade(q.Questions[i], letter)
					answers[i] = &a
				}

				res := Score(q.Questions, answers)
				want := int(math.Round(100 * float64(k) / float64(n)))
				require.Equal(t, want, res.Percentage, "n=%d k=%d p=%d", n, k, p)
				require.Equal(t, k, res.CorrectCount)
				require.Equal(t, k*p, res.EarnedPoints)
			}
		}
	}
}

func TestScoreZeroMaxPoints(t *testing.T) {
	q := makeQuiz(2, 0, "A", 600)
	res := Score(q.Questions, nil)

	assert.Equal(t, 0, res.MaxPoints)
	assert.Equal(t, 0, res.Percentage)
	assert.Equal(t, 0, res.AnsweredCount)
	assert.Equal(t, NotAnswered, res.Review[0].SelectedAnswer)
}

func TestGradeIgnoresCaseAndWhitespace(t *testing.T) {
	q := model.Question{ID: "1", CorrectAnswer: " b", Points: 7}

	a := Grade(q, "B ")
	assert.True(t, a.IsCorrect)
	assert.Equal(t, 7, a.PointsAwarded)
	assert.Equal(t, "B", a.CorrectAnswer)

	assert.False(t, Grade(q, "").IsCorrect)
}
