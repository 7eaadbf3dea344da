package normalizer

import (
	"testing"

	"brainforge/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestCorrectAnswerAlwaysSingleLetter(t *testing.T) {
	options := normalizeOptions(gjson.Parse(`["alpha","beta","gamma","delta"]`))

	cases := map[string]string{
		" b ":    "B",
		"c":      "C",
		"D":      "D",
		"B) y":   "B",
		"gamma":  "C",
		"":       "A",
		"zzz":    "A",
		"  d.  ": "D",
	}
	for in, want := range cases {
		got := CorrectAnswer(in, options)
		assert.Equal(t, want, got, "input %q", in)
		assert.Contains(t, model.AnswerLetters, got)
	}
}

func TestOptionsPaddedAndTruncated(t *testing.T) {
	short := normalizeOptions(gjson.Parse(`["A) one","B) two"]`))
	require.Len(t, short, 4)
	assert.Equal(t, "two", short[1].Text)
	assert.Equal(t, "Option C", short[2].Text)

	long := normalizeOptions(gjson.Parse(`["1","2","3","4","5"]`))
	require.Len(t, long, 4)
	assert.Equal(t, "4", long[3].Text)

	byMap := normalizeOptions(gjson.Parse(`{"b":"bee","A":"ay","D":"dee"}`))
	assert.Equal(t, []string{"ay", "bee", "Option C", "dee"}, []string{byMap[0].Text, byMap[1].Text, byMap[2].Text, byMap[3].Text})
}

func TestQuestionDefaults(t *testing.T) {
	quiz := NormalizeQuiz(gjson.Parse(`{"questions":[{"question":"Why?","points":0,"difficulty":"EXTREME"}]}`), "Routing", 600)

	require.Len(t, quiz.Questions, 1)
	q := quiz.Questions[0]
	assert.Equal(t, "1", q.ID)
	assert.Equal(t, DefaultPoints, q.Points)
	assert.Equal(t, model.QuestionMedium, q.Difficulty)
	assert.Equal(t, DefaultExplanation, q.Explanation)
	assert.Equal(t, "Routing", q.KnowledgeArea)
	assert.Equal(t, DefaultCommonMistake, q.CommonMistake)
	assert.Equal(t, "A", q.CorrectAnswer)

	assert.Equal(t, "Routing Quiz", quiz.ModuleTitle)
	assert.Equal(t, 600, quiz.TimeLimitSeconds)
	assert.Equal(t, 1, quiz.TotalQuestions)
}

func TestTotalQuestionsMayDrift(t *testing.T) {
	quiz := NormalizeQuiz(gjson.Parse(`{"totalQuestions":5,"questions":[{"question":"a"},{"question":"b"}]}`), "", 600)
	assert.Equal(t, 5, quiz.TotalQuestions)
	assert.Len(t, quiz.Questions, 2)
}

func TestNormalizeQuizResponse(t *testing.T) {
	raw := `{"success":true,"quiz":{"questions":[{"question":"Q","options":["a","b","c","d"],"correctAnswer":"d","module":2,"module_title":"Two"}],"totalQuestions":1,"timeLimit":1200,"moduleTitle":"Course Comprehensive Assessment"},"module_number":2,"course_title":"Course"}`

	quiz, ok := NormalizeQuizResponse([]byte(raw), 600)

	require.True(t, ok)
	assert.Equal(t, 1200, quiz.TimeLimitSeconds)
	assert.Equal(t, "Course Comprehensive Assessment", quiz.ModuleTitle)
	assert.Equal(t, 2, quiz.ModuleNumber)
	assert.Equal(t, "Course", quiz.CourseTitle)
	assert.Equal(t, "D", quiz.Questions[0].CorrectAnswer)
	assert.Equal(t, 2, quiz.Questions[0].ModuleNumber)
	assert.Equal(t, "Two", quiz.Questions[0].ModuleTitle)

	_, ok = NormalizeQuizResponse([]byte(`{"success":true,"quiz":{"questions":[]}}`), 600)
	assert.False(t, ok)
}
