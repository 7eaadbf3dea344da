package quiz

import (
	"math"
	"strings"

	"brainforge/internal/model"

	"github.com/samber/lo"
)

const NotAnswered = "Not answered"

type Result struct {
	EarnedPoints     int          `json:"earnedPoints"`
	MaxPoints        int          `json:"maxPoints"`
	Percentage       int          `json:"percentage"`
	CorrectCount     int          `json:"correctCount"`
	AnsweredCount    int          `json:"answeredCount"`
	TotalQuestions   int          `json:"totalQuestions"`
	TimeSpentSeconds int          `json:"timeSpentSeconds"`
	TimedOut         bool         `json:"timedOut"`
	Review           []ReviewItem `json:"review"`
}

// ReviewItem 完成后逐题回顾
type ReviewItem struct {
	QuestionID     string `json:"questionId"`
	Question       string `json:"question"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	Answered       bool   `json:"answered"`
	PointsAwarded  int    `json:"pointsAwarded"`
	Points         int    `json:"points"`
	Explanation    string `json:"explanation"`
	KnowledgeArea  string `json:"knowledgeArea"`
	CommonMistake  string `json:"commonMistake"`
}

// Grade 比较时忽略大小写和空白，只有答对才得分
func Grade(q model.Question, selected string) model.AnsweredQuestion {
	answer := strings.ToUpper(strings.TrimSpace(selected))
	correct := strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
	ok := answer != "" && answer == correct

	awarded := 0
	if ok {
		awarded = q.Points
	}
	return model.AnsweredQuestion{
		QuestionID:     q.ID,
		SelectedAnswer: answer,
		IsCorrect:      ok,
		PointsAwarded:  awarded,
		CorrectAnswer:  correct,
	}
}

// Score answers 按题目位置索引，nil 表示未作答，计为错误且 0 分
func Score(questions []model.Question, answers []*model.AnsweredQuestion) Result {
	res := Result{
		TotalQuestions: len(questions),
		Review:         make([]ReviewItem, 0, len(questions)),
	}

	for i, q := range questions {
		res.MaxPoints += q.Points

		item := ReviewItem{
			QuestionID:     q.ID,
			Question:       q.Text,
			SelectedAnswer: NotAnswered,
			CorrectAnswer:  q.CorrectAnswer,
			Points:         q.Points,
			Explanation:    q.Explanation,
			KnowledgeArea:  q.KnowledgeArea,
			CommonMistake:  q.CommonMistake,
		}

		if i < len(answers) && answers[i] != nil {
			a := answers[i]
			item.Answered = true
			item.SelectedAnswer = a.SelectedAnswer
			item.IsCorrect = a.IsCorrect
			item.PointsAwarded = a.PointsAwarded
		}
		res.Review = append(res.Review, item)
	}

	res.AnsweredCount = lo.CountBy(res.Review, func(r ReviewItem) bool { return r.Answered })
	res.CorrectCount = lo.CountBy(res.Review, func(r ReviewItem) bool { return r.IsCorrect })
	res.EarnedPoints = lo.SumBy(res.Review, func(r ReviewItem) int { return r.PointsAwarded })
	res.Percentage = Percentage(res.EarnedPoints, res.MaxPoints)

	return res
}

func Percentage(earned, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(earned) / float64(total)))
}
