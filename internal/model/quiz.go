package model

import "fmt"

var AnswerLetters = []string{"A", "B", "C", "D"}

type QuestionDifficulty string

const (
	QuestionEasy   QuestionDifficulty = "easy"
	QuestionMedium QuestionDifficulty = "medium"
	QuestionHard   QuestionDifficulty = "hard"
)

type Quiz struct {
	TotalQuestions   int        `json:"totalQuestions"`
	ModuleTitle      string     `json:"moduleTitle"`
	TimeLimitSeconds int        `json:"timeLimitSeconds"`
	Questions        []Question `json:"questions"`

	// 仅由测验接口返回
	ModuleNumber int    `json:"moduleNumber,omitempty"`
	CourseTitle  string `json:"courseTitle,omitempty"`
}

type Option struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

func (o Option) String() string {
	return fmt.Sprintf("%s) %s", o.Letter, o.Text)
}

type Question struct {
	ID            string             `json:"id"`
	Text          string             `json:"text"`
	Options       []Option           `json:"options"`
	CorrectAnswer string             `json:"correctAnswer"`
	Explanation   string             `json:"explanation"`
	Difficulty    QuestionDifficulty `json:"difficulty"`
	KnowledgeArea string             `json:"knowledgeArea"`
	CommonMistake string             `json:"commonMistake"`
	Points        int                `json:"points"`

	// 课程综合测验中标记题目来源
	ModuleNumber int    `json:"moduleNumber,omitempty"`
	ModuleTitle  string `json:"moduleTitle,omitempty"`
}

// AnsweredQuestion 一次作答记录
type AnsweredQuestion struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer string `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	PointsAwarded  int    `json:"pointsAwarded"`
	CorrectAnswer  string `json:"correctAnswer"`
}

// QuizResultReport 提交到 /analytics/quiz-result 的负载
type QuizResultReport struct {
	CourseID       string             `json:"course_id"`
	ModuleNumber   int                `json:"module_number,omitempty"`
	Score          int                `json:"score"`
	TotalQuestions int                `json:"total_questions"`
	CorrectAnswers int                `json:"correct_answers"`
	TimeSpent      int                `json:"time_spent"`
	Answers        []AnsweredQuestion `json:"answers"`
}
