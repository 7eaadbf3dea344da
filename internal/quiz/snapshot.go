package quiz

import "brainforge/internal/model"

// QuestionView 作答中展示的题目，不含正确答案和解析
type QuestionView struct {
	ID            string                   `json:"id"`
	Text          string                   `json:"text"`
	Options       []model.Option           `json:"options"`
	Difficulty    model.QuestionDifficulty `json:"difficulty"`
	KnowledgeArea string                   `json:"knowledgeArea"`
	Points        int                      `json:"points"`
}

type Snapshot struct {
	State            State         `json:"state"`
	Title            string        `json:"title"`
	CurrentIndex     int           `json:"currentIndex"`
	QuestionCount    int           `json:"questionCount"`
	TotalQuestions   int           `json:"totalQuestions"`
	RemainingSeconds int           `json:"remainingSeconds"`
	AnsweredCount    int           `json:"answeredCount"`
	Question         *QuestionView `json:"question,omitempty"`
	SelectedAnswer   string        `json:"selectedAnswer,omitempty"`
	CanAdvance       bool          `json:"canAdvance"`
	CanGoBack        bool          `json:"canGoBack"`
	IsLast           bool          `json:"isLast"`
	Result           *Result       `json:"result,omitempty"`
	PreviousResult   *Result       `json:"previousResult,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.quiz.Questions)
	snap := Snapshot{
		State:            s.state,
		Title:            s.quiz.ModuleTitle,
		CurrentIndex:     s.current,
		QuestionCount:    n,
		TotalQuestions:   s.quiz.TotalQuestions,
		RemainingSeconds: s.remaining,
		Result:           s.result,
		PreviousResult:   s.previous,
	}
	for _, a := range s.answers {
		if a != nil {
			snap.AnsweredCount++
		}
	}

	if s.state == StateInProgress && s.current < n {
		q := s.quiz.Questions[s.current]
		snap.Question = &QuestionView{
			ID:            q.ID,
			Text:          q.Text,
			Options:       q.Options,
			Difficulty:    q.Difficulty,
			KnowledgeArea: q.KnowledgeArea,
			Points:        q.Points,
		}
		snap.SelectedAnswer = s.pending[s.current]
		snap.CanAdvance = snap.SelectedAnswer != ""
		snap.CanGoBack = s.current > 0
		snap.IsLast = s.current == n-1
	}
	return snap
}
