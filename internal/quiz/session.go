// Package quiz 单次测验作答的状态机：Loading -> InProgress -> Completed。
//
// 数据加载失败不会产生失败状态，调用方总是提供一份测验（真实或示例）。
// Completed 是终态，只能通过 Retake 回到 InProgress。
package quiz

import (
	"errors"
	"strings"
	"sync"

	"brainforge/internal/model"

	"github.com/samber/lo"
)

type State string

const (
	StateLoading    State = "loading"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// DefaultTimeLimit 测验未给出时限时使用
const DefaultTimeLimit = 600

var (
	ErrNotInProgress    = errors.New("quiz is not in progress")
	ErrNotCompleted     = errors.New("quiz is not completed")
	ErrNoAnswerSelected = errors.New("no answer selected")
	ErrInvalidAnswer    = errors.New("answer must be one of A, B, C, D")
	ErrEmptyQuiz        = errors.New("quiz has no questions")
)

type Session struct {
	mu sync.Mutex

	state     State
	quiz      model.Quiz
	current   int
	answers   []*model.AnsweredQuestion
	pending   []string
	remaining int
	attempt   int
	timedOut  bool

	result   *Result
	previous *Result

	onComplete func(Result)
}

func NewSession() *Session {
	return &Session{state: StateLoading}
}

// OnComplete 每次进入 Completed 时在锁外回调
func (s *Session) OnComplete(fn func(Result)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onComplete = fn
}

// Load 题目就绪后进入 InProgress，从第 0 题开始并重置计时
func (s *Session) Load(q model.Quiz) error {
	if len(q.Questions) == 0 {
		return ErrEmptyQuiz
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.quiz = q
	s.result = nil
	s.previous = nil
	s.reset()
	return nil
}

func (s *Session) reset() {
	n := len(s.quiz.Questions)
	s.state = StateInProgress
	s.current = 0
	s.answers = make([]*model.AnsweredQuestion, n)
	s.pending = make([]string, n)
	s.remaining = s.quiz.TimeLimitSeconds
	if s.remaining <= 0 {
		s.remaining = DefaultTimeLimit
	}
	s.timedOut = false
	s.attempt++
}

// SelectAnswer 设置当前题的待提交答案，可重复覆盖
func (s *Session) SelectAnswer(letter string) error {
	answer := strings.ToUpper(strings.TrimSpace(letter))
	if !lo.Contains(model.AnswerLetters, answer) {
		return ErrInvalidAnswer
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	s.pending[s.current] = answer
	return nil
}

// Advance 记录当前题的答案，最后一题之后进入 Completed
func (s *Session) Advance() (bool, error) {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return false, ErrNotInProgress
	}
	if s.pending[s.current] == "" {
		s.mu.Unlock()
		return false, ErrNoAnswerSelected
	}

	s.record(s.current)
	if s.current < len(s.quiz.Questions)-1 {
		s.current++
		s.mu.Unlock()
		return false, nil
	}

	res, cb := s.complete()
	s.mu.Unlock()
	notify(cb, res)
	return true, nil
}

// GoBack 回到上一题并恢复已选答案，已记录的作答保留
func (s *Session) GoBack() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	if s.current > 0 {
		s.current--
	}
	if a := s.answers[s.current]; a != nil {
		s.pending[s.current] = a.SelectedAnswer
	}
	return nil
}

// Tick 倒计时一秒，归零时记录待提交答案并结束测验
func (s *Session) Tick() bool {
	completed, _ := s.tickFor(s.Attempt())
	return completed
}

// tickLocked active=false 表示该轮计时已失效（已完成或已重考）
func (s *Session) tickLocked(attempt int) (completed, active bool) {
	if s.state != StateInProgress || attempt != s.attempt {
		return false, false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		return false, true
	}

	if s.pending[s.current] != "" {
		s.record(s.current)
	}
	s.timedOut = true
	return true, true
}

func (s *Session) tickFor(attempt int) (completed, active bool) {
	s.mu.Lock()
	completed, active = s.tickLocked(attempt)
	if !completed {
		s.mu.Unlock()
		return completed, active
	}
	res, cb := s.complete()
	s.mu.Unlock()
	notify(cb, res)
	return true, true
}

func (s *Session) record(idx int) {
	a := Grade(s.quiz.Questions[idx], s.pending[idx])
	s.answers[idx] = &a
}

func (s *Session) complete() (Result, func(Result)) {
	s.state = StateCompleted
	res := Score(s.quiz.Questions, s.answers)
	res.TimeSpentSeconds = s.timeLimit() - s.remaining
	res.TimedOut = s.timedOut
	s.result = &res
	s.previous = nil
	return res, s.onComplete
}

func (s *Session) timeLimit() int {
	if s.quiz.TimeLimitSeconds > 0 {
		return s.quiz.TimeLimitSeconds
	}
	return DefaultTimeLimit
}

func notify(cb func(Result), res Result) {
	if cb != nil {
		cb(res)
	}
}

// Retake 回到第 0 题重新作答，上一轮结果保留到新一轮完成
func (s *Session) Retake() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCompleted {
		return ErrNotCompleted
	}
	s.previous = s.result
	s.result = nil
	s.reset()
	return nil
}

func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Attempt 每次 Load/Retake 自增，用于让旧的计时器失效
func (s *Session) Attempt() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// Answers 已记录的作答，按题目顺序
func (s *Session) Answers() []model.AnsweredQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AnsweredQuestion, 0, len(s.answers))
	for _, a := range s.answers {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

func (s *Session) Quiz() model.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz
}
