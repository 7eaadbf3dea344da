package service

import (
	"context"
	"fmt"
	"sync"

	"brainforge/internal/client"
	"brainforge/internal/config"
	"brainforge/internal/mock"
	"brainforge/internal/model"
	"brainforge/internal/normalizer"
	"brainforge/internal/quiz"
	"brainforge/internal/util"
	"brainforge/pkg/logger"
	"brainforge/pkg/monitoring"

	"go.uber.org/zap"
)

const courseQuizTitle = "Course Comprehensive Assessment"

// QuizSessionView 会话快照，Notice 非空时页面显示示例题横幅
type QuizSessionView struct {
	ID           string `json:"id"`
	CourseID     string `json:"courseId"`
	ModuleNumber int    `json:"moduleNumber,omitempty"`
	Notice       string `json:"notice,omitempty"`
	quiz.Snapshot
}

type quizEntry struct {
	courseID     string
	moduleNumber int
	notice       string
	session      *quiz.Session

	mu     sync.Mutex
	cancel context.CancelFunc
}

// restartTimer 取消上一轮计时，返回新一轮计时使用的 ctx
func (e *quizEntry) restartTimer(root context.Context) context.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(root)
	e.cancel = cancel
	return ctx
}

func (e *quizEntry) stopTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

type QuizService struct {
	api   *client.API
	store *CourseStore
	cfg   config.QuizConfig

	root     context.Context
	stop     context.CancelFunc
	sessions *registry[*quizEntry]

	// dispatch 执行不关心结果的上报，测试中可替换为同步执行
	dispatch func(func())
}

func NewQuizService(api *client.API, store *CourseStore, cfg config.QuizConfig) *QuizService {
	root, stop := context.WithCancel(context.Background())
	return &QuizService{
		api:      api,
		store:    store,
		cfg:      cfg,
		root:     root,
		stop:     stop,
		sessions: newRegistry[*quizEntry](cfg.SessionTTL),
		dispatch: func(f func()) { go f() },
	}
}

// LoadModuleQuiz 依次尝试后端测验接口、课程内嵌测验、示例题
func (s *QuizService) LoadModuleQuiz(ctx context.Context, courseID string, moduleNumber int) (model.Quiz, string) {
	if !mock.IsMockID(courseID, s.store.MockPrefix()) {
		res := s.api.ModuleQuiz(ctx, courseID, moduleNumber)
		if res.Success {
			if q, ok := normalizer.NormalizeQuizResponse(res.Data, mock.ModuleQuizTimeLimit); ok {
				return q, ""
			}
		}
		logger.Log.Info("Module quiz endpoint returned no questions",
			zap.String("course_id", courseID),
			zap.Int("module", moduleNumber),
			zap.String("error", res.Error))
	}

	lookup := s.store.GetByID(ctx, courseID)
	title := fmt.Sprintf("Module %d", moduleNumber)
	if m, ok := lookup.Course.ModuleByNumber(moduleNumber); ok {
		title = m.Title
		if m.Quiz != nil && len(m.Quiz.Questions) > 0 && !lookup.Mock {
			q := *m.Quiz
			q.ModuleNumber = moduleNumber
			q.CourseTitle = lookup.Course.Title
			return q, ""
		}
	}

	monitoring.FallbackServed.WithLabelValues("quiz").Inc()
	q := mock.FallbackQuiz(title)
	q.ModuleNumber = moduleNumber
	return q, util.NoticeSampleQuiz
}

// LoadCourseQuiz 综合测验：后端接口优先，其次拼接各模块测验
func (s *QuizService) LoadCourseQuiz(ctx context.Context, courseID string) (model.Quiz, string) {
	if !mock.IsMockID(courseID, s.store.MockPrefix()) {
		res := s.api.CourseQuiz(ctx, courseID)
		if res.Success {
			if q, ok := normalizer.NormalizeQuizResponse(res.Data, mock.CourseQuizTimeLimit); ok {
				return q, ""
			}
		}
	}

	lookup := s.store.GetByID(ctx, courseID)
	if !lookup.Mock {
		if q, ok := combineModuleQuizzes(lookup.Course); ok {
			return q, ""
		}
	}

	monitoring.FallbackServed.WithLabelValues("quiz").Inc()
	q := mock.FallbackQuiz(lookup.Course.Title)
	q.ModuleTitle = courseQuizTitle
	q.TimeLimitSeconds = mock.CourseQuizTimeLimit
	return q, util.NoticeSampleQuiz
}

func combineModuleQuizzes(course model.Course) (model.Quiz, bool) {
	combined := model.Quiz{
		ModuleTitle:      courseQuizTitle,
		TimeLimitSeconds: mock.CourseQuizTimeLimit,
		CourseTitle:      course.Title,
	}
	for _, m := range course.Modules {
		if m.Quiz == nil {
			continue
		}
		for _, q := range m.Quiz.Questions {
			q.ID = fmt.Sprintf("m%d-%s", m.Number, q.ID)
			q.ModuleNumber = m.Number
			q.ModuleTitle = m.Title
			combined.Questions = append(combined.Questions, q)
		}
	}
	combined.TotalQuestions = len(combined.Questions)
	return combined, len(combined.Questions) > 0
}

// Start moduleNumber 为 0 表示课程综合测验
func (s *QuizService) Start(ctx context.Context, courseID string, moduleNumber int) (QuizSessionView, error) {
	var q model.Quiz
	var notice string
	if moduleNumber > 0 {
		q, notice = s.LoadModuleQuiz(ctx, courseID, moduleNumber)
	} else {
		q, notice = s.LoadCourseQuiz(ctx, courseID)
	}

	session := quiz.NewSession()
	if err := session.Load(q); err != nil {
		return QuizSessionView{}, err
	}

	entry := &quizEntry{
		courseID:     courseID,
		moduleNumber: moduleNumber,
		notice:       notice,
		session:      session,
	}
	session.OnComplete(func(res quiz.Result) {
		s.report(entry, res)
	})
	s.startTimer(entry)

	id := s.sessions.add(entry)
	logger.Log.Info("Quiz session started",
		zap.String("session_id", id),
		zap.String("course_id", courseID),
		zap.Int("module", moduleNumber),
		zap.Int("questions", len(q.Questions)),
		zap.Bool("sample", notice != ""))

	return s.view(id, entry), nil
}

func (s *QuizService) startTimer(entry *quizEntry) {
	ctx := entry.restartTimer(s.root)
	go quiz.RunTimer(ctx, entry.session, s.cfg.TickInterval)
}

// report 完成后上报成绩，示例课程不上报
func (s *QuizService) report(entry *quizEntry, res quiz.Result) {
	if mock.IsMockID(entry.courseID, s.store.MockPrefix()) {
		return
	}
	report := model.QuizResultReport{
		CourseID:       entry.courseID,
		ModuleNumber:   entry.moduleNumber,
		Score:          res.Percentage,
		TotalQuestions: res.TotalQuestions,
		CorrectAnswers: res.CorrectCount,
		TimeSpent:      res.TimeSpentSeconds,
		Answers:        entry.session.Answers(),
	}
	s.dispatch(func() {
		if r := s.api.SaveQuizResult(s.root, report); !r.Success {
			logger.Log.Warn("Failed to save quiz result",
				zap.String("course_id", report.CourseID),
				zap.String("error", r.Error))
		}
	})
}

func (s *QuizService) entry(id string) (*quizEntry, error) {
	e, ok := s.sessions.get(id)
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	return e, nil
}

func (s *QuizService) view(id string, e *quizEntry) QuizSessionView {
	return QuizSessionView{
		ID:           id,
		CourseID:     e.courseID,
		ModuleNumber: e.moduleNumber,
		Notice:       e.notice,
		Snapshot:     e.session.Snapshot(),
	}
}

func (s *QuizService) Get(id string) (QuizSessionView, error) {
	e, err := s.entry(id)
	if err != nil {
		return QuizSessionView{}, err
	}
	return s.view(id, e), nil
}

func (s *QuizService) Answer(id, letter string) (QuizSessionView, error) {
	e, err := s.entry(id)
	if err != nil {
		return QuizSessionView{}, err
	}
	if err := e.session.SelectAnswer(letter); err != nil {
		return QuizSessionView{}, err
	}
	return s.view(id, e), nil
}

func (s *QuizService) Next(id string) (QuizSessionView, error) {
	e, err := s.entry(id)
	if err != nil {
		return QuizSessionView{}, err
	}
	if _, err := e.session.Advance(); err != nil {
		return QuizSessionView{}, err
	}
	return s.view(id, e), nil
}

func (s *QuizService) Back(id string) (QuizSessionView, error) {
	e, err := s.entry(id)
	if err != nil {
		return QuizSessionView{}, err
	}
	if err := e.session.GoBack(); err != nil {
		return QuizSessionView{}, err
	}
	return s.view(id, e), nil
}

func (s *QuizService) Retake(id string) (QuizSessionView, error) {
	e, err := s.entry(id)
	if err != nil {
		return QuizSessionView{}, err
	}
	if err := e.session.Retake(); err != nil {
		return QuizSessionView{}, err
	}
	s.startTimer(e)
	return s.view(id, e), nil
}

func (s *QuizService) Result(id string) (quiz.Result, error) {
	e, err := s.entry(id)
	if err != nil {
		return quiz.Result{}, err
	}
	res, ok := e.session.Result()
	if !ok {
		return quiz.Result{}, quiz.ErrNotCompleted
	}
	return res, nil
}

// SweepIdle 清理超过 session_ttl 未访问的会话，由定时任务调用
func (s *QuizService) SweepIdle() int {
	removed := s.sessions.sweep()
	for _, e := range removed {
		e.stopTimer()
	}
	if len(removed) > 0 {
		logger.Log.Info("Swept idle quiz sessions", zap.Int("count", len(removed)))
	}
	return len(removed)
}

func (s *QuizService) ActiveSessions() int {
	return s.sessions.len()
}

// Close 停止所有计时器
func (s *QuizService) Close() {
	for _, e := range s.sessions.drain() {
		e.stopTimer()
	}
	s.stop()
}

