package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"brainforge/internal/client"
	"brainforge/internal/config"
	"brainforge/internal/mock"
	"brainforge/internal/model"
	"brainforge/internal/normalizer"
	"brainforge/internal/util"
	"brainforge/pkg/logger"
	"brainforge/pkg/monitoring"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// CourseLookup 单门课程的查询结果，Mock 为 true 时 Notice 说明原因
type CourseLookup struct {
	Course model.Course `json:"course"`
	Mock   bool         `json:"mock"`
	Notice string       `json:"notice,omitempty"`
}

// CourseStore 进程内唯一的课程缓存。列表整体替换，不做增量合并
type CourseStore struct {
	api        *client.API
	mockPrefix string

	mu      sync.RWMutex
	courses []model.Course
	details map[string]model.Course
	errMsg  string
	loaded  bool
	applied uint64

	seq      atomic.Uint64
	inFlight atomic.Int32
}

func NewCourseStore(api *client.API, cfg config.StoreConfig) *CourseStore {
	prefix := cfg.MockPrefix
	if prefix == "" {
		prefix = mock.DefaultPrefix
	}
	return &CourseStore{
		api:        api,
		mockPrefix: prefix,
		courses:    []model.Course{},
		details:    make(map[string]model.Course),
	}
}

func (s *CourseStore) MockPrefix() string {
	return s.mockPrefix
}

// LoadAll 拉取最近课程列表；失败时换成单课程演示数据并记录横幅文本。
// 每次加载带递增序号，比已生效加载更旧的响应会被丢弃
func (s *CourseStore) LoadAll(ctx context.Context) []model.Course {
	seq := s.seq.Add(1)
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	res := s.api.RecentCourses(ctx)

	var courses []model.Course
	var errMsg string
	if res.Success {
		courses = normalizer.NormalizeList(res.Data)
	} else {
		courses = mock.Courses()
		errMsg = fallbackNotice(res)
		monitoring.FallbackServed.WithLabelValues("course_list").Inc()
		logger.Log.Warn("Using demo courses",
			zap.String("kind", string(res.Kind)),
			zap.String("error", res.Error))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.applied {
		logger.Log.Info("Discarding stale course list",
			zap.Uint64("seq", seq),
			zap.Uint64("applied", s.applied))
		return cloneCourses(s.courses)
	}

	s.applied = seq
	s.courses = courses
	s.errMsg = errMsg
	s.loaded = true
	return cloneCourses(courses)
}

// Refresh 重新执行 LoadAll，正在进行的加载不会被取消或合并
func (s *CourseStore) Refresh(ctx context.Context) []model.Course {
	return s.LoadAll(ctx)
}

// EnsureLoaded 首次访问时加载
func (s *CourseStore) EnsureLoaded(ctx context.Context) []model.Course {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return s.Courses()
	}
	return s.LoadAll(ctx)
}

func (s *CourseStore) Courses() []model.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCourses(s.courses)
}

func (s *CourseStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *CourseStore) Loading() bool {
	return s.inFlight.Load() > 0
}

// GetByID mock 前缀直接返回演示课程；后端失败时同样退回演示课程
func (s *CourseStore) GetByID(ctx context.Context, id string) CourseLookup {
	if mock.IsMockID(id, s.mockPrefix) {
		return CourseLookup{Course: mock.Course(id), Mock: true}
	}
	return s.fetch(id, s.api.Course(ctx, id))
}

func (s *CourseStore) GetByContentID(ctx context.Context, contentID string) CourseLookup {
	return s.fetch(contentID, s.api.CourseByContent(ctx, contentID))
}

func (s *CourseStore) fetch(id string, res client.Result) CourseLookup {
	if !res.Success {
		monitoring.FallbackServed.WithLabelValues("course").Inc()
		logger.Log.Warn("Using demo course",
			zap.String("course_id", id),
			zap.String("kind", string(res.Kind)),
			zap.String("error", res.Error))
		return CourseLookup{Course: mock.Course(mock.CourseID), Mock: true, Notice: fallbackNotice(res)}
	}

	course := normalizer.NormalizeCourseResponse(res.Data)
	if course.ID == "" {
		course.ID = id
	}

	s.mu.Lock()
	s.details[course.ID] = course
	s.mu.Unlock()

	return CourseLookup{Course: course}
}

// Cached 最近一次成功获取的课程详情
func (s *CourseStore) Cached(id string) (model.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.details[id]
	return c, ok
}

// Summary 列表中的课程，没有详情时用于模块总数
func (s *CourseStore) Summary(id string) (model.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Find(s.courses, func(c model.Course) bool { return c.ID == id })
}

// Upsert 上传成功后把新课程放到列表最前面
func (s *CourseStore) Upsert(course model.Course) {
	if course.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details[course.ID] = course
	rest := lo.Reject(s.courses, func(c model.Course, _ int) bool { return c.ID == course.ID })
	s.courses = append([]model.Course{course}, rest...)
}

// Search 对标题和描述做模糊匹配，空关键字返回全部
func (s *CourseStore) Search(term string) []model.Course {
	courses := s.Courses()
	if term == "" {
		return courses
	}
	return lo.Filter(courses, func(c model.Course, _ int) bool {
		return fuzzy.MatchFold(term, c.Title) || fuzzy.MatchFold(term, c.Description)
	})
}

func fallbackNotice(res client.Result) string {
	if res.Kind == client.KindNetwork || res.Error == "" {
		return util.NoticeDemoData
	}
	return fmt.Sprintf("%s - using demo data", res.Error)
}

func cloneCourses(in []model.Course) []model.Course {
	out := make([]model.Course, len(in))
	copy(out, in)
	return out
}
