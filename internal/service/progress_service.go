package service

import (
	"context"
	"fmt"

	"brainforge/internal/client"
	"brainforge/internal/mock"
	"brainforge/internal/model"
	"brainforge/internal/repository"
	"brainforge/pkg/logger"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type ProgressService struct {
	api   *client.API
	store *CourseStore
	repo  *repository.ProgressRepository

	dispatch func(func())
}

func NewProgressService(api *client.API, store *CourseStore, repo *repository.ProgressRepository) *ProgressService {
	return &ProgressService{
		api:      api,
		store:    store,
		repo:     repo,
		dispatch: func(f func()) { go f() },
	}
}

// totalModules 先看课程详情缓存，再看列表摘要
func (s *ProgressService) totalModules(courseID string) int {
	if c, ok := s.store.Cached(courseID); ok {
		return c.ModulesCount
	}
	if c, ok := s.store.Summary(courseID); ok {
		return c.ModulesCount
	}
	if mock.IsMockID(courseID, s.store.MockPrefix()) {
		return mock.Course(courseID).ModulesCount
	}
	return 0
}

func (s *ProgressService) record(courseID string, modules map[int]int) model.ProgressRecord {
	completed := lo.CountBy(lo.Values(modules), func(p int) bool { return p >= 100 })
	total := s.totalModules(courseID)

	rec := model.ProgressRecord{
		CourseID:         courseID,
		Modules:          modules,
		CompletedModules: completed,
		TotalModules:     total,
	}
	if total > 0 {
		rec.PercentComplete = min(100, completed*100/total)
	}
	return rec
}

func (s *ProgressService) GetProgress(ctx context.Context, courseID string) (model.ProgressRecord, error) {
	modules, err := s.repo.Get(ctx, courseID)
	if err != nil {
		return model.ProgressRecord{}, fmt.Errorf("failed to load progress: %w", err)
	}
	return s.record(courseID, modules), nil
}

// MarkModule complete=false 时把该模块重置为 0
func (s *ProgressService) MarkModule(ctx context.Context, courseID string, moduleNumber int, complete bool) (model.ProgressRecord, error) {
	percent, progressType := 0, model.ProgressTypeModuleReset
	if complete {
		percent, progressType = 100, model.ProgressTypeModuleCompleted
	}

	modules, err := s.repo.SetModule(ctx, courseID, moduleNumber, percent)
	if err != nil {
		return model.ProgressRecord{}, fmt.Errorf("failed to save progress: %w", err)
	}

	s.report(model.ProgressReport{
		CourseID:     courseID,
		ModuleNumber: moduleNumber,
		ProgressType: progressType,
		Score:        percent,
	})
	return s.record(courseID, modules), nil
}

func (s *ProgressService) ResetProgress(ctx context.Context, courseID string) (model.ProgressRecord, error) {
	if err := s.repo.Clear(ctx, courseID); err != nil {
		return model.ProgressRecord{}, fmt.Errorf("failed to reset progress: %w", err)
	}
	s.report(model.ProgressReport{CourseID: courseID, ProgressType: model.ProgressTypeCourseReset})
	return s.record(courseID, map[int]int{}), nil
}

// report 示例课程只保存在本地
func (s *ProgressService) report(r model.ProgressReport) {
	if mock.IsMockID(r.CourseID, s.store.MockPrefix()) {
		return
	}
	s.dispatch(func() {
		if res := s.api.SaveProgress(context.Background(), r); !res.Success {
			logger.Log.Warn("Failed to save progress",
				zap.String("course_id", r.CourseID),
				zap.String("progress_type", r.ProgressType),
				zap.String("error", res.Error))
		}
	})
}
