package repository

import (
	"context"
	"fmt"
	"sync"

	"brainforge/internal/model"

	"github.com/samber/lo"
)

// StudyRepository studied_{courseId} / difficult_{courseId}，值为卡片 id 数组
type StudyRepository struct {
	store KVStore
	mu    sync.Mutex
}

func NewStudyRepository(store KVStore) *StudyRepository {
	return &StudyRepository{store: store}
}

func (r *StudyRepository) list(ctx context.Context, kind model.StateKind, courseID string) ([]string, error) {
	ids := []string{}
	if _, err := readJSON(ctx, r.store, Key(kind, courseID), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *StudyRepository) Studied(ctx context.Context, courseID string) ([]string, error) {
	return r.list(ctx, model.KindStudied, courseID)
}

func (r *StudyRepository) Difficult(ctx context.Context, courseID string) ([]string, error) {
	return r.list(ctx, model.KindDifficult, courseID)
}

// Add 重复添加同一张卡片不改变集合
func (r *StudyRepository) Add(ctx context.Context, kind model.StateKind, courseID, cardID string) error {
	if kind != model.KindStudied && kind != model.KindDifficult {
		return fmt.Errorf("unsupported study kind %q", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.list(ctx, kind, courseID)
	if err != nil {
		return err
	}
	if lo.Contains(ids, cardID) {
		return nil
	}
	return writeJSON(ctx, r.store, Key(kind, courseID), append(ids, cardID))
}

// Reset 删除该课程的两个键
func (r *StudyRepository) Reset(ctx context.Context, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, kind := range []model.StateKind{model.KindStudied, model.KindDifficult} {
		if err := r.store.Delete(ctx, Key(kind, courseID)); err != nil {
			return fmt.Errorf("failed to delete %s: %w", Key(kind, courseID), err)
		}
	}
	return nil
}
