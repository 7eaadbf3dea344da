package repository

import (
	"context"
	"fmt"
	"sync"

	"brainforge/internal/model"
)

// ProgressRepository progress_{courseId} -> {module number: 0|100}
type ProgressRepository struct {
	store KVStore
	mu    sync.Mutex
}

func NewProgressRepository(store KVStore) *ProgressRepository {
	return &ProgressRepository{store: store}
}

func (r *ProgressRepository) Get(ctx context.Context, courseID string) (map[int]int, error) {
	progress := map[int]int{}
	if _, err := readJSON(ctx, r.store, Key(model.KindProgress, courseID), &progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// SetModule 百分比只取 0 或 100
func (r *ProgressRepository) SetModule(ctx context.Context, courseID string, moduleNumber, percent int) (map[int]int, error) {
	if moduleNumber <= 0 {
		return nil, fmt.Errorf("invalid module number %d", moduleNumber)
	}
	if percent >= 100 {
		percent = 100
	} else {
		percent = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	progress, err := r.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	progress[moduleNumber] = percent

	if err := writeJSON(ctx, r.store, Key(model.KindProgress, courseID), progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *ProgressRepository) Clear(ctx context.Context, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Delete(ctx, Key(model.KindProgress, courseID))
}
