package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"brainforge/internal/model"
)

var ErrNotFound = errors.New("key not found")

// KVStore 本地状态的键值存储，value 为 JSON
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Key 组合存储键 {kind}_{courseId}
func Key(kind model.StateKind, courseID string) string {
	return fmt.Sprintf("%s_%s", kind, courseID)
}

func withPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}

func readJSON(ctx context.Context, store KVStore, key string, out any) (bool, error) {
	data, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func writeJSON(ctx context.Context, store KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
