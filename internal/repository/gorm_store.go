package repository

import (
	"context"
	"errors"

	"brainforge/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore 把键值写入 kv_entries 表
type GormStore struct {
	DB     *gorm.DB
	prefix string
}

func NewGormStore(db *gorm.DB, prefix string) *GormStore {
	return &GormStore{DB: db, prefix: prefix}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntry
	err := s.DB.WithContext(ctx).Where("`key` = ?", withPrefix(s.prefix, key)).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	entry := model.KVEntry{
		Key:   withPrefix(s.prefix, key),
		Value: datatypes.JSON(value),
	}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.DB.WithContext(ctx).Where("`key` = ?", withPrefix(s.prefix, key)).Delete(&model.KVEntry{}).Error
}
