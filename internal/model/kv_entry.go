package model

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry mysql 驱动下的本地状态行
type KVEntry struct {
	Key       string         `gorm:"primaryKey;size:191"`
	Value     datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
