package database

import (
	"fmt"

	"brainforge/internal/config"
	"brainforge/internal/model"
	applog "brainforge/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 只在 kv.driver=mysql 时调用，表结构只有 kv_entries
func InitDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	applog.Log.Info("Database connection established")

	if err := db.AutoMigrate(&model.KVEntry{}); err != nil {
		return nil, err
	}

	applog.Log.Info("Database migration completed")
	return db, nil
}
