package configwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"brainforge/internal/config"
	"brainforge/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ConfigReloader 收到重新加载后的完整配置
type ConfigReloader func(cfg *config.Config)

const debounce = time.Second

// WatchConfig 监听配置文件所在目录，文件写入或被替换后防抖重新加载，直到 ctx 结束
func WatchConfig(ctx context.Context, configPath string, reloader ConfigReloader) error {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	// 编辑器保存时常常是重命名替换，监听目录才能持续收到事件
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch config dir: %w", err)
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// 防抖处理
			timer.Reset(debounce)
		case <-timer.C:
			newCfg, err := config.LoadConfig(filepath.Dir(absPath))
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			logger.Log.Info("Config reloaded", zap.String("path", absPath))
			reloader(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
