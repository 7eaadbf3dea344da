// @title BrainForge Gateway API
// @version 1.0
// @description BrainForge 学习平台的客户端网关，课程浏览、测验、闪卡复习与本地进度。

// @host localhost:8080
// @BasePath /api

package main

import (
	"flag"
	"log"

	"brainforge/internal/app"
	"brainforge/internal/config"
	"brainforge/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件目录（包含 config.yaml）")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	application, err := app.NewApp(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}

	if err := application.Run(); err != nil {
		logger.Log.Error("Server stopped with error", zap.Error(err))
	}
}
