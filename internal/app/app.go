package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brainforge/internal/client"
	"brainforge/internal/config"
	"brainforge/internal/controller"
	"brainforge/internal/middleware"
	"brainforge/internal/repository"
	"brainforge/internal/service"
	"brainforge/internal/util"
	"brainforge/pkg/configwatcher"
	"brainforge/pkg/database"
	"brainforge/pkg/logger"
	"brainforge/pkg/monitoring"
	"brainforge/pkg/security"
	"brainforge/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sweepInterval = time.Minute

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	api             *client.API
	services        *services
	scheduler       *gocron.Scheduler
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)

	ctx    context.Context
	cancel context.CancelFunc
}

type repositories struct {
	kv       repository.KVStore
	progress *repository.ProgressRepository
	study    *repository.StudyRepository
}

type services struct {
	store     *service.CourseStore
	quiz      *service.QuizService
	flashcard *service.FlashcardService
	progress  *service.ProgressService
	upload    *service.UploadService
	storage   *service.StorageService
}

type controllers struct {
	course    *controller.CourseController
	quiz      *controller.QuizController
	flashcard *controller.FlashcardController
	progress  *controller.ProgressController
	upload    *controller.UploadController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// initKVStore 按 kv.driver 选择本地进度存储
func (a *App) initKVStore(cfg *config.Config) (repository.KVStore, error) {
	switch cfg.KV.Driver {
	case util.KVRedis:
		rdb, err := database.InitRedis(a.ctx, &cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		a.Redis = rdb
		return repository.NewRedisStore(rdb, cfg.KV.Prefix), nil
	case util.KVMySQL:
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = db
		return repository.NewGormStore(db, cfg.KV.Prefix), nil
	default:
		return repository.NewMemoryStore(), nil
	}
}

func (a *App) initRepositories(kv repository.KVStore) *repositories {
	return &repositories{
		kv:       kv,
		progress: repository.NewProgressRepository(kv),
		study:    repository.NewStudyRepository(kv),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.store = service.NewCourseStore(a.api, cfg.Store)
	s.storage = service.NewStorageService(&cfg.Storage)
	s.quiz = service.NewQuizService(a.api, s.store, cfg.Quiz)
	s.flashcard = service.NewFlashcardService(s.store, repos.study, cfg.Quiz.SessionTTL)
	s.progress = service.NewProgressService(a.api, s.store, repos.progress)
	s.upload = service.NewUploadService(a.api, s.store, s.storage)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		course:    controller.NewCourseController(s.store, a.api),
		quiz:      controller.NewQuizController(s.quiz),
		flashcard: controller.NewFlashcardController(s.flashcard),
		progress:  controller.NewProgressController(s.progress),
		upload:    controller.NewUploadController(s.upload),
		health:    controller.NewHealthController(a.api, s.store, s.quiz, s.flashcard),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 定时刷新课程列表并清理闲置会话
func (a *App) startBackgroundTasks(s *services, cfg *config.Config) error {
	a.scheduler = gocron.NewScheduler(time.UTC)

	if cfg.Store.RefreshInterval > 0 {
		_, err := a.scheduler.Every(cfg.Store.RefreshInterval).SingletonMode().Do(func() {
			courses := s.store.Refresh(a.ctx)
			logger.Log.Debug("Scheduled course refresh", zap.Int("courses", len(courses)))
		})
		if err != nil {
			return fmt.Errorf("failed to schedule course refresh: %w", err)
		}
	}

	_, err := a.scheduler.Every(sweepInterval).WaitForSchedule().Do(func() {
		s.quiz.SweepIdle()
		s.flashcard.SweepIdle()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	a.scheduler.StartAsync()
	return nil
}

// watchConfig 配置文件变化时切换后端地址
func (a *App) watchConfig(cfg *config.Config) {
	if cfg.ConfigPath == "" {
		return
	}
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		if newCfg.Backend.BaseURL != a.api.Client().BaseURL() {
			logger.Log.Info("Backend URL changed", zap.String("base_url", newCfg.Backend.BaseURL))
			a.api.Client().SetBaseURL(newCfg.Backend.BaseURL)
			a.services.store.Refresh(a.ctx)
		}
	})

	go func() {
		err := configwatcher.WatchConfig(a.ctx, cfg.ConfigPath, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		api:    client.NewAPI(client.New(cfg.Backend)),
		ctx:    ctx,
		cancel: cancel,
	}

	kv, err := app.initKVStore(cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	repos := app.initRepositories(kv)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("brainforge-gateway", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	if err := app.startBackgroundTasks(app.services, cfg); err != nil {
		app.Close()
		return nil, err
	}
	app.watchConfig(cfg)

	logger.Log.Info("Application initialized",
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("kv_driver", cfg.KV.Driver),
		zap.String("storage", cfg.Storage.Type))

	return app, nil
}

// Close 停止后台任务、计时器并释放连接
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.services != nil {
		a.services.quiz.Close()
	}
	a.cancel()

	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.Close()
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	a.Close()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
