package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/awieserg/Notes-Ibacy/config"
	"github.com/awieserg/Notes-Ibacy/internal/api/handler"
	"github.com/awieserg/Notes-Ibacy/internal/api/middleware"
	"github.com/awieserg/Notes-Ibacy/internal/api/router"
	"github.com/awieserg/Notes-Ibacy/internal/notify"
	"github.com/awieserg/Notes-Ibacy/internal/persistence"
	"github.com/awieserg/Notes-Ibacy/internal/repository"
	"github.com/awieserg/Notes-Ibacy/internal/service"
	"github.com/awieserg/Notes-Ibacy/internal/store"
	"github.com/awieserg/Notes-Ibacy/pkg/database"
	applogger "github.com/awieserg/Notes-Ibacy/pkg/logger"
	"github.com/awieserg/Notes-Ibacy/pkg/redis"
)

// 每个 SSE 订阅者的事件缓冲
const eventBuffer = 64

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("IBACY_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.Strings("sinks", cfg.Storage.Sinks),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接 Redis（redis 持久化目标必需；仅用于限流时连接失败降级运行）
	var rdb *redis.Client
	if cfg.Storage.Uses(config.SinkRedis) || cfg.Server.RateLimit.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			if cfg.Storage.Uses(config.SinkRedis) {
				logger.Fatal("Redis 连接失败", zap.Error(err))
			}
			logger.Warn("Redis 连接失败，写接口限流将不可用", zap.Error(err))
			rdb = nil
		}
	}

	// 4. 连接数据库并迁移（仅 sql 持久化目标）
	var (
		db   *gorm.DB
		repo *repository.Repository
	)
	if cfg.Storage.Uses(config.SinkSQL) {
		db, err = database.NewDB(&cfg.Database, cfg.Log.Level, logger)
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}
		if err := database.Migrate(db, cfg.Database.Driver, logger); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
		repo = repository.NewRepository(db)
	}

	// 5. 持久化目标
	sinks, err := persistence.BuildSinks(&cfg.Storage, persistence.Deps{Redis: rdb, Repo: repo})
	if err != nil {
		logger.Fatal("初始化持久化目标失败", zap.Error(err))
	}

	// 6. Store + 启动加载
	notifier := notify.New()
	st := store.New(store.WithPublisher(notifier), store.WithLogger(logger))

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	pruned, err := persistence.LoadInto(loadCtx, sinks[0], st, logger)
	if err != nil {
		cancelLoad()
		logger.Fatal("加载快照失败", zap.Error(err))
	}
	if len(pruned) > 0 || len(sinks) > 1 {
		// 同步失败只记录日志，下一次变更会再次整体写入
		_ = persistence.SyncAll(loadCtx, sinks, st.Snapshot(), logger)
	}
	cancelLoad()

	// 7. 注册观察者：持久化层先于展示层
	writers := make([]*persistence.AsyncWriter, 0, len(sinks))
	for _, s := range sinks {
		w := persistence.NewAsyncWriter(s, logger)
		notifier.RegisterPersistence(w)
		writers = append(writers, w)
	}
	hub := notify.NewHub(eventBuffer, logger)
	notifier.RegisterPresentation(hub)

	// 8. 依赖注入: Store → Service → Handler
	svc := service.NewService(cfg, st, logger)
	h := handler.NewHandler(svc, hub)

	var limiter middleware.Limiter
	if rdb != nil {
		limiter = rdb
	}

	// 9. 初始化路由
	engine := router.Setup(cfg, h, limiter, logger)

	// 10. 启动 HTTP 服务器（优雅关闭）
	// 不设置 WriteTimeout：/events 为长连接
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	srv.RegisterOnShutdown(hub.Close)

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 11. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 等待排队中的快照写完
	flushCtx, cancelFlush := context.WithTimeout(context.Background(), cfg.Storage.ShutdownTimeout)
	defer cancelFlush()
	for _, w := range writers {
		if err := w.Close(flushCtx); err != nil {
			logger.Error("快照未能全部写入",
				zap.Int("pending", w.Pending()),
				zap.Uint64("last_seq", w.LastSeq()),
				zap.Error(err),
			)
		}
	}

	// 关闭数据库连接
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭", zap.Uint64("last_seq", notifier.LastSeq()))
}
