package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/beingharisali/accounts-software-backend/config"
	"github.com/beingharisali/accounts-software-backend/internal/api/handler"
	"github.com/beingharisali/accounts-software-backend/internal/api/middleware"
	"github.com/beingharisali/accounts-software-backend/internal/api/router"
	"github.com/beingharisali/accounts-software-backend/internal/model"
	"github.com/beingharisali/accounts-software-backend/internal/repository"
	"github.com/beingharisali/accounts-software-backend/internal/service"
	"github.com/beingharisali/accounts-software-backend/pkg/database"
	"github.com/beingharisali/accounts-software-backend/pkg/jwt"
	applogger "github.com/beingharisali/accounts-software-backend/pkg/logger"
	"github.com/beingharisali/accounts-software-backend/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
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

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.App.Env),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// 3. 连接数据库并迁移
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	if err := database.Migrate(db, cfg.Database.Driver, logger, &model.User{}, &model.Student{}); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，黑名单与限流关闭）
	var (
		blacklist service.TokenBlacklist
		checker   middleware.TokenChecker
		limiter   middleware.RateLimiter
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单与限流将不可用", zap.Error(err))
		rdb = nil
	} else {
		blacklist, checker, limiter = rdb, rdb, rdb
	}

	// 5. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, blacklist, logger)
	h := handler.NewHandler(cfg, svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, router.Deps{
		JWT:     jwtMgr,
		Checker: checker,
		Limiter: limiter,
		Logger:  logger,
	})

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr), zap.String("base_path", cfg.Server.BasePath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if sqlDB, _ := db.DB(); sqlDB != nil {
		sqlDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
