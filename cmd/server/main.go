package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sristy17/sgay-v1/config"
	"github.com/sristy17/sgay-v1/internal/api/handler"
	"github.com/sristy17/sgay-v1/internal/api/router"
	"github.com/sristy17/sgay-v1/internal/repository"
	"github.com/sristy17/sgay-v1/internal/service"
	"github.com/sristy17/sgay-v1/pkg/jwt"
	applogger "github.com/sristy17/sgay-v1/pkg/logger"
	"github.com/sristy17/sgay-v1/pkg/redis"
)

func main() {
	// 1. config
	cfg, err := config.Load(os.Getenv("SGAY_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
		zap.Bool("auth", cfg.Auth.Enabled),
	)

	// 3. record store
	repo, closeStore, err := repository.Open(cfg, logger)
	if err != nil {
		logger.Fatal("open record store failed", zap.Error(err))
	}
	defer closeStore()

	// 4. redis, optional: without it locks are process-local and logout is unavailable
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, falling back to process-local locks", zap.Error(err))
			rdb = nil
		}
	}

	// 5. Service → Handler → Router
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	engine := router.Setup(cfg, handler.NewHandler(svc), jwtMgr, rdb, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 6. graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
