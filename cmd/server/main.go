package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hearing-scheduler/internal/app"
	"github.com/nekogravitycat/hearing-scheduler/internal/config"
	"github.com/nekogravitycat/hearing-scheduler/internal/db"
	"github.com/nekogravitycat/hearing-scheduler/internal/logger"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Logger
	zapLogger, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	zap.ReplaceGlobals(zapLogger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN, int32(cfg.DBMaxConns))
	if err != nil {
		zapLogger.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, zapLogger.Named("migrate")); err != nil {
			zapLogger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	container := app.NewContainer(app.Config{
		IsProduction:           cfg.IsProduction,
		ProdOrigins:            cfg.ProdOrigins,
		DBPool:                 pool,
		Logger:                 zapLogger,
		JWTSecret:              cfg.JWTSecret,
		JWTTTL:                 cfg.JWTTokenTTL,
		ScheduleDefaultWindows: cfg.ScheduleDefaultWindows,
		ScheduleMaxRangeDays:   cfg.ScheduleMaxRangeDays,
		RateLimitPerMinute:     cfg.RateLimitPerMinute,
		RateLimitBurst:         cfg.RateLimitBurst,
		RequestTimeout:         cfg.RequestTimeout,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		zapLogger.Info("server running", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	zapLogger.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exited gracefully")
}
