package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nutrilife/backend/config"
	"github.com/nutrilife/backend/internal/database"
	"github.com/nutrilife/backend/internal/logger"
	"github.com/nutrilife/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Must(logger.Options{Name: "api"}).Fatal("failed to load configuration", zap.Error(err))
	}

	log := logger.Must(logger.Options{
		Name:       "api",
		Production: cfg.Environment.IsProduction(),
		Dir:        cfg.LogDir,
	})
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis is optional: without it the API runs uncached and unthrottled.
	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.Warn("redis unavailable", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	ctx := context.Background()
	srv, err := server.New(ctx, cfg, db, redisClient, log)
	if err != nil {
		log.Fatal("failed to build server", zap.Error(err))
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
