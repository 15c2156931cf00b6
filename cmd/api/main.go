package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pageza/foodgram/backend/config"
	"github.com/pageza/foodgram/backend/internal/database"
	"github.com/pageza/foodgram/backend/internal/logger"
	"github.com/pageza/foodgram/backend/internal/server"
	"github.com/pageza/foodgram/backend/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("failed to load .env file")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	if err := logger.InitLogger(logger.Options{
		Level:        cfg.LogLevel,
		LogstashURL:  cfg.LogstashURL,
		ElasticURL:   cfg.ElasticURL,
		ElasticIndex: cfg.ElasticIndex,
	}); err != nil {
		logrus.WithError(err).Fatal("failed to initialize logger")
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(ctx, db, cfg.MigrationsDir); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	// Rate limiting is skipped when Redis is unavailable.
	var redisClient *redis.Client
	if client, err := database.NewRedisClient(cfg); err != nil {
		logrus.WithError(err).Warn("redis unavailable, rate limiting disabled")
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	images, err := newImageStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize image storage")
	}

	srv := server.New(cfg, db, redisClient, images)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			logrus.WithError(err).Fatal("server error")
		}
	case <-ctx.Done():
		logrus.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server shutdown error")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logrus.Info("server stopped")
}

func newImageStore(ctx context.Context, cfg *config.Config) (storage.ImageStore, error) {
	switch cfg.MediaBackend {
	case "s3":
		return storage.NewS3Store(ctx, cfg.S3Bucket, cfg.AWSRegion)
	case "local":
		return storage.NewLocalStore(cfg.MediaDir, cfg.MediaURL)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.MediaBackend)
	}
}
