package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	predictioncache "github.com/Fawaz-asif/Email-spam-detector/internal/adapter/cache"
	"github.com/Fawaz-asif/Email-spam-detector/internal/adapter/http/router"
	"github.com/Fawaz-asif/Email-spam-detector/internal/adapter/model"
	"github.com/Fawaz-asif/Email-spam-detector/internal/adapter/repository/postgres"
	"github.com/Fawaz-asif/Email-spam-detector/internal/adapter/repository/sqlite"
	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/cache"
	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/config"
	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/database"
	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/logger"
	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/metrics"
	"github.com/Fawaz-asif/Email-spam-detector/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Load model artifacts; the service never starts without them
	artifacts, err := model.LoadArtifacts(&cfg.Model)
	if err != nil {
		log.Error("Failed to load model artifacts", zap.Error(err))
		return fmt.Errorf("failed to load model artifacts: %w", err)
	}
	log.Info("Model loaded",
		zap.String("classifier", artifacts.Classifier.Name()),
		zap.Int("features", artifacts.Vectorizer.Dimension()),
		zap.Bool("probabilities", artifacts.SupportsProbabilities()),
		zap.String("version", artifacts.Version),
	)

	m := metrics.New(prometheus.DefaultRegisterer)
	opts := usecase.Options{
		Metrics:       m,
		Logger:        log,
		ModelVersion:  artifacts.Version,
		Probabilities: artifacts.SupportsProbabilities(),
	}

	// Initialize database (optional, prediction history)
	var db *sql.DB
	if cfg.Database.Enabled {
		db, err = openHistory(cfg, log, &opts)
		if err != nil {
			return err
		}
	}

	// Initialize Redis (optional, continue without it)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis")
			opts.Cache = predictioncache.NewPredictionCache(redisClient, cfg.Redis.TTL)
		}
	}

	uc := usecase.NewPredictionUsecase(artifacts.Predictor(), opts)

	// Setup router
	metadataPath := model.MetadataPath(&cfg.Model)
	r := router.Setup(router.Deps{
		Usecase:      uc,
		DB:           db,
		Redis:        redisClient,
		Logger:       log,
		Metrics:      m,
		Gatherer:     prometheus.DefaultGatherer,
		AllowOrigins: cfg.CORS.AllowOrigins,
		Metadata: func() (json.RawMessage, error) {
			return model.ReadMetadata(metadataPath)
		},
	})

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  2 * cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if db != nil {
		_ = db.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}

// openHistory connects the configured history backend and sets opts.History
func openHistory(cfg *config.Config, log *zap.Logger, opts *usecase.Options) (*sql.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(&cfg.Database)
		if err != nil {
			log.Error("Failed to open sqlite database", zap.Error(err))
			return nil, err
		}
		log.Info("Opened sqlite database", zap.String("path", cfg.Database.Path))
		opts.History = sqlite.NewPredictionRepository(db)
		return db, nil

	case config.DriverPostgres, "":
		gdb, err := database.NewPostgresDB(&cfg.Database, log)
		if err != nil {
			log.Error("Failed to connect to database", zap.Error(err))
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Connected to database")

		if err := database.AutoMigrate(gdb); err != nil {
			log.Error("Failed to run migrations", zap.Error(err))
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Database migrations completed")

		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		opts.History = postgres.NewPredictionRepository(gdb)
		return sqlDB, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
