package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"academic_records/internal/api"
	"academic_records/internal/models"
	"academic_records/internal/repository"
	"academic_records/internal/seed"
	"academic_records/internal/service"
	"academic_records/internal/storage"
	"academic_records/internal/utils"
	"academic_records/internal/validation"
	"academic_records/pkg/config"
)

func main() {
	// Load configuration from config.yaml, .env and RECORDS_* variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Structured logger shared by every layer, gorm included
	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	// Open the database connection
	db, err := storage.Open(cfg.DB, logger)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Create or update the tables of every model
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// Roles and demo accounts
	if cfg.Seed.Enabled {
		if err := seed.Run(context.Background(), db.DB); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		logger.Info("database seeded")
	}

	// Redis is optional; without it tokens live in the access_tokens table
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient, err = storage.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to initialize redis: %v", err)
		}
		defer redisClient.Close()
	}

	// Initialize repositories and services
	repos := repository.NewRepositories(db, redisClient)
	issuer := utils.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	services := service.NewServices(repos, validation.New(db), issuer, logger)

	// Set up the gin router
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	api.SetupRoutes(r, services, logger)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start the server, then wait for a termination signal
	go func() {
		logger.Info("starting server", "address", cfg.Server.Address, "db", cfg.DB.Driver, "redis", redisClient != nil)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
