package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-events/internal/auth"
	"ms-events/internal/config"
	"ms-events/internal/database/migrations"
	"ms-events/internal/events"
	events_db "ms-events/internal/events/db"
	"ms-events/internal/events/event_api"
	"ms-events/internal/events/qr"
	"ms-events/internal/files"
	files_db "ms-events/internal/files/db"
	"ms-events/internal/files/file_api"
	"ms-events/internal/kafka"
	"ms-events/internal/logger"
	"ms-events/internal/users"
	users_db "ms-events/internal/users/db"
	"ms-events/internal/users/user_api"
)

func connectPostgres(cfg config.DatabaseConfig, logger *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		logger.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.DSN)
		if err != nil {
			logger.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		logger.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	logger.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, logger *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("REDIS", fmt.Sprintf("Redis connection error, view cache disabled: %v", err))
		return nil
	}
	logger.Info("REDIS", fmt.Sprintf("Redis connection successful to %s", cfg.Addr))
	return client
}

func main() {
	logger := logger.NewLogger()
	defer logger.Close()

	logger.Info("APP", "Starting Event Service initialization")

	if err := godotenv.Load(); err != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	}
	cfg := config.Load()

	ctx := context.Background()

	bunDB := connectPostgres(cfg.Database, logger)
	defer bunDB.Close()

	if cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrations.MigrateOptions{
			MigrationsDir: cfg.Database.MigrationsDir,
			AutoMigrate:   true,
		})
		if err := runner.Run(); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
		}
		logger.Info("DATABASE", "Migrations applied")
	}

	var viewCache events.ViewCache
	if cfg.Redis.Enabled {
		if redisClient := connectRedis(ctx, cfg.Redis, logger); redisClient != nil {
			defer redisClient.Close()
			viewCache = events.NewRedisViewCache(redisClient, cfg.Redis.ViewTTL)
		}
	}

	var lifecycle events.LifecyclePublisher
	if cfg.Kafka.Enabled {
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, kafka.LifecycleTopics); err != nil {
			logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		lifecycle = producer
		logger.Info("KAFKA", "Kafka producer initialized successfully")
	}

	issuer := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	eventService := events.NewEventService(&events_db.DB{Bun: bunDB}, lifecycle, viewCache)
	userService := users.NewUserService(&users_db.DB{Bun: bunDB}, issuer)
	fileService := files.NewFileService(&files_db.DB{Bun: bunDB}, cfg.Storage.UploadDir, cfg.Server.BaseURL)

	eventHandler := event_api.NewHandler(eventService, qr.NewGenerator(cfg.Server.BaseURL), logger)
	userHandler := user_api.NewHandler(userService, logger)
	fileHandler := file_api.NewHandler(fileService, logger)

	logger.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	// --- Public Routes ---
	r.Post("/users", userHandler.Signup)
	r.Post("/sessions", userHandler.CreateSession)
	r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(cfg.Storage.UploadDir))))

	// --- Protected Routes ---
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(issuer))
		logger.Info("AUTH", "JWT middleware applied to protected routes")

		r.Put("/users", userHandler.UpdateUser)
		r.Post("/files", fileHandler.Upload)
		eventHandler.RegisterRoutes(r)
		logger.Info("ROUTER", "Event routes registered under /events")
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("Event Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "Event Service shutdown complete")
	}
}
