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

	"github.com/grisascutelnic/DrumBun/internal/config"
	"github.com/grisascutelnic/DrumBun/internal/handlers"
	"github.com/grisascutelnic/DrumBun/internal/middleware"
	"github.com/grisascutelnic/DrumBun/internal/repositories/mongodb"
	"github.com/grisascutelnic/DrumBun/internal/services"
	"github.com/grisascutelnic/DrumBun/internal/utils"
	"github.com/grisascutelnic/DrumBun/pkg/cache"
	"github.com/grisascutelnic/DrumBun/pkg/database"
	"github.com/grisascutelnic/DrumBun/pkg/logger"
	"github.com/grisascutelnic/DrumBun/pkg/storage"
	"github.com/grisascutelnic/DrumBun/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	if err := utils.SetReferenceTimezone(cfg.App.Timezone); err != nil {
		log.WithError(err).Fatal("Invalid timezone configuration")
	}

	// MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Redis is optional; repositories tolerate a nil cache.
	var cacheService services.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, running without cache")
		} else {
			cacheService = redisCache
			defer redisCache.Close()
		}
	}

	storageProvider, err := newStorageProvider(cfg.Storage)
	if err != nil {
		log.WithError(err).Fatal("Failed to init storage")
	}

	// Repositories
	rideRepo := mongodb.NewRideRepository(db.Database, cacheService)
	ratingRepo := mongodb.NewRatingRepository(db.Database, cacheService)
	userRepo := mongodb.NewUserRepository(db.Database)

	// Services
	rideService := services.NewRideService(rideRepo, userRepo, log)
	ratingService := services.NewRatingService(ratingRepo, userRepo, log)
	queryService := services.NewRideQueryService(rideService, userRepo, log)
	userService := services.NewUserService(userRepo, storageProvider, log)

	// Handlers
	rideHandler := handlers.NewRideHandler(rideService, queryService, log)
	ratingHandler := handlers.NewRatingHandler(ratingService, log)
	userHandler := handlers.NewUserHandler(userService, log)
	healthHandler := handlers.NewHealthHandler(db.Database, cacheService, log)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))

	v1 := router.Group("/api/v1")
	{
		routes.SetupRideRoutes(v1, rideHandler)
		routes.SetupRatingRoutes(v1, ratingHandler)
		routes.SetupUserRoutes(v1, userHandler)
	}

	router.GET("/health", healthHandler.Health)

	// Background sweeper for expired ride listings
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := services.NewSweeper(rideService, cfg.App.SweepInterval, log)
	go sweeper.Start(ctx)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.App.Port).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
}

func newStorageProvider(cfg *config.StorageConfig) (storage.StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return storage.NewAWSS3Storage(cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.CDNDomain)
	default:
		return storage.NewLocalStorage(cfg.Local.BasePath, cfg.Local.BaseURL)
	}
}
