package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lamnt/koctrack-backend/config"
	"github.com/lamnt/koctrack-backend/internal/app/controller"
	"github.com/lamnt/koctrack-backend/internal/app/repository"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	"github.com/lamnt/koctrack-backend/internal/db"
	"github.com/lamnt/koctrack-backend/internal/middleware"
	"github.com/lamnt/koctrack-backend/internal/router"
	"github.com/lamnt/koctrack-backend/internal/scheduler"
	"github.com/lamnt/koctrack-backend/internal/scraper"
	"github.com/lamnt/koctrack-backend/internal/session"
	"github.com/lamnt/koctrack-backend/internal/storage"
	"github.com/lamnt/koctrack-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting KOCTRACK Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Backfill an empty datastore from the bootstrap export (optional)
	if err := db.Backfill(cfg.Database.BootstrapFile); err != nil {
		logger.Warn("Failed to backfill datastore", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize session store
	var sessions session.Store
	if cfg.Session.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessions = session.NewRedisStore(client, cfg.Session.TTL)
	} else {
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	storeRepo := repository.NewStoreRepository(db.GetDB())
	influencerRepo := repository.NewInfluencerRepository(db.GetDB())
	bookingRepo := repository.NewBookingRepository(db.GetDB())
	trafficRepo := repository.NewTrafficRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions)
	userService := service.NewUserService(userRepo)
	storeService := service.NewStoreService(db.GetDB(), storeRepo, bookingRepo)
	influencerService := service.NewInfluencerService(db.GetDB(), influencerRepo, bookingRepo, trafficRepo)
	bookingService := service.NewBookingService(db.GetDB(), bookingRepo, storeRepo, influencerRepo)
	trafficService := service.NewTrafficService(db.GetDB(), trafficRepo, bookingRepo, influencerRepo)
	overviewService := service.NewOverviewService(bookingRepo, trafficRepo, storeRepo, influencerRepo)

	videoScraper := scraper.New(cfg.Scraper)

	// Initialize upload storage
	var uploads storage.Storage
	if cfg.S3.Bucket != "" {
		uploads = storage.NewS3Storage(cfg.S3)
	} else {
		local, err := storage.NewLocalStorage("./uploads", "/uploads")
		if err != nil {
			logger.Fatal("Failed to initialize local upload storage", err)
		}
		uploads = local
	}

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	storeController := controller.NewStoreController(storeService)
	influencerController := controller.NewInfluencerController(influencerService)
	bookingController := controller.NewBookingController(bookingService, storeService)
	trafficController := controller.NewTrafficController(trafficService, videoScraper)
	userController := controller.NewUserController(userService)
	overviewController := controller.NewOverviewController(
		overviewService,
		storeService,
		influencerService,
		bookingService,
		trafficService,
	)
	uploadController := controller.NewUploadController(uploads)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Setup router
	r := router.NewRouter(
		authController,
		storeController,
		influencerController,
		bookingController,
		trafficController,
		userController,
		overviewController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start the daily traffic refresh
	var refresh *scheduler.TrafficRefreshScheduler
	if cfg.Scheduler.Enabled {
		refresh = scheduler.NewTrafficRefreshScheduler(trafficService, videoScraper, cfg.Scheduler)
		if err := refresh.Start(); err != nil {
			logger.Fatal("Failed to start traffic refresh scheduler", err)
		}
	}

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	if refresh != nil {
		refresh.Stop()
	}
	logger.Info("Server stopped successfully")
}
