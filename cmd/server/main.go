package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "drivehire-backend/internal/api/http"
	"drivehire-backend/internal/config"
	"drivehire-backend/internal/logger"
	"drivehire-backend/internal/notify"
	"drivehire-backend/internal/realtime"
	"drivehire-backend/internal/repository/postgres"
	"drivehire-backend/internal/security"
	"drivehire-backend/internal/service"
	"drivehire-backend/internal/storage"
	"drivehire-backend/internal/tracking"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DriveHire Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	redisClient, err := tracking.NewClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	trackingStore := tracking.NewStore(redisClient)

	proofStore, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		logger.Error("Failed to initialize proof storage", "error", err)
		log.Fatalf("Failed to initialize proof storage: %v", err)
	}

	hub := realtime.NewHub()
	go hub.Run()

	var pushSender notify.PushSender = notify.NoopPushSender{}
	if cfg.Push.CredentialsFile != "" {
		fcm, err := notify.NewFCMSender(context.Background(), cfg.Push.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize FCM, push disabled", "error", err)
		} else {
			pushSender = fcm
			logger.Info("FCM push notifications enabled")
		}
	}
	notifier := notify.NewDispatcher(store.NotificationRepository, store.UserRepository, hub, pushSender)

	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.DriverRepository,
		store.UserRepository,
		store.PaymentRepository,
		trackingStore,
		notifier,
		emailSvc,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.BookingRepository,
		store.DriverRepository,
		store.UserRepository,
		proofStore,
		notifier,
		emailSvc,
	)
	reviewSvc := service.NewReviewService(
		store.ReviewRepository,
		store.BookingRepository,
		store.DriverRepository,
		notifier,
	)
	driverSvc := service.NewDriverService(store.DriverRepository, notifier)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	trackingSvc := service.NewTrackingService(
		trackingStore,
		store.BookingRepository,
		store.DriverRepository,
		hub,
	)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Bookings:      bookingSvc,
		Payments:      paymentSvc,
		Reviews:       reviewSvc,
		Drivers:       driverSvc,
		Notifications: noteSvc,
		Tracking:      trackingSvc,
		ProofStore:    proofStore,
		MaxFileSizeMB: cfg.Storage.MaxFileSizeMB,
		Hub:           hub,
		Tokens:        tokenManager,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
