// Package main runs the event management HTTP server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventhub/config"
	"eventhub/internal/adapters/auth"
	"eventhub/internal/adapters/email"
	"eventhub/internal/adapters/storage"
	delivery "eventhub/internal/delivery/http"
	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
	"eventhub/internal/repository/postgres"
	"eventhub/internal/services"
)

// @title EventHub API
// @version 1.0
// @description Event management backend: events, categories, RSVPs, and role-gated dashboards.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		cancel()
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	cancel()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	groupRepo := postgres.NewGroupRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	imageRepo := postgres.NewEventImageRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)
	activationRepo := postgres.NewActivationTokenRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(0)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		SES: email.SESConfig{
			Region:          cfg.SES.Region,
			AccessKeyID:     cfg.SES.AccessKeyID,
			SecretAccessKey: cfg.SES.SecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}
	media := newMediaStore(cfg, logger)

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	authService := services.NewAuthService(userRepo, groupRepo, activationRepo, hasher,
		tokenIssuer, cfg.JWTExpiry, emailService, cfg.ActivationBaseURL, logger)
	userService := services.NewUserService(userRepo, groupRepo, hasher, logger)
	categoryService := services.NewCategoryService(categoryRepo, logger)
	eventService := services.NewEventService(eventRepo, imageRepo, categoryRepo, media, logger)
	rsvpService := services.NewRSVPService(rsvpRepo, eventRepo, userRepo, emailService, logger)
	groupService := services.NewGroupService(groupRepo, logger)
	dashboardService := services.NewDashboardService(eventRepo, categoryRepo, rsvpRepo, userRepo, userService, logger)

	// HTTP
	guard := middleware.NewGuard(cfg.UnauthorizedPath, logger)
	mux := delivery.NewRouter(delivery.Controllers{
		Auth:      controllers.NewAuthController(logger, authService),
		User:      controllers.NewUserController(logger, userService),
		Event:     controllers.NewEventController(logger, eventService),
		Category:  controllers.NewCategoryController(logger, categoryService),
		RSVP:      controllers.NewRSVPController(logger, rsvpService),
		Dashboard: controllers.NewDashboardController(logger, dashboardService),
		Admin:     controllers.NewAdminController(logger, userService, groupService),
	}, guard)

	handler := middleware.CORS(cfg.CORSAllowedOrigins,
		middleware.LoggingMiddleware(logger,
			middleware.Authenticate(tokenVerifier, logger)(mux)))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// newMediaStore picks S3 when a bucket is configured, otherwise a discarding
// store so development setups work without AWS.
func newMediaStore(cfg *config.Config, logger *slog.Logger) domain.MediaStore {
	if cfg.S3.Bucket == "" {
		return storage.NewNoopStore(logger)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := storage.NewS3Store(ctx, storage.S3Config{
		Region:          cfg.S3.Region,
		Bucket:          cfg.S3.Bucket,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		PublicBaseURL:   cfg.S3.PublicBaseURL,
	}, logger)
	if err != nil {
		logger.Warn("s3 disabled, discarding uploads", "error", err)
		return storage.NewNoopStore(logger)
	}
	return store
}
