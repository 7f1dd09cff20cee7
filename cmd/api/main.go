package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"eventmanagement/config"
	_ "eventmanagement/docs"
	authadapter "eventmanagement/internal/adapters/auth"
	emailadapter "eventmanagement/internal/adapters/email"
	httpdelivery "eventmanagement/internal/delivery/http"
	"eventmanagement/internal/delivery/http/controllers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
	"eventmanagement/internal/repository/memory"
	"eventmanagement/internal/repository/postgres"
	"eventmanagement/internal/services"
)

// repositories groups the storage implementations selected by STORAGE_DRIVER.
type repositories struct {
	events        domain.EventRepository
	sessions      domain.SessionRepository
	speakers      domain.SpeakerRepository
	registrations domain.RegistrationRepository
	users         domain.UserRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	repos, cleanup, err := buildRepositories(cfg)
	if err != nil {
		logger.Error("storage init failed", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer cleanup()
	logger.Info("storage ready", "driver", cfg.StorageDriver)

	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	issuer, verifier := authadapter.NewJWTTokens(cfg.JWTSecret)

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccess,
		},
	}, logger)
	if err != nil {
		logger.Error("mailer init failed", "provider", cfg.EmailProvider, "error", err)
		os.Exit(1)
	}

	locker := services.NewEventLocker()
	emailSvc := services.NewEmailService(mailer)
	authSvc := services.NewAuthService(repos.users, hasher, issuer, cfg.JWTExpiry)
	eventSvc := services.NewEventService(repos.events, cfg.ContextTimeout)
	speakerSvc := services.NewSpeakerService(repos.speakers, cfg.ContextTimeout)
	scheduleSvc := services.NewScheduleService(repos.events, repos.speakers, repos.sessions, locker, cfg.SessionBuffer, cfg.ContextTimeout)
	registrationSvc := services.NewRegistrationService(repos.events, repos.registrations, repos.users, emailSvc, locker, logger, cfg.ContextTimeout)

	mux := httpdelivery.NewRouter(
		logger,
		verifier,
		controllers.NewAuthController(logger, authSvc),
		controllers.NewEventController(logger, eventSvc),
		controllers.NewSessionController(logger, scheduleSvc),
		controllers.NewRegistrationController(logger, registrationSvc),
		controllers.NewSpeakerController(logger, speakerSvc),
	)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func buildRepositories(cfg *config.Config) (repositories, func(), error) {
	switch cfg.StorageDriver {
	case "memory":
		store := memory.NewStore()
		return repositories{
			events:        memory.NewEventRepository(store),
			sessions:      memory.NewSessionRepository(store),
			speakers:      memory.NewSpeakerRepository(store),
			registrations: memory.NewRegistrationRepository(store),
			users:         memory.NewUserRepository(store),
		}, func() {}, nil
	case "postgres":
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("open database: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return repositories{}, nil, fmt.Errorf("ping database: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return repositories{}, nil, fmt.Errorf("run migrations: %w", err)
		}
		return repositories{
			events:        postgres.NewEventRepository(db),
			sessions:      postgres.NewSessionRepository(db),
			speakers:      postgres.NewSpeakerRepository(db),
			registrations: postgres.NewRegistrationRepository(db),
			users:         postgres.NewUserRepository(db),
		}, func() { db.Close() }, nil
	default:
		return repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
