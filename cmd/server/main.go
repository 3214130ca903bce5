package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"eventmanagement/config"
	delivery "eventmanagement/internal/delivery/http"
	"eventmanagement/internal/delivery/http/controllers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/repository/postgres"
	"eventmanagement/internal/services"

	"eventmanagement/internal/adapters/email"

	_ "github.com/lib/pq"
)

const contextTimeout = 5 * time.Second

// @title Event Management API
// @version 1.0
// @description Role-based event management: events, participants, tasks, and notifications.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	})
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	recipientRepo := postgres.NewNotificationRecipientRepository(db)
	lookupRepo := postgres.NewLookupRepository(db)

	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	authService := services.NewAuthService(userRepo, tokens, contextTimeout)
	eventService := services.NewEventService(eventRepo, participantRepo, taskRepo, userRepo, lookupRepo, contextTimeout)
	participantService := services.NewParticipantService(participantRepo, eventRepo, userRepo, emailService, contextTimeout)
	taskService := services.NewTaskService(taskRepo, eventRepo, participantRepo, userRepo, contextTimeout)
	notificationService := services.NewNotificationService(notificationRepo, recipientRepo, eventRepo, participantRepo, contextTimeout)
	lookupService := services.NewLookupService(lookupRepo, contextTimeout)

	metrics := middleware.NewMetrics()
	mux := delivery.NewRouter(delivery.Controllers{
		Auth:         controllers.NewAuthController(logger, authService),
		Event:        controllers.NewEventController(logger, eventService),
		Participant:  controllers.NewParticipantController(logger, participantService),
		Task:         controllers.NewTaskController(logger, taskService),
		Notification: controllers.NewNotificationController(logger, notificationService),
		Lookup:       controllers.NewLookupController(logger, lookupService),
	}, tokens, metrics)

	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server: %v", err)
	}
}
