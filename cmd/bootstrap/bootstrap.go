package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/config"
	deliveryHttp "github.com/kaduart/agenda-clinica-service/internal/delivery/http"
	"github.com/kaduart/agenda-clinica-service/internal/delivery/http/handler"
	"github.com/kaduart/agenda-clinica-service/internal/delivery/http/middleware"
	"github.com/kaduart/agenda-clinica-service/internal/infrastructure/cache"
	"github.com/kaduart/agenda-clinica-service/internal/infrastructure/database"
	"github.com/kaduart/agenda-clinica-service/internal/repository"
	"github.com/kaduart/agenda-clinica-service/internal/service"
	"github.com/kaduart/agenda-clinica-service/internal/usecase"
	"github.com/kaduart/agenda-clinica-service/pkg/validator"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Cron        *cron.Cron
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply pending schema migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, reminderService := initializeServer(cfg, db, redisClient)
	app.Server = server

	// Schedule the daily reminder job when enabled
	if cfg.Reminder.Enabled {
		c := cron.New()
		_, err := c.AddFunc(cfg.Reminder.Cron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if _, err := reminderService.SendDailyReminders(ctx); err != nil {
				logrus.Errorf("Reminder job failed: %v", err)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to schedule reminder job: %w", err)
		}
		app.Cron = c
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.ReminderService) {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	professionalRepo := repository.NewProfessionalRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	preAppointmentRepo := repository.NewPreAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	reminderService := service.NewReminderService(db, log, appointmentRepo, auditService)
	stateService := service.NewReconcileStateService(redisClient, log)

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo)
	professionalUsecase := usecase.NewProfessionalUsecase(db, log, professionalRepo)
	specialtyUsecase := usecase.NewSpecialtyUsecase(db, log, specialtyRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, professionalRepo, auditService)
	preAppointmentUsecase := usecase.NewPreAppointmentUsecase(db, log, preAppointmentRepo, appointmentRepo, patientRepo, auditService)
	cycleUsecase := usecase.NewCycleUsecase(db, log, appointmentRepo, patientRepo, professionalRepo, auditService)
	reconcileUsecase := usecase.NewReconcileUsecase(db, log, patientRepo, appointmentRepo, preAppointmentRepo, auditService, stateService)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	professionalHandler := handler.NewProfessionalHandler(professionalUsecase, customValidator)
	specialtyHandler := handler.NewSpecialtyHandler(specialtyUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	preAppointmentHandler := handler.NewPreAppointmentHandler(preAppointmentUsecase, customValidator)
	cycleHandler := handler.NewCycleHandler(cycleUsecase, customValidator)
	duplicateHandler := handler.NewDuplicateHandler(reconcileUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		patientHandler,
		professionalHandler,
		specialtyHandler,
		appointmentHandler,
		preAppointmentHandler,
		cycleHandler,
		duplicateHandler,
		corsMiddleware,
		loggingMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, reminderService
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	if app.Cron != nil {
		app.Cron.Start()
		logrus.Infof("Reminder job scheduled: %s", app.Config.Reminder.Cron)
	}

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop the reminder job first so no run starts mid-shutdown
	if app.Cron != nil {
		app.Cron.Stop()
	}

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
