package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/config"
	deliveryHttp "github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/http"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/http/handler"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/http/middleware"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/infrastructure/cache"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/infrastructure/database"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/repository"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/service"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/usecase"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/pkg/jwt"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
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

	// Apply schema migrations
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	availabilityRepo := repository.NewAvailabilityRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	medicalRecordRepo := repository.NewMedicalRecordRepository()
	messageRepo := repository.NewMessageRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	mailService := service.NewMailService(cfg.SMTP, log)
	otpService := service.NewOTPService(redisClient, mailService, log)
	videoService := service.NewVideoService(cfg.Twilio, log)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient, otpService, mailService, auditService, cfg.Admin)
	adminUsecase := usecase.NewAdminUsecase(db, log, userRepo, mailService, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, userRepo)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, availabilityRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, userRepo, availabilityRepo, mailService, videoService, auditService)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, appointmentRepo, userRepo, auditService)
	medicalRecordUsecase := usecase.NewMedicalRecordUsecase(db, log, medicalRecordRepo, appointmentRepo, userRepo, auditService)
	messageUsecase := usecase.NewMessageUsecase(db, log, messageRepo, appointmentRepo, userRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, appointmentRepo, prescriptionRepo, messageRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	adminHandler := handler.NewAdminHandler(adminUsecase)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionUsecase, customValidator)
	medicalRecordHandler := handler.NewMedicalRecordHandler(medicalRecordUsecase, customValidator)
	messageHandler := handler.NewMessageHandler(messageUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	roleMiddleware := middleware.NewRoleMiddleware()
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		adminHandler,
		doctorHandler,
		availabilityHandler,
		appointmentHandler,
		prescriptionHandler,
		medicalRecordHandler,
		messageHandler,
		dashboardHandler,
		authMiddleware,
		roleMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
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
