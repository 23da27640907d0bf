package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/brunofarias/jornada-lms/docs"
	appControllers "github.com/brunofarias/jornada-lms/internal/app/controllers"
	appMigrations "github.com/brunofarias/jornada-lms/internal/app/migrations"
	appRepos "github.com/brunofarias/jornada-lms/internal/app/repositories"
	appRoutes "github.com/brunofarias/jornada-lms/internal/app/routes"
	appServices "github.com/brunofarias/jornada-lms/internal/app/services"
	"github.com/brunofarias/jornada-lms/internal/config"
	"github.com/brunofarias/jornada-lms/internal/db"
	"github.com/brunofarias/jornada-lms/internal/jobs"
	appMiddleware "github.com/brunofarias/jornada-lms/internal/middleware"
	pkgAuth "github.com/brunofarias/jornada-lms/internal/pkg/auth"
	"github.com/brunofarias/jornada-lms/internal/pkg/email"
	"github.com/brunofarias/jornada-lms/internal/pkg/filestorage"
	"github.com/brunofarias/jornada-lms/internal/pkg/helpers"
	"github.com/brunofarias/jornada-lms/internal/pkg/logger"
	"github.com/brunofarias/jornada-lms/internal/pkg/websocket"
	"github.com/brunofarias/jornada-lms/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Database       *db.PostgresDB
	JWTService     *pkgAuth.JWTService
	EmailService   email.EmailService
	FileStorage    *filestorage.LocalStorage
	Hub            *websocket.Hub
	Scheduler      *jobs.Scheduler
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	WSHandler      *websocket.Handler
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Pool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Database: database, Logger: lgr}
	dbPool := database.Pool

	deps.Repos = appRepos.NewRepositories(dbPool)

	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 168*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   baseURL,
	}, lgr)

	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)

	// The lifecycle chain runs on transaction-scoped stores; everything
	// else reads through the pool-bound set.
	poolStores := appServices.NewStores(dbPool)

	notificationService := appServices.NewNotificationService(poolStores.Notifications, deps.Hub, lgr)
	progressService := appServices.NewProgressService(
		database, poolStores, appServices.NewStores, deps.EmailService, notificationService, baseURL, lgr)
	enrollmentService := appServices.NewEnrollmentService(
		database, poolStores, appServices.NewStores, deps.EmailService, notificationService, lgr)
	authService := appServices.NewAuthService(
		deps.Repos.UserRepository, deps.Repos.TokenRepository, deps.JWTService, lgr)
	userService := appServices.NewUserService(deps.Repos.UserRepository, database, lgr)
	courseService := appServices.NewCourseService(
		deps.Repos.CourseRepository, deps.Repos.LessonRepository, deps.Repos.FileRepository, deps.FileStorage, lgr)
	lessonService := appServices.NewLessonService(
		deps.Repos.LessonRepository, deps.Repos.CourseRepository, deps.Repos.EnrollmentRepository,
		deps.Repos.FileRepository, deps.FileStorage, notificationService, progressService, lgr)
	certificateService := appServices.NewCertificateService(
		poolStores.Certificates, deps.Repos.FileRepository, deps.FileStorage, lgr)
	reviewService := appServices.NewReviewService(deps.Repos.ReviewRepository, poolStores.Enrollments, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = &appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(authService, lgr),
		User:         appControllers.NewUserController(userService, lgr),
		Course:       appControllers.NewCourseController(courseService, lgr),
		Lesson:       appControllers.NewLessonController(lessonService, lgr),
		Enrollment:   appControllers.NewEnrollmentController(enrollmentService, progressService, lgr),
		Certificate:  appControllers.NewCertificateController(certificateService, lgr),
		Notification: appControllers.NewNotificationController(notificationService, lgr),
		Review:       appControllers.NewReviewController(reviewService, lgr),
	}

	deps.Scheduler = jobs.NewScheduler(
		cfg, deps.Repos.TokenRepository, deps.Repos.EnrollmentRepository,
		deps.Repos.UserRepository, notificationService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.WSHandler)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
