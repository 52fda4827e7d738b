package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campushub/campushub/internal/app/controllers"
	appMigrations "github.com/campushub/campushub/internal/app/migrations"
	appRepos "github.com/campushub/campushub/internal/app/repositories"
	appRoutes "github.com/campushub/campushub/internal/app/routes"
	appServices "github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/config"
	"github.com/campushub/campushub/internal/db"
	appMiddleware "github.com/campushub/campushub/internal/middleware"
	pkgAuth "github.com/campushub/campushub/internal/pkg/auth"
	"github.com/campushub/campushub/internal/pkg/logger"
	"github.com/campushub/campushub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store                appRepos.Store
	JWTService           *pkgAuth.JWTService
	AuthService          *appServices.AuthService
	CourseService        *appServices.CourseService
	EnrollmentService    *appServices.EnrollmentService
	PaymentService       *appServices.PaymentService
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	PaymentController    *appControllers.PaymentController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Logger               zerolog.Logger
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

// SetupStore builds the configured storage engine. With the postgres
// driver it also runs migrations and returns the pool so the server
// can close it on shutdown; with the memory driver the pool is nil.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (appRepos.Store, *pgxpool.Pool, error) {
	if cfg.Storage.Driver == "memory" {
		lgr.Warn().Msg("Using in-memory storage; all data is lost on restart")
		return appRepos.NewMemoryStore(), nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		dbPool.Close()
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return appRepos.NewPostgresStore(dbPool), dbPool, nil
}

// BuildDependencies initializes services, controllers and middleware.
func BuildDependencies(cfg *config.Config, store appRepos.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Store:  store,
		Logger: lgr,
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExpiry: cfg.TokenExpiry(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(store, deps.JWTService, lgr)
	deps.CourseService = appServices.NewCourseService(store)
	deps.EnrollmentService = appServices.NewEnrollmentService(store)
	deps.PaymentService = appServices.NewPaymentService(store)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)
	deps.PaymentController = appControllers.NewPaymentController(deps.PaymentService)

	// Default admin account so a fresh deployment is reachable
	if err := seed.CreateDefaultData(context.Background(), store, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

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

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.PaymentController,
		deps.AuthMiddleware,
	)

	return router
}
