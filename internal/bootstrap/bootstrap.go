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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mentorlink/mentorlink/docs" // Import generated swagger docs
	"github.com/mentorlink/mentorlink/internal/app/community"
	appControllers "github.com/mentorlink/mentorlink/internal/app/controllers"
	"github.com/mentorlink/mentorlink/internal/app/matching"
	appMigrations "github.com/mentorlink/mentorlink/internal/app/migrations"
	appRepos "github.com/mentorlink/mentorlink/internal/app/repositories"
	appRoutes "github.com/mentorlink/mentorlink/internal/app/routes"
	appServices "github.com/mentorlink/mentorlink/internal/app/services"
	"github.com/mentorlink/mentorlink/internal/config"
	"github.com/mentorlink/mentorlink/internal/db"
	appMiddleware "github.com/mentorlink/mentorlink/internal/middleware"
	pkgAuth "github.com/mentorlink/mentorlink/internal/pkg/auth"
	"github.com/mentorlink/mentorlink/internal/pkg/cache"
	"github.com/mentorlink/mentorlink/internal/pkg/enrichment"
	"github.com/mentorlink/mentorlink/internal/pkg/filestorage"
	"github.com/mentorlink/mentorlink/internal/pkg/logger"
	"github.com/mentorlink/mentorlink/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService      appServices.StudentService
	MentorService       appServices.MentorService
	CommunityService    appServices.CommunityService
	MatchingService     appServices.MatchingService
	StudentController   *appControllers.StudentController
	MentorController    *appControllers.MentorController
	CommunityController *appControllers.CommunityController
	MatchingController  *appControllers.MatchingController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	FileStorage         *filestorage.LocalStorage
	Cache               *cache.Cache
	Logger              zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

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

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Demo data is a convenience, startup continues without it
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Initialize File Storage
	baseURL := "http://localhost:" + cfg.Server.Port
	storageBaseURL := baseURL + "/uploads"
	if cfg.Storage.BaseURL != "" {
		storageBaseURL = cfg.Storage.BaseURL
	}
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.BasePath, storageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Redis is optional, stats caching degrades to recompute-per-request
	var statsCache *cache.StatsCache
	if cfg.Redis.Enabled {
		deps.Cache, err = cache.New(cfg.CacheConfig())
		if err != nil {
			lgr.Warn().Err(err).Msg("Redis unavailable, continuing without stats cache")
		} else {
			statsCache = cache.NewStatsCache(deps.Cache, cache.DefaultStatsTTL)
		}
	}

	deps.JWTService = pkgAuth.NewJWTService(cfg.JWT.Secret)

	scorer := matching.NewCompatibilityScorer(cfg.ScorerConfig())
	enrichmentClient := enrichment.NewHuggingFaceClient(cfg.EnrichmentConfig(), lgr)
	relevance := matching.NewRelevanceScorer(enrichmentClient, lgr)
	lifecycle := community.NewLifecycleManager(deps.Repos.CommunityRepository, cfg.Matching.MaxLifecycleRetries, lgr)

	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)
	deps.MentorService = appServices.NewMentorService(deps.Repos.MentorRepository, deps.FileStorage, lgr)
	deps.CommunityService = appServices.NewCommunityService(deps.Repos.CommunityRepository, lifecycle, lgr)
	deps.MatchingService = appServices.NewMatchingService(
		deps.Repos.StudentRepository,
		deps.Repos.MentorRepository,
		deps.Repos.CommunityRepository,
		deps.Repos.MatchingRequestRepository,
		scorer,
		relevance,
		statsCache,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.MentorController = appControllers.NewMentorController(deps.MentorService)
	deps.CommunityController = appControllers.NewCommunityController(deps.CommunityService)
	deps.MatchingController = appControllers.NewMatchingController(deps.MatchingService)

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

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.MentorController,
		deps.CommunityController,
		deps.MatchingController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
