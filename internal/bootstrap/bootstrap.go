package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/careerportal/internal/app/controllers"
	appMigrations "github.com/yigit/careerportal/internal/app/migrations"
	appRepos "github.com/yigit/careerportal/internal/app/repositories"
	memoryRepos "github.com/yigit/careerportal/internal/app/repositories/memory"
	appRoutes "github.com/yigit/careerportal/internal/app/routes"
	appServices "github.com/yigit/careerportal/internal/app/services"
	"github.com/yigit/careerportal/internal/config"
	"github.com/yigit/careerportal/internal/db"
	appMiddleware "github.com/yigit/careerportal/internal/middleware"
	pkgAuth "github.com/yigit/careerportal/internal/pkg/auth"
	"github.com/yigit/careerportal/internal/pkg/filestorage"
	"github.com/yigit/careerportal/internal/pkg/helpers"
	"github.com/yigit/careerportal/internal/pkg/logger"
	"github.com/yigit/careerportal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                 *appRepos.Repositories
	Services              *appServices.Services
	IdentityProvider      pkgAuth.IdentityProvider
	FileStorage           *filestorage.LocalStorage
	Limiter               appMiddleware.Limiter
	AuthMiddleware        *appMiddleware.AuthMiddleware
	JobController         *appControllers.JobController
	ApplicationController *appControllers.ApplicationController
	ProfileController     *appControllers.ProfileController
	SessionController     *appControllers.SessionController
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
// It returns a nil pool when the memory driver is configured.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory stores; data is lost on restart")
		return nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	lgr.Info().Msg("Running database migrations...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, cfg.Database.MigrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// SetupIdentityProvider selects the identity provider named in configuration
func SetupIdentityProvider(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (pkgAuth.IdentityProvider, error) {
	switch cfg.Identity.Provider {
	case config.ProviderFirebase:
		provider, err := pkgAuth.NewFirebaseProvider(ctx, pkgAuth.FirebaseConfig{
			ProjectID:       cfg.Identity.ProjectID,
			CredentialsFile: cfg.Identity.CredentialsFile,
		})
		if err != nil {
			return nil, err
		}
		lgr.Info().Str("projectID", cfg.Identity.ProjectID).Msg("Using Firebase identity provider")
		return provider, nil
	default:
		lgr.Info().Str("issuer", cfg.Identity.Issuer).Msg("Using local identity provider")
		return pkgAuth.NewJWTProvider(pkgAuth.JWTConfig{
			SessionSecret: cfg.Session.Secret,
			IDTokenSecret: cfg.Identity.IDTokenSecret,
			TokenIssuer:   cfg.Identity.Issuer,
		}), nil
	}
}

// SetupRateLimiter returns a Redis-backed limiter when Redis is configured and reachable,
// and an in-process limiter otherwise. The returned client is nil in the latter case.
func SetupRateLimiter(cfg *config.Config, lgr zerolog.Logger) (appMiddleware.Limiter, *redis.Client) {
	if cfg.RateLimit.RedisAddr == "" {
		return appMiddleware.NewRateLimiter(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RateLimit.RedisAddr,
		Password: cfg.RateLimit.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.RateLimit.RedisAddr).Msg("Redis unavailable, using in-process rate limiter")
		_ = client.Close()
		return appMiddleware.NewRateLimiter(), nil
	}

	lgr.Info().Str("addr", cfg.RateLimit.RedisAddr).Msg("Using Redis rate limiter")
	return appMiddleware.NewRedisLimiter(client, appMiddleware.RedisLimiterConfig{
		KeyPrefix: cfg.RateLimit.KeyPrefix,
		Timeout:   helpers.ParseDuration(cfg.RateLimit.RedisTimeout, 250*time.Millisecond),
	}, appMiddleware.NewRateLimiter()), client
}

// BuildDependencies initializes application repositories, services, and controllers.
// A nil dbPool selects the in-memory repositories.
func BuildDependencies(
	cfg *config.Config,
	dbPool *pgxpool.Pool,
	provider pkgAuth.IdentityProvider,
	limiter appMiddleware.Limiter,
	clock helpers.Clock,
	lgr zerolog.Logger,
) (*Dependencies, error) {
	deps := &Dependencies{
		IdentityProvider: provider,
		Limiter:          limiter,
		Logger:           lgr,
	}

	if dbPool != nil {
		deps.Repos = appRepos.NewRepositories(dbPool, clock)
	} else {
		deps.Repos = memoryRepos.NewRepositories(clock)
	}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	if cfg.Database.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seed.CreateDefaultData(ctx, deps.Repos, clock, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	deps.Services = appServices.NewServices(cfg, deps.Repos, provider, deps.FileStorage, clock, lgr)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(provider, cfg.Session.CookieName)

	deps.JobController = appControllers.NewJobController(deps.Services.Jobs)
	deps.ApplicationController = appControllers.NewApplicationController(deps.Services.Applications)
	deps.ProfileController = appControllers.NewProfileController(deps.Services.Profiles)
	deps.SessionController = appControllers.NewSessionController(deps.Services.Sessions, cfg.Session.CookieName, cfg.IsProduction())

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	// outside production the mode comes from GIN_MODE
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		lgr.Info().Str("mode", gin.Mode()).Msg("Keeping Gin mode")
	}

	appMiddleware.RegisterValidation()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", appControllers.AdminSecretHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		appRoutes.Controllers{
			Jobs:         deps.JobController,
			Applications: deps.ApplicationController,
			Profiles:     deps.ProfileController,
			Sessions:     deps.SessionController,
		},
		deps.AuthMiddleware,
		appRoutes.Options{
			PublicJobWrites: cfg.Jobs.PublicWrite,
			MaxResumeBytes:  cfg.Resume.MaxBytes,
			Limiter:         deps.Limiter,
			RateLimit:       cfg.RateLimit.Requests,
			RateWindow:      helpers.ParseDuration(cfg.RateLimit.Window, time.Minute),
		},
	)

	return router
}
