package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/bandroster/internal/app/controllers"
	appMigrations "github.com/yigit/bandroster/internal/app/migrations"
	appRoutes "github.com/yigit/bandroster/internal/app/routes"
	appServices "github.com/yigit/bandroster/internal/app/services"
	"github.com/yigit/bandroster/internal/config"
	"github.com/yigit/bandroster/internal/db"
	appMiddleware "github.com/yigit/bandroster/internal/middleware"
	"github.com/yigit/bandroster/internal/pkg/helpers"
	"github.com/yigit/bandroster/internal/pkg/logger"
	"github.com/yigit/bandroster/internal/pkg/metrics"
	"github.com/yigit/bandroster/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Session         *appServices.Session
	RosterService   *appServices.RosterService
	CheckoutService *appServices.CheckoutService
	UndoService     *appServices.UndoService
	AdminService    *appServices.AdminService
	Controllers     appRoutes.Controllers
	Metrics         *metrics.Metrics
	Logger          zerolog.Logger
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
	prettyLog := cfg.Logging.Format == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store, applies migrations and seeds
// the instrument catalog.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	store, err := db.Open(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	if err := store.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		_ = store.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(store).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		_ = store.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	today := helpers.FormatDate(time.Now())
	if err := seed.CreateDefaultData(ctx, store, lgr, cfg.Seed.SampleData, today); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return store, nil
}

// BuildDependencies initializes the session, services and controllers.
func BuildDependencies(cfg *config.Config, store *db.Store, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{
		Logger:  lgr,
		Metrics: metrics.New(),
	}

	deps.Session = appServices.NewSession(store,
		appServices.WithMetrics(deps.Metrics),
		appServices.WithUndoDepth(cfg.Undo.MaxDepth),
	)

	deps.RosterService = appServices.NewRosterService(deps.Session)
	deps.CheckoutService = appServices.NewCheckoutService(deps.Session)
	deps.UndoService = appServices.NewUndoService(deps.Session)
	deps.AdminService = appServices.NewAdminService(deps.Session)

	deps.Controllers = appRoutes.Controllers{
		Student:   appControllers.NewStudentController(deps.RosterService),
		Equipment: appControllers.NewEquipmentController(deps.CheckoutService),
		Undo:      appControllers.NewUndoController(deps.UndoService),
		Admin:     appControllers.NewAdminController(deps.AdminService),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
		appMiddleware.CORS(cfg.AllowedOrigins()),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.Metrics.Handler())

	return router
}
