package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/tafahna/practicum-portal/internal/app/controllers"
	"github.com/tafahna/practicum-portal/internal/app/registry"
	appRoutes "github.com/tafahna/practicum-portal/internal/app/routes"
	appServices "github.com/tafahna/practicum-portal/internal/app/services"
	"github.com/tafahna/practicum-portal/internal/config"
	"github.com/tafahna/practicum-portal/internal/db"
	appMiddleware "github.com/tafahna/practicum-portal/internal/middleware"
	pkgAuth "github.com/tafahna/practicum-portal/internal/pkg/auth"
	"github.com/tafahna/practicum-portal/internal/pkg/genai"
	"github.com/tafahna/practicum-portal/internal/pkg/helpers"
	"github.com/tafahna/practicum-portal/internal/pkg/logger"
	"github.com/tafahna/practicum-portal/internal/seed"
	"github.com/tafahna/practicum-portal/internal/store"
	"github.com/tafahna/practicum-portal/internal/store/filestore"
	"github.com/tafahna/practicum-portal/internal/store/pgstore"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Registry               *registry.Registry
	JWTService             *pkgAuth.JWTService
	AuthService            *appServices.AuthService
	InstituteService       *appServices.InstituteService
	RegistrationService    *appServices.RegistrationService
	LetterService          *appServices.LetterService
	AssistantService       *appServices.AssistantService
	AuthController         *appControllers.AuthController
	InstituteController    *appControllers.InstituteController
	RegistrationController *appControllers.RegistrationController
	LetterController       *appControllers.LetterController
	AssistantController    *appControllers.AssistantController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Logger                 zerolog.Logger
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

// SetupStore builds the snapshot store named by the storage driver and a
// close function for whatever it holds open.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (store.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverFile:
		st, err := filestore.New(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file store: %w", err)
		}
		lgr.Info().Str("dataDir", cfg.Storage.DataDir).Msg("Using file snapshot store")
		return st, func() {}, nil

	case config.StorageDriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		st, err := pgstore.New(ctx, database.Pool)
		if err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to prepare snapshot table: %w", err)
		}
		lgr.Info().Str("host", cfg.Database.Host).Msg("Using postgres snapshot store")
		return st, database.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// BuildDependencies initializes the registry, services and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, st store.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Registry = registry.New(st, lgr)
	if err := deps.Registry.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load portal state: %w", err)
	}
	seed.CreateDefaultData(ctx, deps.Registry, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.Auth.JWTSecret,
		AccessTokenExp: helpers.ParseDuration(cfg.Auth.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.Auth.Issuer,
	})

	var err error
	deps.AuthService, err = appServices.NewAuthService(deps.JWTService, cfg.Auth.AdminPasscode, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	deps.InstituteService = appServices.NewInstituteService(deps.Registry, lgr)
	deps.RegistrationService = appServices.NewRegistrationService(deps.Registry, lgr)
	deps.LetterService = appServices.NewLetterService(deps.Registry, lgr)

	assistantClient := genai.NewClient(genai.Config{
		BaseURL:     cfg.Assistant.BaseURL,
		APIKey:      cfg.Assistant.APIKey,
		Model:       cfg.Assistant.Model,
		Temperature: cfg.Assistant.Temperature,
	})
	deps.AssistantService = appServices.NewAssistantService(assistantClient, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.InstituteController = appControllers.NewInstituteController(deps.InstituteService)
	deps.RegistrationController = appControllers.NewRegistrationController(deps.RegistrationService)
	deps.LetterController = appControllers.NewLetterController(deps.LetterService)
	deps.AssistantController = appControllers.NewAssistantController(deps.AssistantService)

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
		deps.InstituteController,
		deps.RegistrationController,
		deps.LetterController,
		deps.AssistantController,
		deps.AuthMiddleware,
	)

	return router
}
