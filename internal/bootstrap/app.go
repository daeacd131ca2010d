package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"ideaspark-backend/internal/analysis"
	googleauth "ideaspark-backend/internal/auth"
	"ideaspark-backend/internal/catalog"
	"ideaspark-backend/internal/contact"
	"ideaspark-backend/internal/llm"
	"ideaspark-backend/internal/llm/openai"
	"ideaspark-backend/internal/marketing"
	"ideaspark-backend/internal/notifications"
	"ideaspark-backend/internal/services/health"
	"ideaspark-backend/internal/settings"
	"ideaspark-backend/internal/shared/config"
	"ideaspark-backend/internal/shared/server"
	"ideaspark-backend/internal/shared/storage/db"
	"ideaspark-backend/internal/shared/storage/object"
	localstore "ideaspark-backend/internal/shared/storage/object/local"
	"ideaspark-backend/internal/uploads"
	"ideaspark-backend/internal/usage"
	"ideaspark-backend/internal/users"
)

// App holds the wired application dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	SettingsService      *settings.Service
	UsageService         *usage.Service
	AnalysisService      *analysis.Service
	MarketingService     *marketing.Service
	UsersService         *users.Service
	NotificationsService *notifications.Service
	CatalogService       *catalog.Service
	ContactService       *contact.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  localstore.New(cfg.LocalStoreDir),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:               cfg,
		Health:               health.NewService(),
		AnalysisHandler:      analysis.NewHandler(app.AnalysisService),
		MarketingHandler:     marketing.NewHandler(app.MarketingService),
		UploadsHandler:       uploads.NewHandler(app.Store),
		UsageHandler:         usage.NewHandler(app.UsageService),
		UsersHandler:         users.NewHandler(app.UsersService),
		SettingsHandler:      settings.NewHandler(app.SettingsService),
		NotificationsHandler: notifications.NewHandler(app.NotificationsService),
		CatalogHandler:       catalog.NewHandler(app.CatalogService),
		ContactHandler:       contact.NewHandler(app.ContactService),
		GoogleAuth: googleauth.NewGoogleService(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
			cfg.UIRedirectURL,
			app.UsersService,
		),
		IsAdmin: app.UsersService.IsAdmin,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildServices(app *App) {
	var (
		settingsRepo      settings.Repo
		analysisRepo      analysis.Repo
		marketingRepo     marketing.Repo
		usersRepo         users.Repo
		notificationsRepo notifications.Repo
		catalogRepo       catalog.Repo
		contactRepo       contact.Repo
	)
	if app.DB != nil {
		settingsRepo = &settings.PGRepo{DB: app.DB}
		analysisRepo = &analysis.PGRepo{DB: app.DB}
		marketingRepo = &marketing.PGRepo{DB: app.DB}
		usersRepo = &users.PGRepo{DB: app.DB}
		notificationsRepo = &notifications.PGRepo{DB: app.DB}
		catalogRepo = &catalog.PGRepo{DB: app.DB}
		contactRepo = &contact.PGRepo{DB: app.DB}
	} else {
		settingsRepo = settings.NewMemoryRepo()
		analysisRepo = analysis.NewMemoryRepo()
		marketingRepo = marketing.NewMemoryRepo()
		usersRepo = users.NewMemoryRepo()
		notificationsRepo = notifications.NewMemoryRepo()
		catalogRepo = catalog.NewMemoryRepo()
		contactRepo = contact.NewMemoryRepo()
	}

	settingsSvc := settings.NewService(settingsRepo)

	var usageSvc *usage.Service
	if app.DB != nil {
		usageSvc = usage.NewPostgresService(usage.NewPGStore(app.DB), settingsSvc)
	} else {
		usageSvc = usage.NewService(settingsSvc)
	}

	factory := llm.Factory(func(apiKey string) llm.Client {
		return openai.NewClient(apiKey)
	})

	analysisSvc := analysis.NewService(analysisRepo, settingsSvc, usageSvc, factory)
	marketingSvc := marketing.NewService(marketingRepo, analysisSvc, settingsSvc, usageSvc, factory)

	app.SettingsService = settingsSvc
	app.UsageService = usageSvc
	app.AnalysisService = analysisSvc
	app.MarketingService = marketingSvc
	app.UsersService = users.NewService(usersRepo)
	app.NotificationsService = notifications.NewService(notificationsRepo)
	app.CatalogService = catalog.NewService(catalogRepo)
	app.ContactService = contact.NewService(contactRepo)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
