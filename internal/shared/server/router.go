package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ideaspark-backend/internal/analysis"
	googleauth "ideaspark-backend/internal/auth"
	"ideaspark-backend/internal/catalog"
	"ideaspark-backend/internal/contact"
	"ideaspark-backend/internal/marketing"
	"ideaspark-backend/internal/notifications"
	"ideaspark-backend/internal/services/health"
	"ideaspark-backend/internal/settings"
	"ideaspark-backend/internal/shared/config"
	"ideaspark-backend/internal/shared/server/middleware"
	"ideaspark-backend/internal/shared/server/respond"
	"ideaspark-backend/internal/uploads"
	"ideaspark-backend/internal/usage"
	"ideaspark-backend/internal/users"
)

// RouterDeps carries the wired handlers into route registration.
type RouterDeps struct {
	Config               config.Config
	Health               *health.Service
	AnalysisHandler      *analysis.Handler
	MarketingHandler     *marketing.Handler
	UploadsHandler       *uploads.Handler
	UsageHandler         *usage.Handler
	UsersHandler         *users.Handler
	SettingsHandler      *settings.Handler
	NotificationsHandler *notifications.Handler
	CatalogHandler       *catalog.Handler
	ContactHandler       *contact.Handler
	GoogleAuth           *googleauth.GoogleService
	IsAdmin              middleware.AdminChecker
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			// AI-backed endpoints get a tighter per-user bucket than the
			// daily quota; everything else passes through.
			Rules: map[string]middleware.RateLimitRule{
				"AI": {Rate: 0.5, Burst: 3},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method != http.MethodPost {
					return ""
				}
				switch c.FullPath() {
				case "/api/v1/analyses", "/api/v1/analyses/answers", "/api/v1/marketing-plans":
					return "AI"
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})

	deps.GoogleAuth.RegisterRoutes(api)
	deps.AnalysisHandler.RegisterRoutes(api)
	deps.MarketingHandler.RegisterRoutes(api)
	deps.UploadsHandler.RegisterRoutes(api)
	deps.UsageHandler.RegisterRoutes(api)
	deps.UsersHandler.RegisterRoutes(api)
	deps.NotificationsHandler.RegisterRoutes(api)
	deps.CatalogHandler.RegisterRoutes(api)
	deps.ContactHandler.RegisterRoutes(api)

	admin := api.Group("/admin", middleware.RequireAdmin(deps.IsAdmin))
	deps.SettingsHandler.RegisterAdminRoutes(admin)
	deps.UsersHandler.RegisterAdminRoutes(admin)
	deps.NotificationsHandler.RegisterAdminRoutes(admin)
	deps.CatalogHandler.RegisterAdminRoutes(admin)
	deps.ContactHandler.RegisterAdminRoutes(admin)

	if deps.Config.Env == "dev" || deps.Config.Env == "local" {
		dev := api.Group("/dev")
		deps.UsageHandler.RegisterDevRoutes(dev)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
