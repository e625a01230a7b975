package handlers

import (
	"time"

	"symphony/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type RouterConfig struct {
	Debug             bool
	FrontendURL       string
	RequestsPerSecond int
	Burst             int
}

type Handlers struct {
	Dashboard   *DashboardHandler
	Project     *ProjectHandler
	Integration *IntegrationHandler
	System      *SystemHandler
}

func NewRouter(cfg RouterConfig, h Handlers, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log.Named("http")))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// rate limiting is off in debug mode
	if !cfg.Debug && cfg.RequestsPerSecond > 0 {
		limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst, limiterIdleTTL, clockwork.NewRealClock())
		r.Use(middleware.RateLimit(limiter, log.Named("ratelimit")))
	}

	r.GET("/health", h.System.Health)

	api := r.Group("/api/v1")
	api.GET("/health", h.System.Health)
	api.GET("/system/stats", h.System.Stats)
	if cfg.Debug {
		api.POST("/system/sweep", h.System.TriggerSweep)
	}

	projects := api.Group("/projects/:id")
	projects.GET("", h.Project.GetProject)
	projects.PATCH("", h.Project.UpdateProject)
	projects.DELETE("", h.Project.DeleteProject)
	projects.GET("/dashboard", h.Dashboard.GetDashboard)
	projects.GET("/dashboard/export", h.Dashboard.ExportDashboard)
	projects.POST("/refresh", h.Dashboard.RefreshDashboard)

	orgs := api.Group("/organizations/:orgID")
	orgs.GET("/projects", h.Project.ListProjects)
	orgs.POST("/projects", h.Project.CreateProject)
	orgs.GET("/integrations", h.Integration.ListIntegrations)
	orgs.PUT("/integrations/:type", h.Integration.ConnectIntegration)
	orgs.DELETE("/integrations/:type", h.Integration.DisconnectIntegration)

	return r
}
