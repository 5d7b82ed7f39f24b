package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/insights/internal/config"
	"github.com/sangkips/insights/internal/presentation/http/handler"
	"github.com/sangkips/insights/internal/presentation/http/middleware"
	"github.com/sangkips/insights/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Metrics  *handler.MetricsHandler
	Investor *handler.InvestorHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Log        *zap.Logger
	// Done stops background goroutines owned by middlewares.
	Done <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSForPaths(
		middleware.CORSMiddleware(&deps.Cfg.CORS),
		middleware.AllowAllCORS(),
		LegacyInvestorPath,
	))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	registerLegacy(router, h)

	rateLimiter := middleware.NewCallerRateLimiter(
		middleware.NewRateLimiterConfig(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
		deps.Done,
	)

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h, deps)

		// Backend functions resolve the caller themselves so that anonymous
		// calls surface as the unauthenticated kind.
		functions := v1.Group("/functions")
		functions.Use(middleware.OptionalAuthMiddleware(deps.JWTManager), rateLimiter.Middleware())
		functions.POST("/operational-metrics", h.Metrics.OperationalMetrics)
		functions.POST("/marketing-metrics", h.Metrics.MarketingMetrics)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWTManager))
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
}

// LegacyInvestorPath is the unversioned investor endpoint.
const LegacyInvestorPath = "/investor-metrics"

// registerLegacy mounts the investor endpoint exactly as existing clients
// call it.
//
// SECURITY: no authentication and CORS for any origin (see Setup). Kept
// deliberately; the investor dashboard fetches it without a token.
func registerLegacy(router *gin.Engine, h *Handlers) {
	router.GET(LegacyInvestorPath, h.Investor.InvestorMetrics)
}
