package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/lamsaclean/site-api/docs"
	"github.com/lamsaclean/site-api/internal/api/handler"
	"github.com/lamsaclean/site-api/internal/api/middleware"
	"github.com/lamsaclean/site-api/internal/api/session"
	"github.com/lamsaclean/site-api/internal/core/domain"
	"github.com/lamsaclean/site-api/internal/core/ports"
	"github.com/lamsaclean/site-api/internal/infrastructure/config"
)

// Deps carries everything the router needs. Mongo and Redis are optional
// and only consulted by the readiness probe; the stores and limiter
// already wrap whichever backend was selected at startup. Registry and
// Gatherer default to the Prometheus globals; tests pass a fresh registry
// so building more than one router in a process does not collide.
type Deps struct {
	Config   *config.Config
	Log      zerolog.Logger
	Users    ports.UserStore
	Auth     ports.AuthService
	Tokens   ports.TokenService
	Limiter  ports.RateLimiter
	Queue    ports.ContactQueue
	Mongo    *mongo.Database
	Redis    *redis.Client
	Registry prometheus.Registerer
	Gatherer prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	registry := d.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "cleansite",
		Registerer: registry,
	}))

	// --- Dependencies ---
	cookies := session.NewCookieManager(d.Config.IsProduction())
	sessions := middleware.NewSessionManager(d.Tokens, d.Users, cookies)
	authHandler := handler.NewAuthHandler(
		d.Auth, d.Tokens, d.Limiter, cookies, sessions,
		d.Config.LoginRateLimit, d.Config.LoginRateWindow,
	)
	contactHandler := handler.NewContactHandler(
		d.Limiter, d.Queue,
		d.Config.ContactRateLimit, d.Config.ContactRateWindow,
	)
	usersHandler := handler.NewUsersHandler(d.Auth)
	pages := handler.NewAdminPagesHandler()

	// --- Public API ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/logout", authHandler.Logout)
	apiGroup.GET("/auth/verify", authHandler.Verify)
	apiGroup.POST("/contact", contactHandler.Submit)

	// --- Gated admin API ---
	adminAPI := apiGroup.Group("/admin", sessions.RequireSession())
	adminAPI.GET("/users/me", usersHandler.Me)
	adminAPI.POST("/users", usersHandler.Create,
		middleware.RBAC(domain.RoleAdministrator, domain.RoleManager),
		middleware.RequirePermission(d.Auth, "users", domain.ActionCreate),
	)

	// --- Admin pages behind the guard ---
	admin := e.Group("/admin", sessions.AdminGuard())
	admin.GET("", pages.Dashboard)
	admin.GET("/login", pages.Login)
	admin.GET("/unauthorized", pages.Unauthorized)
	admin.GET("/*", pages.Dashboard)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
