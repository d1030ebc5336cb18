package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/zerowaste/connect-share/docs"
	"github.com/zerowaste/connect-share/internal/api/handler"
	"github.com/zerowaste/connect-share/internal/api/middleware"
	"github.com/zerowaste/connect-share/internal/core/domain"
	"github.com/zerowaste/connect-share/internal/core/ports"
)

// Deps bundles everything the HTTP layer needs. Stores and clients are
// wired in cmd/api; the router only sees service ports.
type Deps struct {
	Donations ports.DonationService
	Stats     ports.StatsService
	Auth      ports.AuthService
	JWTSecret string
	Logger    zerolog.Logger
	Checks    []handler.DependencyCheck
	// Registerer receives the HTTP request metrics. Defaults to the
	// Prometheus default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.ContextTimeout(requestTimeout))

	reg := d.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "connect_share",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	authHandler := handler.NewAuthHandler(d.Auth)
	donationHandler := handler.NewDonationHandler(d.Donations, d.Logger)
	statsHandler := handler.NewStatsHandler(d.Stats)
	authMW := middleware.Auth(d.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Donations ---
	donations := e.Group("/donations", authMW)
	donations.POST("", donationHandler.Create, middleware.RBAC(domain.RoleDonor))
	donations.GET("", donationHandler.List)
	donations.GET("/:id", donationHandler.Get)
	donations.POST("/:id/claim", donationHandler.Claim, middleware.RBAC(domain.RoleVolunteer))
	donations.POST("/:id/deliver", donationHandler.Deliver, middleware.RBAC(domain.RoleVolunteer))

	// --- Dashboards ---
	stats := e.Group("/stats", authMW)
	stats.GET("/overview", statsHandler.Overview, middleware.RBAC(domain.RoleAdmin))
	stats.GET("/me", statsHandler.Me)

	e.GET("/users", statsHandler.Users, authMW, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// requestTimeout bounds how long a handler may block on the store.
const requestTimeout = 10 * time.Second
