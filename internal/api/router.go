package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/SofiaGenchi/carwash-frontend/internal/api/handler"
	"github.com/SofiaGenchi/carwash-frontend/internal/api/middleware"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// Dependencies are the services the routes are wired to.
type Dependencies struct {
	Sessions     ports.SessionService
	Gate         ports.AccessGate
	Auth         ports.AuthService
	Booking      ports.BookingService
	Appointments ports.AppointmentService
	Admin        ports.AdminService
	Checkers     []ports.HealthChecker
}

// Options are the transport-level settings.
type Options struct {
	SessionSecret string
	SessionTTL    time.Duration
	SecureCookie  bool
	// Swagger mounts /swagger/*; the generated docs package must be imported
	// by the binary for the UI to find the document.
	Swagger bool
	// Registry receives the HTTP metrics. Nil means the default registry,
	// where the portal's own metrics live too.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "carwash",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.Gate)
	bookingHandler := handler.NewBookingHandler(deps.Booking)
	appointmentHandler := handler.NewAppointmentHandler(deps.Appointments)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	healthHandler := handler.NewHealthHandler(deps.Checkers...)

	session := middleware.Session(deps.Sessions, middleware.SessionConfig{
		Secret: opts.SessionSecret,
		TTL:    opts.SessionTTL,
		Secure: opts.SecureCookie,
	})
	requireUser := middleware.RequireAccess(deps.Gate, ports.AccessUser)
	requireAdmin := middleware.RequireAccess(deps.Gate, ports.AccessAdmin)

	// --- Health and tooling (no session) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	if opts.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Views ---
	e.GET(ports.RouteBookNow, sessionHandler.BookNow, session)
	e.GET(ports.RouteUserAppointments, appointmentHandler.Mine, session, requireUser)
	e.GET(ports.RouteAdmin, adminHandler.Dashboard, session, requireAdmin)

	// --- JSON API ---
	api := e.Group("/api", session)
	api.GET("/nav", sessionHandler.Nav)
	api.GET("/session", sessionHandler.Current)
	api.POST("/session/login", authHandler.Login)
	api.POST("/session/logout", sessionHandler.Logout)

	api.POST("/users/register", authHandler.Register)
	api.POST("/users/forgot-password", authHandler.ForgotPassword)
	api.POST("/users/reset-password", authHandler.ResetPassword)

	api.GET("/services", appointmentHandler.Services)
	api.DELETE("/appointments/:id", appointmentHandler.Cancel, requireUser)

	flows := api.Group("/booking/flows", requireUser)
	flows.POST("", bookingHandler.Start)
	flows.GET("/:id", bookingHandler.Get)
	flows.POST("/:id/filter", bookingHandler.Filter)
	flows.POST("/:id/service", bookingHandler.SelectService)
	flows.POST("/:id/date", bookingHandler.SetDate)
	flows.POST("/:id/time", bookingHandler.SetTime)
	flows.POST("/:id/next", bookingHandler.Next)
	flows.POST("/:id/previous", bookingHandler.Previous)
	flows.POST("/:id/submit", bookingHandler.Submit)
	flows.POST("/:id/restart", bookingHandler.Restart)

	admin := api.Group("/admin", requireAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id/bookings", adminHandler.BookingHistory)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.GET("/appointments", adminHandler.ListAppointments)
	admin.PUT("/appointments/:id", adminHandler.UpdateAppointment)
	admin.GET("/services", adminHandler.ListServices)
	admin.PUT("/services/:id", adminHandler.UpdateService)

	return e
}

// requestLogger feeds echo's request log into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
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
