// Package api wires the echo server: routing, gates, validation and the
// error envelope.
package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/api/handler"
	"github.com/propdesk/crm-console/internal/api/middleware"
	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// Dependencies carries everything the router needs. All fields are
// required except the health pingers, which default to always-ok.
type Dependencies struct {
	Sessions ports.SessionManager
	Auth     ports.AuthGateway
	Leads    ports.LeadService
	Projects ports.ProjectService
	Units    ports.UnitService
	Bookings ports.BookingService
	Watcher  ports.ImportWatcher
	Codec    *middleware.CookieCodec

	StorePinger    handler.Pinger
	UpstreamPinger handler.Pinger

	Logger zerolog.Logger
}

// NewRouter builds the echo instance with the full route table. Route
// groups encode the authorization model: everything except auth and
// health sits behind the session gate, and the project, unit and booking
// groups add role gates on top.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddleware("crm_console"))
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler(orOK(deps.StorePinger), orOK(deps.UpstreamPinger))
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions, deps.Codec, deps.Logger)
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/verify-email", authHandler.VerifyEmail)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.POST("/resend-verification", authHandler.ResendVerification)
	auth.POST("/otp/request", authHandler.RequestOTP)
	auth.POST("/otp/verify", authHandler.VerifyOTP)

	gate := middleware.SessionGate(deps.Codec, deps.Sessions)
	authed := e.Group("", gate)
	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/auth/logout", authHandler.Logout)

	leadHandler := handler.NewLeadHandler(deps.Leads, deps.Watcher)
	leads := authed.Group("/leads")
	leads.GET("", leadHandler.List)
	leads.POST("", leadHandler.Create)
	leads.POST("/activities", leadHandler.CreateActivity)
	leads.POST("/import", leadHandler.Import)
	leads.GET("/import-jobs", leadHandler.ImportJobs)
	leads.GET("/import-jobs/:id", leadHandler.ImportJob)
	leads.GET("/import-jobs/:id/watch", leadHandler.WatchImportJob)
	leads.GET("/:id", leadHandler.Get)
	leads.PATCH("/:id", leadHandler.Update)
	leads.DELETE("/:id", leadHandler.Delete)
	leads.PATCH("/:id/assign", leadHandler.AssignAgent)
	leads.GET("/:id/activities", leadHandler.Activities)

	projectHandler := handler.NewProjectHandler(deps.Projects)
	projects := authed.Group("/projects", middleware.RoleGate(domain.RoleAdmin))
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.PATCH("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	unitHandler := handler.NewUnitHandler(deps.Units)
	units := authed.Group("/units", middleware.RoleGate(domain.RoleAdmin, domain.RoleManager))
	units.GET("", unitHandler.List)
	units.POST("", unitHandler.Create)
	units.GET("/:id", unitHandler.Get)
	units.PATCH("/:id", unitHandler.Update)
	units.DELETE("/:id", unitHandler.Delete)

	bookingHandler := handler.NewBookingHandler(deps.Bookings)
	bookings := authed.Group("/bookings", middleware.RoleGate(domain.RoleAdmin, domain.RoleManager))
	bookings.GET("", bookingHandler.List)
	bookings.POST("", bookingHandler.Create)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.PATCH("/:id", bookingHandler.Update)
	bookings.PATCH("/:id/cancel", bookingHandler.Cancel)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func orOK(p handler.Pinger) handler.Pinger {
	if p != nil {
		return p
	}
	return handler.PingerFunc(func(context.Context) error { return nil })
}
