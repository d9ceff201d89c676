package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/medicore/hospital-portal/docs"
	"github.com/medicore/hospital-portal/internal/api/handler"
	"github.com/medicore/hospital-portal/internal/api/middleware"
	"github.com/medicore/hospital-portal/internal/core/authz"
	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ratelimit"
	"github.com/medicore/hospital-portal/internal/core/service"
)

// Deps is everything the router needs; main builds it from config.
type Deps struct {
	JWTSecret    string
	SecureCookie bool
	Logger       zerolog.Logger

	Auth          *service.AuthService
	Validation    *service.ValidationService
	Audit         *service.AuditService
	AccessCodes   *service.AccessCodeService
	Patients      *service.RecordService[domain.Patient]
	Doctors       *service.RecordService[domain.Doctor]
	Appointments  *service.RecordService[domain.Appointment]
	Prescriptions *service.RecordService[domain.Prescription]
	Bills         *service.RecordService[domain.Bill]

	Routes     *authz.RouteTable
	APILimiter *ratelimit.Limiter
	Readiness  map[string]handler.Pinger

	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
}

// navigableViews are listed on the dashboard when the role may open them.
var navigableViews = []string{"/patients", "/doctors", "/appointments", "/prescriptions", "/bills", "/admin"}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	v, err := handler.NewValidator()
	if err != nil {
		return nil, err
	}
	e.Validator = v
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Origin())
	e.Use(middleware.Logger(d.Logger))
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "portal",
		Registerer: registerer,
	}))

	routes := d.Routes
	if routes == nil {
		routes = authz.DefaultRoutes()
	}
	auth := middleware.Auth(d.JWTSecret, d.Auth)
	apiLimit := middleware.RateLimit(d.APILimiter, "api", middleware.ByIP)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.SecureCookie)
	e.POST("/auth/login", authHandler.Login)
	authGroup := e.Group("/auth", auth)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/session", authHandler.Session)
	authGroup.PUT("/preferences/theme", authHandler.SetTheme)

	// --- Navigation ---
	routesHandler := handler.NewRoutesHandler(routes, navigableViews)
	e.GET("/dashboard/:role", routesHandler.Dashboard, auth, middleware.RouteGuard(routes))

	apiGroup := e.Group("/api", auth, apiLimit)
	apiGroup.GET("/routes/check", routesHandler.Check)
	apiGroup.POST("/validate", handler.NewValidateHandler(d.Validation).Validate)

	// --- Records ---
	handler.NewRecordHandler[domain.Patient](d.Patients).
		Register(apiGroup.Group("/patients", middleware.RBAC(routes.AllowedRoles("/patients")...)))
	handler.NewRecordHandler[domain.Doctor](d.Doctors).
		Register(apiGroup.Group("/doctors", middleware.RBAC(routes.AllowedRoles("/doctors")...)))
	handler.NewRecordHandler[domain.Appointment](d.Appointments).
		Register(apiGroup.Group("/appointments", middleware.RBAC(routes.AllowedRoles("/appointments")...)))
	handler.NewRecordHandler[domain.Prescription](d.Prescriptions).
		Register(apiGroup.Group("/prescriptions", middleware.RBAC(routes.AllowedRoles("/prescriptions")...)))
	handler.NewRecordHandler[domain.Bill](d.Bills).
		Register(apiGroup.Group("/bills", middleware.RBAC(routes.AllowedRoles("/bills")...)))

	// --- Admin ---
	admin := apiGroup.Group("/admin", middleware.RBAC(routes.AllowedRoles("/admin")...))
	codes := handler.NewAccessCodeHandler(d.AccessCodes)
	admin.GET("/access-codes", codes.List)
	admin.POST("/access-codes", codes.Create)
	admin.PATCH("/access-codes/:id/deactivate", codes.Deactivate)
	admin.DELETE("/access-codes/:id", codes.Delete)
	admin.GET("/security-events", handler.NewSecurityEventsHandler(d.Audit).Recent)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Readiness).Readiness)

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
