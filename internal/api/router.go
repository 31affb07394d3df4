package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickconvert/entitlement-system/internal/api/handler"
	"github.com/quickconvert/entitlement-system/internal/api/middleware"
	"github.com/quickconvert/entitlement-system/internal/core/ports"
	"github.com/quickconvert/entitlement-system/internal/pkg/config"
)

// Dependencies carries the wired services, the session cookie lifetime, and
// the (possibly nil) external store handles the readiness probe reports on.
type Dependencies struct {
	Auth       ports.AuthService
	Licenses   ports.LicenseService
	Quota      ports.QuotaService
	Proxy      ports.ProxyService
	SessionTTL time.Duration
	Mongo      *mongo.Database
	Redis      *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("entitlement"))
	e.Use(middleware.Session(deps.Auth))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.SessionTTL)
	adminHandler := handler.NewAdminHandler(deps.Licenses)
	licenseHandler := handler.NewLicenseHandler(deps.Licenses)
	webhookHandler := handler.NewWebhookHandler(deps.Licenses)
	quotaHandler := handler.NewQuotaHandler(deps.Quota)
	proxyHandler := handler.NewProxyHandler(deps.Proxy)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me)

	// --- Admin routes (static bearer secret) ---
	admin := e.Group("/admin", middleware.Admin(cfg.AdminToken))
	admin.POST("/grant", adminHandler.Grant)

	// --- License / entitlement routes ---
	e.POST("/license/verify", licenseHandler.Verify)
	e.POST("/webhook/payment", webhookHandler.Payment)
	e.POST("/quota/check", quotaHandler.Check)

	// --- Third-party proxies ---
	e.POST("/ocr", proxyHandler.OCR)
	e.POST("/shorten", proxyHandler.Shorten)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
