package router

import (
	"github.com/ergolife/storefront/internal/infrastructure/config"
	"github.com/ergolife/storefront/internal/infrastructure/logger"
	"github.com/ergolife/storefront/internal/interfaces/http/handler"
	"github.com/ergolife/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// EngineConfig carries everything NewEngine wires into the gin engine
type EngineConfig struct {
	Logger  *zap.Logger
	HTTP    config.HTTPConfig
	Swagger config.SwaggerConfig
	Tracing middleware.TracingConfig

	// Metrics exposes /metrics when set
	Metrics *middleware.HTTPMetrics
	// RateLimiter throttles every request per client IP when set
	RateLimiter *middleware.RateLimiter
	// AuthLimiter additionally throttles /auth/login and /auth/register
	AuthLimiter *middleware.RateLimiter
	// Profiling labels request goroutines with their route for Pyroscope
	Profiling bool

	Health   *handler.HealthHandler
	Handlers Handlers
	Guards   Guards
}

// NewEngine builds the storefront HTTP engine.
//
// Middleware order: tracing, request id, recovery, request logging,
// metrics, profiling labels, security headers, CORS, body limit, rate limit.
func NewEngine(cfg EngineConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	if cfg.Tracing.Enabled {
		engine.Use(middleware.TracingWithConfig(cfg.Tracing))
	}
	engine.Use(middleware.RequestID())
	if cfg.Tracing.Enabled {
		engine.Use(middleware.SpanEnricher())
	}
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Metrics != nil {
		engine.Use(cfg.Metrics.Middleware())
	}
	if cfg.Profiling {
		engine.Use(middleware.Profiling())
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	if cfg.Health != nil {
		engine.GET("/health", cfg.Health.Check)
	}
	if cfg.Metrics != nil {
		engine.GET("/metrics", cfg.Metrics.Handler())
	}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	guards := cfg.Guards
	if cfg.AuthLimiter != nil && guards.Strict == nil {
		guards.Strict = middleware.RateLimit(cfg.AuthLimiter)
	}

	r := NewRouter(engine)
	for _, group := range StorefrontGroups(cfg.Handlers, guards) {
		r.Register(group)
	}
	r.Setup()

	return engine
}
