package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	adminapp "github.com/ergolife/storefront/internal/application/admin"
	catalogapp "github.com/ergolife/storefront/internal/application/catalog"
	identityapp "github.com/ergolife/storefront/internal/application/identity"
	marketingapp "github.com/ergolife/storefront/internal/application/marketing"
	tradeapp "github.com/ergolife/storefront/internal/application/trade"
	"github.com/ergolife/storefront/internal/infrastructure/auth"
	"github.com/ergolife/storefront/internal/infrastructure/cache"
	"github.com/ergolife/storefront/internal/infrastructure/config"
	"github.com/ergolife/storefront/internal/infrastructure/event"
	"github.com/ergolife/storefront/internal/infrastructure/logger"
	"github.com/ergolife/storefront/internal/infrastructure/persistence"
	"github.com/ergolife/storefront/internal/infrastructure/storage"
	"github.com/ergolife/storefront/internal/infrastructure/telemetry"
	"github.com/ergolife/storefront/internal/interfaces/http/handler"
	"github.com/ergolife/storefront/internal/interfaces/http/middleware"
	"github.com/ergolife/storefront/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/ergolife/storefront/docs"
)

//	@title			Ergolife Storefront API
//	@version		1.0
//	@description	Ergonomic furniture storefront: catalogue, cart, checkout, blog and back office.

//	@contact.name	Ergolife
//	@contact.email	support@ergolife.com

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A bootstrap logger reports telemetry setup; the final logger also
	// tees into the OTLP log bridge when it is enabled.
	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Telemetry, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		providers.Tracer.EnableSpanProfiles()
	}

	var extraCores []zapcore.Core
	if providers.Logs.IsEnabled() {
		extraCores = append(extraCores, providers.Logs.Core(zapcore.InfoLevel))
	}
	log, err := logger.New(logCfg, extraCores...)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting Ergolife storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	if err := run(ctx, cfg, log, providers, profiler.IsEnabled()); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown incomplete", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Profiler shutdown incomplete", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, providers *telemetry.Providers, profiling bool) error {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Database.Driver == config.DriverSQLite {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			return err
		}
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbSystem := "postgresql"
		if cfg.Database.Driver == config.DriverSQLite {
			dbSystem = "sqlite"
		}
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{DBSystem: dbSystem}, log); err != nil {
			log.Warn("Database tracing disabled", zap.Error(err))
		}
	}

	seeder := persistence.NewSeeder(db.DB, log)
	if err := seeder.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
		return err
	}
	if err := seeder.SeedCatalog(ctx); err != nil {
		return err
	}

	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-process stores", zap.Error(err))
		} else {
			redisClient = client
			defer client.Close()
		}
	}
	caches := cache.NewFactory(redisClient, cache.WithLogger(log))
	productCache := caches.ProductCache(cfg.Cache.ProductTTL)
	blacklist := caches.TokenBlacklist()

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(cache.NewProductCacheInvalidator(productCache, log))
	bus.Subscribe(event.NewOrderActivityLogger(log))
	if providers.Meter.IsEnabled() {
		orderMetrics, err := telemetry.NewOrderMetrics(providers.Meter.Meter("ergolife/storefront"))
		if err != nil {
			log.Warn("Order metrics disabled", zap.Error(err))
		} else {
			bus.Subscribe(orderMetrics)
		}
	}

	var images storage.ImageStore = storage.NewMemoryImageStore("")
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3ImageStore(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			return err
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Warn("Image bucket check failed", zap.Error(err))
		}
		images = s3Store
	} else {
		log.Warn("Object storage disabled, uploads are kept in memory")
	}

	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)
	blogRepo := persistence.NewGormBlogRepository(db.DB)

	jwtService := auth.NewJWTService(cfg.JWT)

	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	productService := catalogapp.NewProductService(productRepo, productCache, bus, log)
	cartService := tradeapp.NewCartService(cartRepo, productRepo, log)
	orderService := tradeapp.NewOrderService(cartRepo, orderRepo, voucherRepo, bus, log)
	voucherService := marketingapp.NewVoucherService(voucherRepo, log)
	blogService := marketingapp.NewBlogService(blogRepo, log)
	dashboardService := adminapp.NewDashboardService(userService, productService, orderRepo, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engineCfg := router.EngineConfig{
		Logger:  log,
		HTTP:    cfg.HTTP,
		Swagger: cfg.Swagger,
		Tracing: middleware.TracingConfig{ServiceName: cfg.Telemetry.ServiceName, Enabled: cfg.Telemetry.Enabled},
		Metrics: middleware.NewHTTPMetrics("storefront"),
		Health:  handler.NewHealthHandler(db),
		Handlers: router.Handlers{
			Auth:    handler.NewAuthHandler(authService),
			Product: handler.NewProductHandler(productService, authService),
			Cart:    handler.NewCartHandler(cartService),
			Order:   handler.NewOrderHandler(orderService),
			Blog:    handler.NewBlogHandler(blogService),
			Voucher: handler.NewVoucherHandler(voucherService),
			User:    handler.NewUserHandler(userService),
			Admin:   handler.NewAdminHandler(dashboardService, images, handler.DefaultMaxUploadSize),
		},
		Guards: router.Guards{
			Authenticated: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
				JWTService:     jwtService,
				TokenBlacklist: blacklist,
				Logger:         log,
			}),
			Admin: middleware.RequireRoles("ADMIN"),
			Staff: middleware.RequireRoles("ADMIN", "STAFF"),
		},
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		go limiter.Run(ctx)
		engineCfg.RateLimiter = limiter

		authLimiter := middleware.NewRateLimiter(10, time.Minute)
		go authLimiter.Run(ctx)
		engineCfg.AuthLimiter = authLimiter

		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	engineCfg.Profiling = profiling
	engine := router.NewEngine(engineCfg)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
