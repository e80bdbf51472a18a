package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
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
	"github.com/ergolife/storefront/internal/infrastructure/persistence"
	"github.com/ergolife/storefront/internal/infrastructure/storage"
	"github.com/ergolife/storefront/internal/interfaces/http/handler"
	"github.com/ergolife/storefront/internal/interfaces/http/middleware"
	"github.com/ergolife/storefront/internal/interfaces/http/router"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Seeded accounts
const (
	AdminEmail    = "admin@ergolife.com"
	AdminPassword = "admin123"
)

// Server is the storefront API over an in-memory SQLite database,
// listening on a local port.
type Server struct {
	t *testing.T

	URL    string
	DB     *gorm.DB
	Images *storage.MemoryImageStore
	// Events records every domain event the services publish
	Events *MockEventHandler
}

// NewServer wires the full storefront stack with the seeded admin and
// starter catalogue. It shuts down when the test ends.
func NewServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, persistence.AutoMigrate(db.DB))

	seeder := persistence.NewSeeder(db.DB, nil)
	require.NoError(t, seeder.EnsureAdmin(ctx, AdminEmail, AdminPassword))
	require.NoError(t, seeder.SeedCatalog(ctx))

	bus := event.NewInMemoryEventBus(nil)
	events := NewMockEventHandler()
	bus.Subscribe(events)

	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)
	blogRepo := persistence.NewGormBlogRepository(db.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "testutil-secret-0123456789abcdef",
		Expiration: time.Hour,
		Issuer:     "ergolife",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, nil)
	userService := identityapp.NewUserService(userRepo, nil)
	productCache := cache.NewInMemoryProductCache(time.Minute)
	bus.Subscribe(cache.NewProductCacheInvalidator(productCache, nil))
	productService := catalogapp.NewProductService(productRepo, productCache, bus, nil)
	images := storage.NewMemoryImageStore("https://cdn.test")

	engine := router.NewEngine(router.EngineConfig{
		HTTP:   config.HTTPConfig{MaxBodySize: 10 << 20, CORSAllowOrigins: []string{"*"}},
		Health: handler.NewHealthHandler(db),
		Handlers: router.Handlers{
			Auth:    handler.NewAuthHandler(authService),
			Product: handler.NewProductHandler(productService, authService),
			Cart:    handler.NewCartHandler(tradeapp.NewCartService(cartRepo, productRepo, nil)),
			Order:   handler.NewOrderHandler(tradeapp.NewOrderService(cartRepo, orderRepo, voucherRepo, bus, nil)),
			Blog:    handler.NewBlogHandler(marketingapp.NewBlogService(blogRepo, nil)),
			Voucher: handler.NewVoucherHandler(marketingapp.NewVoucherService(voucherRepo, nil)),
			User:    handler.NewUserHandler(userService),
			Admin: handler.NewAdminHandler(
				adminapp.NewDashboardService(userService, productService, orderRepo, nil),
				images, 0,
			),
		},
		Guards: router.Guards{
			Authenticated: middleware.JWTAuthMiddleware(jwtService, blacklist),
			Admin:         middleware.RequireRoles("ADMIN"),
			Staff:         middleware.RequireRoles("ADMIN", "STAFF"),
		},
	})

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return &Server{t: t, URL: srv.URL, DB: db.DB, Images: images, Events: events}
}

// Do sends a JSON request and decodes the envelope.
func (s *Server) Do(method, path, token string, body any) (int, Envelope) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(s.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var env Envelope
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

// Login returns a bearer token for the account.
func (s *Server) Login(email, password string) string {
	s.t.Helper()
	status, env := s.Do(http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, status, "login %s", email)
	login := DecodeData[struct {
		Token string `json:"token"`
	}](s.t, env)
	return login.Token
}

// Register creates a customer and returns a token for it.
func (s *Server) Register(name, email, password string) string {
	s.t.Helper()
	status, _ := s.Do(http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(s.t, http.StatusCreated, status, "register %s", email)
	return s.Login(email, password)
}
