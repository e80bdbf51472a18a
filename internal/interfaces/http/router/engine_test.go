package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
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
	"github.com/ergolife/storefront/internal/infrastructure/persistence"
	"github.com/ergolife/storefront/internal/infrastructure/storage"
	"github.com/ergolife/storefront/internal/interfaces/http/handler"
	"github.com/ergolife/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	images *storage.MemoryImageStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, persistence.AutoMigrate(db.DB))

	seeder := persistence.NewSeeder(db.DB, nil)
	require.NoError(t, seeder.EnsureAdmin(ctx, "admin@ergolife.com", "admin123"))
	require.NoError(t, seeder.SeedCatalog(ctx))

	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)
	blogRepo := persistence.NewGormBlogRepository(db.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{Secret: "engine-test-secret-0123456789abcdef", Expiration: time.Hour, Issuer: "ergolife"})
	blacklist := auth.NewInMemoryTokenBlacklist()

	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, nil)
	userService := identityapp.NewUserService(userRepo, nil)
	productService := catalogapp.NewProductService(productRepo, cache.NewInMemoryProductCache(time.Minute), nil, nil)
	cartService := tradeapp.NewCartService(cartRepo, productRepo, nil)
	orderService := tradeapp.NewOrderService(cartRepo, orderRepo, voucherRepo, nil, nil)
	dashboard := adminapp.NewDashboardService(userService, productService, orderRepo, nil)
	images := storage.NewMemoryImageStore("https://cdn.test")

	engine := NewEngine(EngineConfig{
		HTTP:    config.HTTPConfig{MaxBodySize: 10 << 20, CORSAllowOrigins: []string{"*"}},
		Metrics: middleware.NewHTTPMetrics("storefront"),
		Health:  handler.NewHealthHandler(db),
		Handlers: Handlers{
			Auth:    handler.NewAuthHandler(authService),
			Product: handler.NewProductHandler(productService, authService),
			Cart:    handler.NewCartHandler(cartService),
			Order:   handler.NewOrderHandler(orderService),
			Blog:    handler.NewBlogHandler(marketingapp.NewBlogService(blogRepo, nil)),
			Voucher: handler.NewVoucherHandler(marketingapp.NewVoucherService(voucherRepo, nil)),
			User:    handler.NewUserHandler(userService),
			Admin:   handler.NewAdminHandler(dashboard, images, 0),
		},
		Guards: Guards{
			Authenticated: middleware.JWTAuthMiddleware(jwtService, blacklist),
			Admin:         middleware.RequireRoles("ADMIN"),
			Staff:         middleware.RequireRoles("ADMIN", "STAFF"),
		},
	})
	return &testServer{t: t, engine: engine, images: images}
}

func (s *testServer) do(method, target, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var result identityapp.LoginResult
	require.NoError(s.t, json.Unmarshal(env.Data, &result))
	require.NotEmpty(s.t, result.Token)
	return result.Token
}

func TestEngine_SystemRoutes(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w, _ = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storefront_http_requests_total")

	w, env := s.do(http.MethodGet, "/swagger/index.html", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ERR_NOT_FOUND", env.Error.Code)
}

func TestEngine_CatalogIsPublic(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodGet, "/api/products?category=Tất%20cả&sort=price_asc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []catalogapp.ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.NotEmpty(t, products)
	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].Price, products[i].Price)
	}

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/api/products/%d", products[0].ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodGet, "/api/products/99999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ERR_NOT_FOUND", env.Error.Code)

	w, _ = s.do(http.MethodGet, "/api/blogs", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEngine_ShoppingFlow(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(http.MethodPost, "/auth/register", "", gin.H{"name": "Lan", "email": "lan@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := s.do(http.MethodPost, "/auth/register", "", gin.H{"name": "Lan", "email": "lan@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ERR_ALREADY_EXISTS", env.Error.Code)

	token := s.login("lan@example.com", "secret1")

	w, _ = s.do(http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, env = s.do(http.MethodGet, "/api/products", "", nil)
	var products []catalogapp.ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &products))
	product := products[0]

	w, env = s.do(http.MethodPost, "/api/cart/add", token, gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, env = s.do(http.MethodPost, "/api/cart/add", token, gin.H{"product_id": product.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cart tradeapp.CartResponse
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, product.Price*3, cart.Total)

	w, env = s.do(http.MethodPost, "/api/orders", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order tradeapp.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, product.Price*3, order.TotalAmount)
	assert.Equal(t, "PENDING", order.Status)

	_, env = s.do(http.MethodGet, "/api/cart", token, nil)
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Empty(t, cart.Items)

	w, env = s.do(http.MethodPost, "/api/orders", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Cart is empty", env.Error.Message)

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/products/%d/reviews", product.ID), token, gin.H{"rating": 5, "comment": "Rất tốt"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env = s.do(http.MethodGet, "/api/admin/dashboard", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ERR_FORBIDDEN", env.Error.Code)

	w, _ = s.do(http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, env = s.do(http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ERR_TOKEN_REVOKED", env.Error.Code)
}

func TestEngine_AdminRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin@ergolife.com", "admin123")

	w, env := s.do(http.MethodGet, "/api/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stats adminapp.DashboardStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.Users)
	assert.Positive(t, stats.Products)

	w, _ = s.do(http.MethodPost, "/api/products", token, gin.H{"name": "Ghế thử", "category": "Ghế", "price": 1500000, "stock": 3})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = s.do(http.MethodPost, "/api/admin/blogs", token, gin.H{"title": "Nháp", "content": "...", "author": "Admin", "published": false})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = s.do(http.MethodGet, "/api/admin/users?role=ADMIN", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []identityapp.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &users))
	require.Len(t, users, 1)

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", users[0].ID), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodGet, "/api/admin/orders", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEngine_AdminUpload(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin@ergolife.com", "admin123")

	upload := func(content []byte) (*httptest.ResponseRecorder, envelope) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", "chair.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("folder", "products"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		return w, env
	}

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	w, env := upload(png)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp handler.UploadResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "image/png", resp.ContentType)
	assert.True(t, strings.HasPrefix(resp.URL, "https://cdn.test/products/"))
	obj, ok := s.images.Get(resp.Key)
	require.True(t, ok)
	assert.Equal(t, png, obj.Data)

	w, env = upload([]byte("just some text"))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Equal(t, "ERR_UNSUPPORTED_MEDIA_TYPE", env.Error.Code)
}
