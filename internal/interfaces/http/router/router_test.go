package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Empty(t, r.basePath)
	assert.Empty(t, r.registrars)
}

func TestRouterWithBasePath(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithBasePath("/v2"))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(group).Setup()

	w := serve(engine, http.MethodGet, "/v2/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/test/ping").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/products")
		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/products", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/items")
		ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
		g.GET("", ok).POST("", ok).PUT("/:id", ok).DELETE("/:id", ok)
		g.RegisterRoutes(engine.Group(""))

		for _, tc := range []struct{ method, path string }{
			{http.MethodGet, "/items"},
			{http.MethodPost, "/items"},
			{http.MethodPut, "/items/7"},
			{http.MethodDelete, "/items/7"},
		} {
			assert.Equal(t, http.StatusNoContent, serve(engine, tc.method, tc.path).Code, tc.method+" "+tc.path)
		}
	})

	t.Run("group middleware runs before handlers and reaches subgroups", func(t *testing.T) {
		engine := gin.New()
		var calls []string
		g := NewDomainGroup("api", "/api").Use(func(c *gin.Context) {
			calls = append(calls, "group")
		})
		sub := g.Group("admin", "/admin").Use(func(c *gin.Context) {
			calls = append(calls, "sub")
		})
		sub.GET("/dashboard", func(c *gin.Context) {
			calls = append(calls, "handler")
			c.Status(http.StatusOK)
		})
		g.RegisterRoutes(engine.Group(""))

		w := serve(engine, http.MethodGet, "/api/admin/dashboard")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"group", "sub", "handler"}, calls)
	})

	t.Run("lists routes with full paths", func(t *testing.T) {
		g := NewDomainGroup("api", "/api")
		g.Group("blogs", "/blogs").GET("", nil).GET("/:id", nil)
		g.Group("admin", "/admin").Group("orders", "/orders").PUT("/:id/status", nil)

		assert.Equal(t, []string{
			"GET /api/blogs",
			"GET /api/blogs/:id",
			"PUT /api/admin/orders/:id/status",
		}, g.Routes())
	})
}
