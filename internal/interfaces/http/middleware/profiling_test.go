package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestProfiling_LabelsMatchedRoutes(t *testing.T) {
	labels := map[string]string{}
	capture := func(c *gin.Context) {
		pprof.ForLabels(c.Request.Context(), func(key, value string) bool {
			labels[c.Request.URL.Path+" "+key] = value
			return true
		})
		c.Status(http.StatusNoContent)
	}

	router := gin.New()
	router.Use(Profiling())
	router.GET("/api/products/:id", capture)
	router.GET("/health", capture)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products/9", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "/api/products/:id", labels["/api/products/9 route"])
	assert.Equal(t, http.MethodGet, labels["/api/products/9 method"])
	assert.NotContains(t, labels, "/health route")
}
