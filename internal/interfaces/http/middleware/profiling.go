package middleware

import (
	"context"
	"strings"

	"github.com/ergolife/storefront/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// unprofiledPaths are served without profiling labels
var unprofiledPaths = []string{"/health", "/metrics", "/swagger/"}

// Profiling tags each request's goroutine with its route pattern and method so
// CPU and allocation profiles can be filtered per endpoint. Unmatched routes
// and infrastructure paths run unlabelled.
func Profiling() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || isUnprofiled(route) {
			c.Next()
			return
		}
		labels := telemetry.HTTPRequestLabels(route, c.Request.Method)
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func isUnprofiled(route string) bool {
	for _, p := range unprofiledPaths {
		if route == p || strings.HasPrefix(route, p) {
			return true
		}
	}
	return false
}
