package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/ergolife/storefront/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewProfiler_Disabled(t *testing.T) {
	cfg := config.TelemetryConfig{
		ServiceName:       "storefront-test",
		ProfilingEnabled:  false,
		ProfilingEndpoint: "http://localhost:4040",
	}

	profiler, err := NewProfiler(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, profiler)
	assert.False(t, profiler.IsEnabled())

	assert.NoError(t, profiler.Stop())
	assert.NoError(t, profiler.Stop())
}

func TestNewProfiler_RequiresEndpointAndName(t *testing.T) {
	_, err := NewProfiler(config.TelemetryConfig{ProfilingEnabled: true, ServiceName: "storefront"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profiling_endpoint")

	_, err = NewProfiler(config.TelemetryConfig{ProfilingEnabled: true, ProfilingEndpoint: "http://localhost:4040"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_name")
}

func TestTracerProvider_EnableSpanProfilesWhileDisabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.NotPanics(t, tp.EnableSpanProfiles)
	assert.False(t, tp.IsEnabled())
}

func TestWithProfilingLabels(t *testing.T) {
	t.Run("attaches route and method", func(t *testing.T) {
		var route, method string
		WithProfilingLabels(context.Background(), HTTPRequestLabels("/api/cart", "POST"), func(ctx context.Context) {
			route, _ = pprof.Label(ctx, ProfilingLabelRoute)
			method, _ = pprof.Label(ctx, ProfilingLabelMethod)
		})
		assert.Equal(t, "/api/cart", route)
		assert.Equal(t, "POST", method)
	})

	t.Run("drops high cardinality and empty labels", func(t *testing.T) {
		called := false
		WithProfilingLabels(context.Background(), map[string]string{"user_id": "42", "route": ""}, func(ctx context.Context) {
			called = true
			_, ok := pprof.Label(ctx, "user_id")
			assert.False(t, ok)
		})
		assert.True(t, called)
	})
}

func TestSanitizeLabels(t *testing.T) {
	long := strings.Repeat("x", MaxLabelValueLength+10)
	pairs := sanitizeLabels(map[string]string{
		"Order-ID": "7",
		"Route":    long,
		"Méthod!":  "GET",
	})
	assert.Equal(t, []string{"mthod", "GET", "route", long[:MaxLabelValueLength]}, pairs)
	assert.Nil(t, sanitizeLabels(nil))
}
