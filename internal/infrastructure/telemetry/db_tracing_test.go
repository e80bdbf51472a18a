package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func TestRegisterDBTracing(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&tracedRow{}))

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	core, logs := observer.New(zapcore.WarnLevel)

	err = RegisterDBTracing(db, DBTracingConfig{
		DBSystem:        "sqlite",
		SlowQueryThresh: time.Nanosecond,
		TracerProvider:  tp,
	}, zap.New(core))
	require.NoError(t, err)

	require.NoError(t, db.Create(&tracedRow{Name: "Split-K"}).Error)
	var rows []tracedRow
	require.NoError(t, db.Find(&rows).Error)
	assert.Len(t, rows, 1)

	assert.GreaterOrEqual(t, len(recorder.Ended()), 2)
	assert.GreaterOrEqual(t, logs.FilterMessage("Slow query").Len(), 2)
}

func TestRegisterDBTracing_DefaultsThreshold(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{DBSystem: "sqlite"}, zap.New(core)))

	entries := logs.FilterMessage("Database tracing enabled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultSlowQueryThreshold, entries[0].ContextMap()["slow_query_threshold"])
}
