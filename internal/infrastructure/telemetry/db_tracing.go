package telemetry

import (
	"time"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

type contextKey string

const queryStartKey contextKey = "telemetry_query_start"

// RegisterDBTracing attaches the otelgorm plugin plus a slow-query marker to
// the GORM instance. Query variables are never recorded in spans.
func RegisterDBTracing(db *gorm.DB, cfg config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		logger.Debug("Database tracing disabled")
		return nil
	}

	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName("postgresql"),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}

	threshold := cfg.DBSlowQueryThresh
	if threshold <= 0 {
		threshold = defaultSlowQueryThreshold
	}
	if err := registerSlowQueryMarker(db, threshold); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Duration("slow_query_threshold", threshold),
	)
	return nil
}

// registerSlowQueryMarker times each statement and tags the active span when
// the statement exceeds the threshold
func registerSlowQueryMarker(db *gorm.DB, threshold time.Duration) error {
	before := func(tx *gorm.DB) {
		tx.Set(string(queryStartKey), time.Now())
	}
	after := func(tx *gorm.DB) {
		v, ok := tx.Get(string(queryStartKey))
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		if elapsed < threshold {
			return
		}

		span := trace.SpanFromContext(tx.Statement.Context)
		if !span.IsRecording() {
			return
		}
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.elapsed_ms", elapsed.Milliseconds()),
		)
	}

	if err := db.Callback().Create().Before("gorm:create").Register("slow_query:before_create", before); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("slow_query:after_create", after); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("slow_query:before_query", before); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("slow_query:after_query", after); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("slow_query:before_update", before); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("slow_query:after_update", after); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("slow_query:before_delete", before); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("slow_query:after_delete", after); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("slow_query:before_raw", before); err != nil {
		return err
	}
	if err := db.Callback().Raw().After("gorm:raw").Register("slow_query:after_raw", after); err != nil {
		return err
	}

	return nil
}
