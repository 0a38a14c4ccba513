package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries worth a warning
const slowQueryThreshold = 200 * time.Millisecond

// GormDatabaseLogger adapts the domain Logger to gorm's logger interface
type GormDatabaseLogger struct {
	logger coreport.Logger
}

// NewGormDatabaseLogger creates a gorm logger backed by the domain logger
func NewGormDatabaseLogger(logger coreport.Logger) gormlogger.Interface {
	return &GormDatabaseLogger{logger: logger}
}

// LogMode implements gorm's logger interface; the domain logger owns the
// level, so this is a no-op passthrough
func (l *GormDatabaseLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

// Info logs informational messages from gorm
func (l *GormDatabaseLogger) Info(_ context.Context, msg string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(msg, args...), map[string]any{"source": "gorm"})
}

// Warn logs warnings from gorm
func (l *GormDatabaseLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(msg, args...), map[string]any{"source": "gorm"})
}

// Error logs errors from gorm
func (l *GormDatabaseLogger) Error(_ context.Context, msg string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(msg, args...), map[string]any{"source": "gorm"})
}

// Trace logs SQL execution with timing; not-found is expected traffic and
// stays at debug level
func (l *GormDatabaseLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := map[string]any{
		"source":     "gorm",
		"elapsed_ms": elapsed.Milliseconds(),
		"rows":       rows,
		"sql":        sql,
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		fields["error"] = err.Error()
		l.logger.Error("Query failed", fields)
	case elapsed > slowQueryThreshold:
		l.logger.Warn("Slow query", fields)
	default:
		l.logger.Debug("Query executed", fields)
	}
}
