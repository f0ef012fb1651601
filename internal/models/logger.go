package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// dbLogger forwards gorm log output to zerolog.
type dbLogger struct {
	log zerolog.Logger
}

func (l *dbLogger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *dbLogger) Info(_ context.Context, format string, args ...interface{}) {
	l.log.Info().Msgf(format, args...)
}

func (l *dbLogger) Warn(_ context.Context, format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l *dbLogger) Error(_ context.Context, format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l *dbLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	query, rows := fc()

	event := l.log.Debug()

	// Missing records are reported to the client, not an error worth
	// alerting on
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, ErrResourceNotFound) {
		event = l.log.Error().Err(err)
	}

	event.
		Str("query", query).
		Int64("rows", rows).
		Dur("elapsed", time.Since(begin)).
		Msg("database")
}
