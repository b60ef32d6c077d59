package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/LoopTracer/looptracer-landing/internal/config"
)

// New builds the service logger. Development gets a console writer on stderr,
// every other environment gets JSON on stdout. If a log file is configured the
// output is also written to a rotating file.
func New(cfg *config.ObservabilityConfig) (zerolog.Logger, io.Closer) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Environment == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	var closer io.Closer = nopCloser{}
	if cfg.Logging.File != "" {
		rotator := newRotator(cfg.Logging)
		// each writer gets the raw JSON event; ConsoleWriter only reformats its own copy
		out = zerolog.MultiLevelWriter(out, rotator)
		closer = rotator
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("env", cfg.Environment).
		Logger(), closer
}

func newRotator(cfg config.LoggingConfig) *lumberjack.Logger {
	_ = os.MkdirAll(filepath.Dir(cfg.File), 0o755)
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// FromContext returns the request-scoped logger stored by the request logging
// middleware, or fallback when the context carries none.
func FromContext(ctx context.Context, fallback zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return fallback
	}
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return fallback
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
