package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LoopTracer/looptracer-landing/internal/config"
)

func TestNew_WritesToRotatingFile(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "landing.log")

	log, closer := New(cfg)
	log.Info().Str("relay", "lead").Msg("forwarded")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.Logging.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"relay":"lead"`)
	assert.Contains(t, string(data), `"service":"looptracer-landing"`)
}

func TestNew_FallsBackToInfo(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	log, closer := New(cfg)
	defer closer.Close()
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	fallback := zerolog.New(&buf)

	got := FromContext(context.Background(), fallback)
	got.Info().Msg("from fallback")
	assert.Contains(t, buf.String(), "from fallback")

	var scoped bytes.Buffer
	ctx := zerolog.New(&scoped).With().Str("request_id", "abc").Logger().WithContext(context.Background())
	got = FromContext(ctx, fallback)
	got.Info().Msg("from request")
	assert.Contains(t, scoped.String(), `"request_id":"abc"`)
}

func TestNew_DevelopmentFileGetsJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "development"
	cfg.Logging.File = filepath.Join(t.TempDir(), "landing.log")

	log, closer := New(cfg)
	log.Warn().Str("relay", "log").Msg("event dropped")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.Logging.File)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "event dropped", line["message"])
	assert.NotContains(t, string(data), "\x1b[")
}
