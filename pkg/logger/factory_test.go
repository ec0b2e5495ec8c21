package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recordkit/pkg/logger"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("creates JSON logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		require.NotNil(t, log)
		log.Info("hello")
		entry := decodeEntry(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter option", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter())
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level by name", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("warn"))
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("unknown level name keeps default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("loud"))
		log.Info("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("includes default attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(logger.Component("cli")))
		log.Info("msg")
		assert.Equal(t, "cli", decodeEntry(t, buf)["component"])
	})

	t.Run("run id from context", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		ctx := logger.WithRunID(context.Background(), "run-42")
		log.InfoContext(ctx, "validated")
		assert.Equal(t, "run-42", decodeEntry(t, buf)["run_id"])
		assert.Equal(t, "run-42", logger.RunIDFromContext(ctx))
		assert.Empty(t, logger.RunIDFromContext(context.Background()))
	})

	t.Run("context value option", func(t *testing.T) {
		buf := &bytes.Buffer{}
		type key string
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("source", key("src")))
		ctx := context.WithValue(context.Background(), key("src"), "s3")
		log.InfoContext(ctx, "loaded")
		assert.Equal(t, "s3", decodeEntry(t, buf)["source"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Run("development is text at debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("dev", "recordkit"), logger.WithOutput(buf))
		log.Debug("msg")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "service=recordkit")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("production is json at info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("prod", "recordkit"), logger.WithOutput(buf))
		log.Debug("dropped")
		assert.Empty(t, buf.String())
		log.Info("msg")
		entry := decodeEntry(t, buf)
		assert.Equal(t, "recordkit", entry["service"])
		assert.Equal(t, logger.Production, entry["env"])
	})
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.Info("default")
	assert.Equal(t, "default", decodeEntry(t, buf)["msg"])
}

func TestWithFormatPanics(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}

func TestDiscard(t *testing.T) {
	log := logger.Discard()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
