package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_toLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, expected := range testCases {
		assert.Equal(t, expected, toLevel(in), "level %q", in)
	}
}

func Test_newLogger_FiltersAndEncodesJSON(t *testing.T) {
	// given
	var buf bytes.Buffer
	log := newLogger(&buf, "warn")

	// when
	log.Info("dropped")
	log.Warn("kept", "ID", 7)

	// then
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "WARN", record["level"])
	assert.EqualValues(t, 7, record["ID"])
}

func Test_NewDbPool_InvalidURL(t *testing.T) {
	_, err := NewDbPool(context.Background(), "postgres://%zz", time.Second)

	assert.ErrorContains(t, err, "failed to create database connection pool")
}
