package observability_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"fulfillment/internal/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesJSONWithServiceName(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(&buf, slog.LevelInfo, observability.Config{ServiceName: "fulfillment"})

	logger.Info("delivery dispatched", "delivery_note_id", "n-1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "delivery dispatched", record["msg"])
	assert.Equal(t, "fulfillment", record["service"])
	assert.Equal(t, "n-1", record["delivery_note_id"])
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(&buf, slog.LevelWarn, observability.Config{ServiceName: "fulfillment"})

	logger.Info("ignored")

	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, observability.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, observability.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel("verbose"))
}

func TestSetup_DisabledIsNoop(t *testing.T) {
	shutdown, err := observability.Setup(t.Context(), observability.Config{ServiceName: "fulfillment"})

	require.NoError(t, err)
	require.NoError(t, shutdown(t.Context()))
}
