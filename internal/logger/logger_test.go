package logger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLogger_RoleAndCaller verifies that entries carry the role field and
// the caller is recorded under "func".
func TestNewLogger_RoleAndCaller(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("syncd")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "syncd", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewFileLogger_Stdout(t *testing.T) {
	l, closer := NewFileLogger("syncd", Options{Level: "info"})
	require.NotNil(t, l)
	require.NoError(t, closer.Close())
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestNewFileLogger_BadLevelFallsBackToDebug(t *testing.T) {
	NewFileLogger("syncd", Options{Level: "loud"})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

// TestNewFileLogger_WritesToFile verifies that entries end up in the rotating
// log file.
func TestNewFileLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "syncd.log")

	l, closer := NewFileLogger("syncd", Options{File: path, MaxSizeMB: 1})
	l.Info().Str("step", "pull").Msg("to file")
	require.NoError(t, closer.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	sc := bufio.NewScanner(f)
	require.True(t, sc.Scan())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
	assert.Equal(t, "pull", entry["step"])
	assert.Equal(t, "syncd", entry["role"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("syncd")
	parent.Logger = parent.Output(&buf)

	child := parent.WithComponent("scheduler")
	assert.NotSame(t, parent, child)
	child.Info().Msg("child")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scheduler", entry["component"])
	assert.Equal(t, "syncd", entry["role"])
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("inherited-role")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	child.Info().Msg("child message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "inherited-role", entry["role"])
}

func TestFromContext(t *testing.T) {
	t.Run("no logger attached", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})

	t.Run("attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("cycle", "42").Logger()
		ctx := zl.WithContext(context.Background())

		FromContext(ctx).Info().Msg("from context")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "42", entry["cycle"])
	})
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("req-key", "req-value").Logger()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(zl.WithContext(context.Background()))

	FromRequest(req).Info().Msg("from request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-value", entry["req-key"])
}
