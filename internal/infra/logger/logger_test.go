package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersWriteThroughSetLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Debug("debug entry", Bool("flag", true))
	Info("info entry", String("module", "Login"), Int("count", 3))
	Warn("warn entry")
	Error("error entry", Err(errors.New("boom")))

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "info entry", entries[1].Message)
	assert.Equal(t, "Login", entries[1].ContextMap()["module"])
	assert.Equal(t, int64(3), entries[1].ContextMap()["count"])
	assert.Equal(t, "boom", entries[3].ContextMap()["error"])
}

func TestNilLoggerIsSilent(t *testing.T) {
	Set(nil)
	assert.NotPanics(t, func() {
		Info("dropped")
		Close()
	})
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manustarter.log")
	require.NoError(t, Init(false, path))
	t.Cleanup(func() { Set(nil) })

	Debug("hidden at info level")
	Info("written")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written"`)
	assert.NotContains(t, string(data), "hidden at info level")
}
