package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nettracex/netlistx/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = ParseLevel("DEBUG")
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("fatal")
	assert.NoError(t, err)
	assert.Equal(t, LevelFatal, level)

	_, err = ParseLevel("trace")
	assert.Error(t, err)
}

func TestLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, false)

	logger.Debug("hidden")
	logger.Info("Netlist written", "path", "board.net", "components", 12)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `level=INFO msg="Netlist written" path=board.net components=12`)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelDebug, true)

	logger.Error("Write failed", "error", errors.New("disk full"), "dangling")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "Write failed", entry["msg"])
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, "dangling", entry["!BADKEY"])
}

func TestLoggerFatalExits(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, false)
	code := -1
	logger.exit = func(c int) { code = c }

	logger.Fatal("boom")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "level=FATAL msg=boom")
}

func TestLoggerDropsEntriesAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netlistx.log")
	logger, err := FromConfig(domain.LoggingConfig{Level: "debug", Format: "text", Output: "file", File: path})
	require.NoError(t, err)

	logger.Info("before close")
	require.NoError(t, logger.Close())
	logger.Warn("Process exited with error", "pid", 42)
	assert.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before close")
	assert.NotContains(t, string(data), "Process exited")
}

func TestFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netlistx.log")
	logger, err := FromConfig(domain.LoggingConfig{Level: "info", Format: "text", Output: "file", File: path})
	require.NoError(t, err)
	logger.Info("hello")
	assert.NoError(t, logger.Close())
	assert.FileExists(t, path)

	logger, err = FromConfig(domain.LoggingConfig{Level: "info", Output: "none"})
	require.NoError(t, err)
	assert.NoError(t, logger.Close())

	_, err = FromConfig(domain.LoggingConfig{Level: "loud", Output: "stderr"})
	assert.Error(t, err)

	_, err = FromConfig(domain.LoggingConfig{Level: "info", Output: "syslog"})
	assert.Error(t, err)
}

func TestLoggerImplementsDomainLogger(t *testing.T) {
	var _ domain.Logger = NewNop()
}
