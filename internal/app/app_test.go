package app_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodlog/foodlog-cli/internal/app"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := app.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "foodlog.db"), cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, app.DefaultLogPath(dir), cfg.LogFile)
	assert.Empty(t, cfg.Language)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "db: /tmp/from-file.db\nlanguage: es\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := app.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-file.db", cfg.DBPath)
	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv("FOODLOG_DB", "/tmp/from-env.db")
	t.Setenv("FOODLOG_LOG_LEVEL", "warn")
	cfg, err = app.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestNewLoggerWritesFileAndVerboseStderr(t *testing.T) {
	t.Parallel()
	logFile := filepath.Join(t.TempDir(), "logs", "foodlog.log")
	var stderr bytes.Buffer

	logger, closer := app.NewLogger(app.Config{LogLevel: "info", LogFile: logFile}, true, &stderr)
	logger.Debug("entry added", "id", 1)
	require.NoError(t, closer.Close())

	assert.Contains(t, stderr.String(), "foodlog: entry added")
	b, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "entry added")
}

func TestNewLoggerDisabled(t *testing.T) {
	t.Parallel()
	logger, closer := app.NewLogger(app.Config{LogFile: "off"}, false, nil)
	defer closer.Close()
	assert.False(t, logger.IsInfo())
}
