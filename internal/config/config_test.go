package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1200*time.Millisecond, cfg.Lab.AdvanceDelay)
	assert.Equal(t, 2*time.Second, cfg.Lab.NoticeDuration)
	assert.Equal(t, 6, cfg.Lab.TestSetRows)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Console)
	assert.Empty(t, cfg.LLM.Provider)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingDefaultFileIsNotAnError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Lab.TestSetRows)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
db_path: /tmp/lab.db
lab:
  advance_delay: 500ms
  test_set_rows: 8
llm:
  provider: anthropic
  model: claude-haiku
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	t.Setenv("TESTLAB_LAB_TEST_SET_ROWS", "10")
	t.Setenv("TESTLAB_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/lab.db", cfg.DBPath)
	assert.Equal(t, 500*time.Millisecond, cfg.Lab.AdvanceDelay)
	assert.Equal(t, 10, cfg.Lab.TestSetRows, "env overrides file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-haiku", cfg.LLM.Model)
}

func TestLoadDiscoversDefaultLocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "testlab"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "testlab", "config.yaml"),
		[]byte("lab:\n  seed: 42\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Lab.Seed)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Lab.TestSetRows = 0
	cfg.Lab.AdvanceDelay = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lab.test_set_rows")
	assert.Contains(t, err.Error(), "lab.advance_delay")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TESTLAB_LAB_TEST_SET_ROWS", "0")

	_, err := Load("")
	assert.Error(t, err)
}
