package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksakamaki/hospdash/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
version: 1
feeds:
  dashboard: https://example.com/metrics
  special: https://example.com/special
retry:
  max_attempts: 5
  delay: 1s
  timeout: 10s
chart:
  days_to_show: 7
  debounce_delay: 100ms
capacity:
  general_ward: 180
  icu: 12
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/metrics", cfg.Feeds.Dashboard)
	assert.Equal(t, "https://example.com/special", cfg.Feeds.Special)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Retry.Delay)
	assert.Equal(t, 10*time.Second, cfg.Retry.Timeout)
	assert.Equal(t, 7, cfg.Chart.DaysToShow)
	assert.Equal(t, 100*time.Millisecond, cfg.Chart.DebounceDelay)
	assert.Equal(t, 180, cfg.Capacity.GeneralWard)
	assert.Equal(t, 12, cfg.Capacity.ICU)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
feeds:
  dashboard: https://example.com/metrics
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Retry.Delay)
	assert.Equal(t, 15*time.Second, cfg.Retry.Timeout)
	assert.Equal(t, 14, cfg.Chart.DaysToShow)
	assert.Equal(t, 200*time.Millisecond, cfg.Chart.DebounceDelay)
	assert.Equal(t, 202, cfg.Capacity.GeneralWard)
	assert.Equal(t, 16, cfg.Capacity.ICU)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ConfigFileName))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "feeds: [not: valid: yaml")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestEnvOverridesFeedURLs(t *testing.T) {
	t.Setenv(EnvDashboardURL, "https://env.example.com/metrics")
	t.Setenv(EnvSpecialURL, "https://env.example.com/special")

	dir := t.TempDir()
	path := writeConfig(t, dir, `
feeds:
  dashboard: https://file.example.com/metrics
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/metrics", cfg.Feeds.Dashboard)
	assert.Equal(t, "https://env.example.com/special", cfg.Feeds.Special)
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	t.Setenv(EnvDashboardURL, "https://env.example.com/metrics")

	// Run from an empty directory with no config anywhere near it.
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/metrics", cfg.Feeds.Dashboard)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestFindExplicitMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := DefaultConfig()
		cfg.Feeds.Dashboard = "https://example.com/metrics"
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing dashboard URL", func(t *testing.T) {
		cfg := base()
		cfg.Feeds.Dashboard = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-http dashboard URL", func(t *testing.T) {
		cfg := base()
		cfg.Feeds.Dashboard = "ftp://example.com"
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-http special URL", func(t *testing.T) {
		cfg := base()
		cfg.Feeds.Special = "example.com/special"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty special URL is fine", func(t *testing.T) {
		cfg := base()
		cfg.Feeds.Special = ""
		assert.NoError(t, cfg.Validate())
	})

	t.Run("zero attempts", func(t *testing.T) {
		cfg := base()
		cfg.Retry.MaxAttempts = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero days", func(t *testing.T) {
		cfg := base()
		cfg.Chart.DaysToShow = 0
		assert.Error(t, cfg.Validate())
	})
}
