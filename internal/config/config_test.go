package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/api", c.Backend.URL)
	assert.Equal(t, 5*time.Second, c.Backend.Timeout)
	assert.Equal(t, "http://localhost:8080", c.Dashboard.URL)
	assert.Equal(t, 10*time.Second, c.CheckInterval)
	assert.Equal(t, "LOLBin Monitor", c.App.Name)
	assert.Equal(t, 64, c.App.IconSizePx)
	assert.Equal(t, 15*time.Second, c.Notify.DisplayDuration)
	assert.Equal(t, 4096, c.Seen.MaxKeys)
	assert.Equal(t, 24*time.Hour, c.Seen.TTL)
	assert.False(t, c.Metrics.Enabled)
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend:
  url: http://detector:3000/api
  timeout: 2s
check_interval: 30s
seen:
  max_keys: 128
metrics:
  enabled: true
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://detector:3000/api", c.Backend.URL)
	assert.Equal(t, 2*time.Second, c.Backend.Timeout)
	assert.Equal(t, 30*time.Second, c.CheckInterval)
	assert.Equal(t, 128, c.Seen.MaxKeys)
	assert.True(t, c.Metrics.Enabled)
	// Untouched fields keep defaults.
	assert.Equal(t, "http://localhost:8080", c.Dashboard.URL)
	assert.Equal(t, 24*time.Hour, c.Seen.TTL)
	assert.Equal(t, ":9309", c.Metrics.ListenAddress)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
