package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.False(t, cfg.Server.Dev)
	assert.Equal(t, "db.db", cfg.Database.Filename)
	assert.Contains(t, cfg.Database.Dir, ".timetracker")
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 1, cfg.Validation.NameMinLength)
	assert.Equal(t, 255, cfg.Validation.NameMaxLength)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TIMETRACKER_HOST", "0.0.0.0")
	t.Setenv("TIMETRACKER_PORT", "9090")
	t.Setenv("TIMETRACKER_DB_DIR", "/tmp/tracker")
	t.Setenv("TIMETRACKER_DB_FILENAME", "test.db")
	t.Setenv("TIMETRACKER_LOG_LEVEL", "debug")
	t.Setenv("TIMETRACKER_DEV", "true")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.Dev)
	assert.Equal(t, "/tmp/tracker", cfg.Database.Dir)
	assert.Equal(t, "test.db", cfg.Database.Filename)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join("/tmp/tracker", "test.db"), cfg.GetDatabasePath())
}

func TestLoadFromEnvironment_InvalidPort(t *testing.T) {
	t.Setenv("TIMETRACKER_PORT", "not-a-port")

	cfg := NewConfig()
	err := cfg.LoadFromEnvironment()
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`server:
  host: 0.0.0.0
  port: 3000
database:
  dir: /data
log:
  level: warn
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "/data", cfg.Database.Dir)
	assert.Equal(t, "warn", cfg.Log.Level)
	// Untouched values keep their defaults
	assert.Equal(t, "db.db", cfg.Database.Filename)
}

func TestLoadFromFile_Missing(t *testing.T) {
	cfg := NewConfig()
	err := cfg.LoadFromFile("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 3000\n"), 0644))

	t.Setenv("TIMETRACKER_CONFIG", path)
	t.Setenv("TIMETRACKER_PORT", "4000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		errField string
	}{
		{"empty host", func(c *Config) { c.Server.Host = "" }, "server.host"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"empty db dir", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"empty db filename", func(c *Config) { c.Database.Filename = "" }, "database.filename"},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout"},
		{"zero write timeout", func(c *Config) { c.Database.WriteTimeout = 0 }, "database.write_timeout"},
		{"zero name min length", func(c *Config) { c.Validation.NameMinLength = 0 }, "validation.name_min_length"},
		{"max below min", func(c *Config) { c.Validation.NameMaxLength = 0 }, "validation.name_max_length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			cfgErr, ok := err.(*ConfigError)
			require.True(t, ok)
			assert.Equal(t, tt.errField, cfgErr.Field)
		})
	}
}
