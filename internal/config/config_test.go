package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL())
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Cache.StaleTime)
	assert.Equal(t, 5*time.Minute, cfg.Cache.GCTime)
	assert.Equal(t, 2, cfg.Cache.Retry)
	assert.Equal(t, 20, cfg.UI.PageSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  environment: production
  timeout: 10s
cache:
  stale_time: 1m
  retry: 0
player:
  command: mpv
  args: ["--fs"]
logging:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Server.Environment)
	assert.Equal(t, "https://hema-lessons-api-564075903124.us-east1.run.app", cfg.Server.BaseURL())
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
	assert.Equal(t, time.Minute, cfg.Cache.StaleTime)
	assert.Equal(t, 0, cfg.Cache.Retry)
	assert.Equal(t, "mpv", cfg.Player.Command)
	assert.Equal(t, []string{"--fs"}, cfg.Player.Args)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HEMA_SERVER_URL", "http://api.internal:9000")
	t.Setenv("HEMA_CACHE_RETRY", "5")

	cfg, err := LoadConfig(writeConfig(t, "server:\n  environment: production\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://api.internal:9000", cfg.Server.BaseURL())
	assert.Equal(t, 5, cfg.Cache.Retry)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"unknown environment", func(c *Config) { c.Server.Environment = "staging" }, false},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, false},
		{"negative retry", func(c *Config) { c.Cache.Retry = -1 }, false},
		{"no url", func(c *Config) { c.Server.DevelopmentURL = "" }, false},
		{"override without hosts", func(c *Config) {
			c.Server.DevelopmentURL = ""
			c.Server.URL = "http://localhost:1234"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}
