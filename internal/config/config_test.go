package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(""))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DriverCSV, cfg.Catalog.Driver)
	assert.Equal(t, "data/songs.csv", cfg.Catalog.Path)
	assert.Equal(t, "statify.db", cfg.Preferences.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Catalog.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Catalog.BaseBackoff)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statify.yaml")
	yaml := `
server:
  addr: "127.0.0.1:9090"
catalog:
  driver: http
  url: https://example.com/songs.csv
  base_backoff: 250ms
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("STATIFY_CATALOG_MAX_RETRIES", "5")

	cfg, err := Load(New(path))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, DriverHTTP, cfg.Catalog.Driver)
	assert.Equal(t, "https://example.com/songs.csv", cfg.Catalog.URL)
	assert.Equal(t, 250*time.Millisecond, cfg.Catalog.BaseBackoff)
	assert.Equal(t, 5, cfg.Catalog.MaxRetries)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	base, err := Load(New(""))
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Catalog.Driver = "ftp" },
			wantErr: "Config.Catalog.Driver",
		},
		{
			name: "http driver needs url",
			mutate: func(c *Config) {
				c.Catalog.Driver = DriverHTTP
				c.Catalog.URL = ""
			},
			wantErr: "Config.Catalog.URL",
		},
		{
			name: "client id needs secret",
			mutate: func(c *Config) {
				c.Catalog.ClientID = "statify"
				c.Catalog.TokenURL = "https://auth.example.com/token"
			},
			wantErr: "Config.Catalog.ClientSecret",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "Config.Log.Level",
		},
		{
			name:    "zero retries",
			mutate:  func(c *Config) { c.Catalog.MaxRetries = 0 },
			wantErr: "Config.Catalog.MaxRetries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
