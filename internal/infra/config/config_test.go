package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, 10*time.Minute, cfg.Weather.CacheTTL)
	require.Equal(t, 6*time.Hour, cfg.Weather.RegionListTTL)
	require.Equal(t, 75, cfg.Weather.MatchThreshold)
	require.Equal(t, 70, cfg.Music.MatchThreshold)
	require.Equal(t, "/static", cfg.Static.URLPrefix)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
http:
  address: ":9090"
weather:
  cacheTtl: 5m
  matchThreshold: 80
music:
  catalogPath: data/videos.json
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 5*time.Minute, cfg.Weather.CacheTTL)
	require.Equal(t, 80, cfg.Weather.MatchThreshold)
	require.Equal(t, "data/videos.json", cfg.Music.CatalogPath)
	// Untouched keys keep their defaults.
	require.Equal(t, 6*time.Hour, cfg.Weather.RegionListTTL)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cwa:\n  apiKey: from-file\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("CWA_API_KEY", "from-env")
	t.Setenv("WEATHER_CACHE_TTL", "90s")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.CWA.APIKey)
	require.Equal(t, 90*time.Second, cfg.Weather.CacheTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty address", func(c *Config) { c.HTTP.Address = "" }},
		{"zero cache ttl", func(c *Config) { c.Weather.CacheTTL = 0 }},
		{"threshold over 100", func(c *Config) { c.Weather.MatchThreshold = 101 }},
		{"redis enabled without addr", func(c *Config) { c.Weather.Redis.Enabled = true }},
		{"no music source", func(c *Config) {
			c.Music.CatalogPath = ""
			c.Music.Postgres.DSN = ""
		}},
		{"minio enabled without bucket", func(c *Config) {
			c.Movies.Minio.Enabled = true
			c.Movies.Minio.Endpoint = "minio:9000"
			c.Movies.Minio.Bucket = ""
		}},
		{"static prefix without slash", func(c *Config) { c.Static.URLPrefix = "static" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
