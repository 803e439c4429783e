package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	CWA     CWAConfig     `yaml:"cwa"`
	Weather WeatherConfig `yaml:"weather"`
	Music   MusicConfig   `yaml:"music"`
	Movies  MoviesConfig  `yaml:"movies"`
	Static  StaticConfig  `yaml:"static"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// CWAConfig contains Central Weather Administration API settings.
type CWAConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
}

// WeatherConfig controls the weather lookup domain.
type WeatherConfig struct {
	CacheTTL       time.Duration `yaml:"cacheTtl"`
	RegionListTTL  time.Duration `yaml:"regionListTtl"`
	MatchThreshold int           `yaml:"matchThreshold"`
	Redis          RedisConfig   `yaml:"redis"`
}

// RedisConfig contains connection information for the snapshot cache.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// MusicConfig controls the music recommendation domain.
type MusicConfig struct {
	CatalogPath    string         `yaml:"catalogPath"`
	MatchThreshold int            `yaml:"matchThreshold"`
	Postgres       PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings for the video catalog.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// MoviesConfig controls the poster recommendation domain.
type MoviesConfig struct {
	PosterDir string      `yaml:"posterDir"`
	Minio     MinioConfig `yaml:"minio"`
}

// MinioConfig contains S3-compatible object storage settings for posters.
type MinioConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
}

// StaticConfig controls the static asset mount used for poster URLs.
type StaticConfig struct {
	URLPrefix string `yaml:"urlPrefix"`
	Dir       string `yaml:"dir"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("CWA_API_KEY"); v != "" {
		cfg.CWA.APIKey = v
	}
	if v := os.Getenv("CWA_BASE_URL"); v != "" {
		cfg.CWA.BaseURL = v
	}
	if v := os.Getenv("WEATHER_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.CacheTTL = parsed
		}
	}
	if v := os.Getenv("WEATHER_REGION_LIST_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.RegionListTTL = parsed
		}
	}
	if v := os.Getenv("WEATHER_MATCH_THRESHOLD"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Weather.MatchThreshold = parsed
		}
	}
	if v := os.Getenv("WEATHER_REDIS_ENABLED"); v != "" {
		cfg.Weather.Redis.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("WEATHER_REDIS_ADDR"); v != "" {
		cfg.Weather.Redis.Addr = v
	}
	if v := os.Getenv("MUSIC_CATALOG_PATH"); v != "" {
		cfg.Music.CatalogPath = v
	}
	if v := os.Getenv("MUSIC_MATCH_THRESHOLD"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Music.MatchThreshold = parsed
		}
	}
	if v := os.Getenv("MUSIC_POSTGRES_DSN"); v != "" {
		cfg.Music.Postgres.DSN = v
	}
	if v := os.Getenv("MUSIC_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Music.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("MUSIC_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Music.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("MOVIE_POSTER_DIR"); v != "" {
		cfg.Movies.PosterDir = v
	}
	if v := os.Getenv("MOVIE_MINIO_ENABLED"); v != "" {
		cfg.Movies.Minio.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("MOVIE_MINIO_ENDPOINT"); v != "" {
		cfg.Movies.Minio.Endpoint = v
	}
	if v := os.Getenv("MOVIE_MINIO_ACCESS_KEY"); v != "" {
		cfg.Movies.Minio.AccessKey = v
	}
	if v := os.Getenv("MOVIE_MINIO_SECRET_KEY"); v != "" {
		cfg.Movies.Minio.SecretKey = v
	}
	if v := os.Getenv("MOVIE_MINIO_BUCKET"); v != "" {
		cfg.Movies.Minio.Bucket = v
	}
	if v := os.Getenv("STATIC_URL_PREFIX"); v != "" {
		cfg.Static.URLPrefix = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.Static.Dir = v
	}
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
			AllowedOrigins: []string{
				"http://localhost:5173",
				"https://alexanderchen5966.github.io",
			},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		CWA: CWAConfig{
			BaseURL: "https://opendata.cwa.gov.tw/api/v1/rest/datastore/F-C0032-001",
		},
		Weather: WeatherConfig{
			CacheTTL:       10 * time.Minute,
			RegionListTTL:  6 * time.Hour,
			MatchThreshold: 75,
		},
		Music: MusicConfig{
			CatalogPath:    "data/yt_videos.json",
			MatchThreshold: 70,
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Movies: MoviesConfig{
			PosterDir: "statics/movie",
		},
		Static: StaticConfig{
			URLPrefix: "/static",
			Dir:       "statics",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.CWA.BaseURL == "" {
		return errors.New("cwa.baseUrl cannot be empty")
	}
	if c.Weather.CacheTTL <= 0 {
		return errors.New("weather.cacheTtl must be positive")
	}
	if c.Weather.RegionListTTL <= 0 {
		return errors.New("weather.regionListTtl must be positive")
	}
	if c.Weather.MatchThreshold <= 0 || c.Weather.MatchThreshold > 100 {
		return errors.New("weather.matchThreshold must be within 1-100")
	}
	if c.Weather.Redis.Enabled && strings.TrimSpace(c.Weather.Redis.Addr) == "" {
		return errors.New("weather.redis.addr cannot be empty when redis cache is enabled")
	}
	if c.Music.CatalogPath == "" && strings.TrimSpace(c.Music.Postgres.DSN) == "" {
		return errors.New("music.catalogPath cannot be empty without a postgres dsn")
	}
	if c.Music.MatchThreshold <= 0 || c.Music.MatchThreshold > 100 {
		return errors.New("music.matchThreshold must be within 1-100")
	}
	if c.Movies.PosterDir == "" && !c.Movies.Minio.Enabled {
		return errors.New("movies.posterDir cannot be empty without object storage")
	}
	if c.Movies.Minio.Enabled {
		if c.Movies.Minio.Endpoint == "" {
			return errors.New("movies.minio.endpoint cannot be empty when enabled")
		}
		if c.Movies.Minio.Bucket == "" {
			return errors.New("movies.minio.bucket cannot be empty when enabled")
		}
	}
	if c.Static.URLPrefix == "" || !strings.HasPrefix(c.Static.URLPrefix, "/") {
		return errors.New("static.urlPrefix must start with /")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
