package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/alexanderchen5966/weathermix/internal/domain/movie"
	"github.com/alexanderchen5966/weathermix/internal/domain/music"
	"github.com/alexanderchen5966/weathermix/internal/domain/pool"
	"github.com/alexanderchen5966/weathermix/internal/domain/weather"
	"github.com/alexanderchen5966/weathermix/internal/infra/catalog"
	"github.com/alexanderchen5966/weathermix/internal/infra/config"
	"github.com/alexanderchen5966/weathermix/internal/infra/posters"
	"github.com/alexanderchen5966/weathermix/internal/infra/snapstore"
	"github.com/alexanderchen5966/weathermix/internal/infra/weather/cwa"
)

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{
		CacheTTL:       cfg.Weather.CacheTTL,
		RegionListTTL:  cfg.Weather.RegionListTTL,
		MatchThreshold: cfg.Weather.MatchThreshold,
	}
}

func provideCWAClient(cfg *config.Config) *cwa.Client {
	return cwa.NewClient(cfg.CWA.BaseURL, cfg.CWA.APIKey)
}

func provideSnapshotStore(cfg *config.Config, logger *slog.Logger) weather.SnapshotStore {
	if cfg.Weather.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return snapstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return snapstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey snapshot store enabled", "addr", cfg.Weather.Redis.Addr)
			return snapstore.NewValkeyStore(client, "weathermix")
		}
	}
	return snapstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Weather.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Weather.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Weather.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideMusicCatalog(cfg *config.Config, logger *slog.Logger) music.Catalog {
	fallback := catalog.NewFileRepository(cfg.Music.CatalogPath)
	dsn := strings.TrimSpace(cfg.Music.Postgres.DSN)
	if dsn == "" {
		logger.Info("music postgres dsn not set, using file catalog", "path", cfg.Music.CatalogPath)
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using file catalog", "error", err)
		return fallback
	}
	if cfg.Music.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Music.Postgres.MaxConns
	}
	if cfg.Music.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Music.Postgres.MinConns
	}
	pgPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using file catalog", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pgPool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using file catalog", "error", err)
		pgPool.Close()
		return fallback
	}
	logger.Info("postgres video catalog enabled")
	return catalog.NewPostgresRepository(pgPool)
}

func providePosterSource(cfg *config.Config, logger *slog.Logger) movie.PosterSource {
	fallback := posters.NewDirSource(cfg.Movies.PosterDir)
	if !cfg.Movies.Minio.Enabled {
		return fallback
	}
	source, err := posters.NewMinioSource(
		cfg.Movies.Minio.Endpoint,
		cfg.Movies.Minio.AccessKey,
		cfg.Movies.Minio.SecretKey,
		cfg.Movies.Minio.Bucket,
		cfg.Movies.Minio.Prefix,
		logger,
	)
	if err != nil {
		logger.Error("failed to create object storage client, using poster directory", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := source.Ping(ctx); err != nil {
		logger.Error("poster bucket check failed, using poster directory", "error", err)
		return fallback
	}
	logger.Info("object storage poster source enabled", "bucket", cfg.Movies.Minio.Bucket)
	return source
}

// The music and movie pools are private to their services, so the services
// are assembled here instead of exposing two *pool.Pool bindings to Wire.
func provideMusicService(cfg *config.Config, videoCatalog music.Catalog, logger *slog.Logger) music.Service {
	musicCfg := music.Config{MatchThreshold: cfg.Music.MatchThreshold}
	return music.NewService(musicCfg, videoCatalog, pool.New(), logger)
}

func provideMovieService(cfg *config.Config, source movie.PosterSource, logger *slog.Logger) movie.Service {
	movieCfg := movie.Config{StaticURLPrefix: cfg.Static.URLPrefix}
	return movie.NewService(movieCfg, source, pool.New(), logger)
}
