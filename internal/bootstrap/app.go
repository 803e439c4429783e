package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderchen5966/weathermix/internal/domain/movie"
	"github.com/alexanderchen5966/weathermix/internal/domain/music"
	"github.com/alexanderchen5966/weathermix/internal/infra/config"
)

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	server   *http.Server
	musicSvc music.Service
	movieSvc movie.Service
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, musicSvc music.Service, movieSvc movie.Service) *App {
	return &App{
		cfg:      cfg,
		logger:   logger.With("component", "bootstrap"),
		server:   server,
		musicSvc: musicSvc,
		movieSvc: movieSvc,
	}
}

// Run warms the recommendation pools, starts the HTTP server and blocks
// until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.warmPools(ctx)

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// warmPools preloads the music and movie pools so the first request does
// not pay the catalog read. A failed preload is logged and retried lazily
// on first use.
func (a *App) warmPools(ctx context.Context) {
	warmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.musicSvc.Load(warmCtx); err != nil {
		a.logger.Warn("music catalog preload failed", "error", err)
	}
	if err := a.movieSvc.Load(warmCtx); err != nil {
		a.logger.Warn("movie poster preload failed", "error", err)
	}
}
