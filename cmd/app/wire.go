//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/alexanderchen5966/weathermix/internal/bootstrap"
	"github.com/alexanderchen5966/weathermix/internal/domain/weather"
	"github.com/alexanderchen5966/weathermix/internal/infra/config"
	"github.com/alexanderchen5966/weathermix/internal/infra/weather/cwa"
	httpiface "github.com/alexanderchen5966/weathermix/internal/interface/http"
	"github.com/alexanderchen5966/weathermix/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideWeatherConfig,
		provideCWAClient,
		provideSnapshotStore,
		provideMusicCatalog,
		providePosterSource,
		provideMusicService,
		provideMovieService,
		weather.NewService,
		wire.Bind(new(weather.Provider), new(*cwa.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
