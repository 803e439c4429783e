package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alexanderchen5966/weathermix/internal/domain/movie"
	"github.com/alexanderchen5966/weathermix/internal/domain/music"
	"github.com/alexanderchen5966/weathermix/internal/domain/weather"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	weatherSvc weather.Service
	musicSvc   music.Service
	movieSvc   movie.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(weatherSvc weather.Service, musicSvc music.Service, movieSvc movie.Service, logger *slog.Logger) *Handler {
	return &Handler{
		weatherSvc: weatherSvc,
		musicSvc:   musicSvc,
		movieSvc:   movieSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Weather returns the current forecast snapshot for a Taiwanese region.
// Upstream or lookup failures degrade into the snapshot's display text,
// so once the city parameter is present this endpoint always answers 200.
func (h *Handler) Weather(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "query parameter city is required", nil))
		return
	}

	snapshot := h.weatherSvc.Current(c.Request.Context(), city)
	c.JSON(http.StatusOK, snapshot)
}

// RecommendMusic returns an unplayed video matched to a weather description.
func (h *Handler) RecommendMusic(c *gin.Context) {
	desc := strings.TrimSpace(c.Query("desc"))
	if desc == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "query parameter desc is required", nil))
		return
	}

	c.JSON(http.StatusOK, h.musicSvc.Match(c.Request.Context(), desc))
}

// RandomMusic returns a random unplayed video from the catalog.
func (h *Handler) RandomMusic(c *gin.Context) {
	c.JSON(http.StatusOK, h.musicSvc.Random(c.Request.Context()))
}

// RandomMovie returns a random not-yet-shown movie poster.
func (h *Handler) RandomMovie(c *gin.Context) {
	c.JSON(http.StatusOK, h.movieSvc.Random(c.Request.Context()))
}
