package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderchen5966/weathermix/internal/domain/movie"
	"github.com/alexanderchen5966/weathermix/internal/domain/music"
	"github.com/alexanderchen5966/weathermix/internal/domain/weather"
	"github.com/alexanderchen5966/weathermix/internal/infra/config"
)

func TestRouter_WeatherSuccess(t *testing.T) {
	snapshot := weather.Snapshot{
		CityName:    "臺北市",
		Description: "晴時多雲",
		DisplayText: "臺北市 7/1 早晨到中午是：晴時多雲，降雨機率10%喔！",
		Category:    weather.CategoryClear,
	}
	deps := testDeps()
	deps.weather.currentFn = func(ctx context.Context, city string) weather.Snapshot {
		require.Equal(t, "台北", city)
		return snapshot
	}

	recorder := performRequest("/api/weather?city=台北", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got weather.Snapshot
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, snapshot, got)
}

func TestRouter_WeatherMissingCity(t *testing.T) {
	recorder := performRequest("/api/weather", newRouterUnderTest(t, testDeps()))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_WeatherDegradedStillOK(t *testing.T) {
	deps := testDeps()
	deps.weather.currentFn = func(ctx context.Context, city string) weather.Snapshot {
		return weather.Snapshot{CityName: city, DisplayText: "無法取得天氣資料：網路或API錯誤"}
	}

	recorder := performRequest("/api/weather?city=臺北市", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), "無法取得天氣資料")
}

func TestRouter_RecommendMusic(t *testing.T) {
	deps := testDeps()
	deps.music.matchFn = func(ctx context.Context, desc string) music.Recommendation {
		require.Equal(t, "晴時多雲", desc)
		return music.Recommendation{
			URL:         "https://youtu.be/abc123",
			Description: "晴天歌單",
			Message:     "已為您推薦與「晴時多雲」相關的音樂：晴天歌單",
		}
	}

	recorder := performRequest("/api/recommend_music?desc=晴時多雲", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got music.Recommendation
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "https://youtu.be/abc123", got.URL)
}

func TestRouter_RecommendMusicMissingDesc(t *testing.T) {
	recorder := performRequest("/api/recommend_music", newRouterUnderTest(t, testDeps()))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_RandomMusic(t *testing.T) {
	deps := testDeps()
	deps.music.randomFn = func(ctx context.Context) music.Recommendation {
		return music.Recommendation{URL: "https://youtu.be/xyz", Message: "已為您隨機推薦了一首音樂：雨夜"}
	}

	recorder := performRequest("/api/random_music", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), "https://youtu.be/xyz")
}

func TestRouter_RandomMovie(t *testing.T) {
	deps := testDeps()
	deps.movie.randomFn = func(ctx context.Context) movie.Recommendation {
		return movie.Recommendation{
			PosterURL:  "/static/movie/Inception.jpg",
			MovieTitle: "Inception",
			Message:    "為您推薦電影：Inception",
		}
	}

	recorder := performRequest("/api/random_movie", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got movie.Recommendation
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "Inception", got.MovieTitle)
}

func TestRouter_RequestIDPropagated(t *testing.T) {
	recorder := performRequest("/api/random_movie", newRouterUnderTest(t, testDeps()))
	require.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func performRequest(path string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

type routerDeps struct {
	weather *stubWeather
	music   *stubMusic
	movie   *stubMovie
}

func testDeps() routerDeps {
	return routerDeps{weather: &stubWeather{}, music: &stubMusic{}, movie: &stubMovie{}}
}

func newRouterUnderTest(t *testing.T, deps routerDeps) *http.Server {
	t.Helper()
	handler := NewHandler(deps.weather, deps.music, deps.movie, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		Static: config.StaticConfig{URLPrefix: "/static"},
	}
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubWeather struct {
	currentFn func(ctx context.Context, city string) weather.Snapshot
}

func (s *stubWeather) Current(ctx context.Context, city string) weather.Snapshot {
	if s.currentFn != nil {
		return s.currentFn(ctx, city)
	}
	return weather.Snapshot{}
}

type stubMusic struct {
	matchFn  func(ctx context.Context, desc string) music.Recommendation
	randomFn func(ctx context.Context) music.Recommendation
}

func (s *stubMusic) Load(ctx context.Context) error { return nil }

func (s *stubMusic) Match(ctx context.Context, desc string) music.Recommendation {
	if s.matchFn != nil {
		return s.matchFn(ctx, desc)
	}
	return music.Recommendation{}
}

func (s *stubMusic) Random(ctx context.Context) music.Recommendation {
	if s.randomFn != nil {
		return s.randomFn(ctx)
	}
	return music.Recommendation{}
}

type stubMovie struct {
	randomFn func(ctx context.Context) movie.Recommendation
}

func (s *stubMovie) Load(ctx context.Context) error { return nil }

func (s *stubMovie) Random(ctx context.Context) movie.Recommendation {
	if s.randomFn != nil {
		return s.randomFn(ctx)
	}
	return movie.Recommendation{}
}
