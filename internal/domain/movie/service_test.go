package movie

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderchen5966/weathermix/internal/domain/pool"
)

type stubSource struct {
	posters []string
	err     error
}

func (s *stubSource) Posters(ctx context.Context) ([]string, error) {
	return s.posters, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(source PosterSource) Service {
	p := pool.NewWithRand(rand.New(rand.NewSource(3)))
	return NewService(Config{StaticURLPrefix: "/static"}, source, p, testLogger())
}

func TestRandomServesEveryPosterOncePerCycle(t *testing.T) {
	svc := newTestService(&stubSource{posters: []string{"a.jpg", "b.png", "c.gif"}})
	require.NoError(t, svc.Load(context.Background()))

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		rec := svc.Random(context.Background())
		require.NotEmpty(t, rec.PosterURL)
		require.False(t, seen[rec.PosterURL])
		seen[rec.PosterURL] = true
	}

	rec := svc.Random(context.Background())
	require.NotEmpty(t, rec.PosterURL, "pool must reset after exhaustion")
	require.Contains(t, rec.Message, "為您推薦電影：")
}

func TestTitleDerivation(t *testing.T) {
	require.Equal(t, "The Dark Knight", titleFromFilename("The_Dark-Knight.jpg"))
	require.Equal(t, "星際效應", titleFromFilename("星際效應.png"))
	require.Equal(t, "no extension", titleFromFilename("no_extension"))
}

func TestPosterURLEncodesFilename(t *testing.T) {
	svc := newTestService(&stubSource{posters: []string{"星際 效應.jpg"}})
	require.NoError(t, svc.Load(context.Background()))

	rec := svc.Random(context.Background())
	require.Equal(t, "/static/movie/%E6%98%9F%E9%9A%9B%20%E6%95%88%E6%87%89.jpg", rec.PosterURL)
	require.Equal(t, "星際 效應", rec.MovieTitle)
}

func TestEmptySourceMessage(t *testing.T) {
	svc := newTestService(&stubSource{})
	rec := svc.Random(context.Background())
	require.Empty(t, rec.PosterURL)
	require.Equal(t, "電影海報清單尚未初始化或為空。", rec.Message)
}

func TestSourceErrorDegradesToMessage(t *testing.T) {
	svc := newTestService(&stubSource{err: errors.New("no such directory")})
	rec := svc.Random(context.Background())
	require.Equal(t, "電影海報清單尚未初始化或為空。", rec.Message)
}
