package movie

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/alexanderchen5966/weathermix/internal/domain/pool"
)

// PosterSource lists the available poster filenames.
type PosterSource interface {
	Posters(ctx context.Context) ([]string, error)
}

// Service recommends a random poster that has not been shown in the
// current cycle.
type Service interface {
	Load(ctx context.Context) error
	Random(ctx context.Context) Recommendation
}

const emptyPostersMessage = "電影海報清單尚未初始化或為空。"

type service struct {
	cfg    Config
	source PosterSource
	pool   *pool.Pool
	logger *slog.Logger

	loadMu sync.Mutex
}

// NewService wires up the movie poster recommendation domain.
func NewService(cfg Config, source PosterSource, p *pool.Pool, logger *slog.Logger) Service {
	if cfg.StaticURLPrefix == "" {
		cfg.StaticURLPrefix = "/static"
	}
	if p == nil {
		p = pool.New()
	}
	return &service{
		cfg:    cfg,
		source: source,
		pool:   p,
		logger: logger.With("component", "movie.service"),
	}
}

// Load scans the poster source once and fills the pool.
func (s *service) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.pool.Len() > 0 {
		return nil
	}

	filenames, err := s.source.Posters(ctx)
	if err != nil {
		return fmt.Errorf("load poster list: %w", err)
	}
	items := make([]pool.Item, 0, len(filenames))
	for _, name := range filenames {
		items = append(items, pool.Item{
			ID:    name,
			Title: titleFromFilename(name),
			URL:   s.posterURL(name),
		})
	}
	s.pool.Load(items)
	s.logger.Info("poster list loaded", "posters", len(items))
	return nil
}

// Random serves one not-yet-shown poster uniformly at random.
func (s *service) Random(ctx context.Context) Recommendation {
	if s.pool.Len() == 0 {
		if err := s.Load(ctx); err != nil {
			s.logger.Error("lazy poster load failed", "error", err)
			return Recommendation{Message: emptyPostersMessage}
		}
	}

	item, ok := s.pool.ServeRandom()
	if !ok {
		return Recommendation{Message: emptyPostersMessage}
	}
	return Recommendation{
		PosterURL:  item.URL,
		MovieTitle: item.Title,
		Message:    fmt.Sprintf("為您推薦電影：%s", item.Title),
	}
}

// titleFromFilename strips the extension and turns separators into spaces:
// "The_Dark-Knight.jpg" becomes "The Dark Knight".
func titleFromFilename(name string) string {
	title := strings.TrimSuffix(name, path.Ext(name))
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")
	return title
}

func (s *service) posterURL(name string) string {
	return fmt.Sprintf("%s/movie/%s", strings.TrimRight(s.cfg.StaticURLPrefix, "/"), url.PathEscape(name))
}
