package music

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/alexanderchen5966/weathermix/internal/domain/pool"
)

// Catalog supplies the full video universe.
type Catalog interface {
	Videos(ctx context.Context) ([]Video, error)
}

// Service recommends videos matched to a weather description or picked at
// random, each video served at most once per cycle.
type Service interface {
	Load(ctx context.Context) error
	Match(ctx context.Context, weatherDesc string) Recommendation
	Random(ctx context.Context) Recommendation
}

const emptyCatalogMessage = "音樂清單尚未初始化或為空。"

type service struct {
	cfg     Config
	catalog Catalog
	pool    *pool.Pool
	logger  *slog.Logger

	loadMu sync.Mutex
}

// NewService wires up the music recommendation domain.
func NewService(cfg Config, catalog Catalog, p *pool.Pool, logger *slog.Logger) Service {
	if cfg.MatchThreshold <= 0 {
		cfg.MatchThreshold = 70
	}
	if p == nil {
		p = pool.New()
	}
	return &service{
		cfg:     cfg,
		catalog: catalog,
		pool:    p,
		logger:  logger.With("component", "music.service"),
	}
}

// Load populates the pool from the catalog. Repeated calls are no-ops once
// the universe is non-empty.
func (s *service) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.pool.Len() > 0 {
		return nil
	}

	videos, err := s.catalog.Videos(ctx)
	if err != nil {
		return fmt.Errorf("load video catalog: %w", err)
	}
	items := make([]pool.Item, 0, len(videos))
	played := make(map[string]bool, len(videos))
	for _, v := range videos {
		items = append(items, pool.Item{
			ID:    v.URL,
			Title: v.Description,
			URL:   v.URL,
			Tags:  v.WeatherTags,
		})
		if v.Played {
			played[v.URL] = true
		}
	}
	s.pool.LoadWithServed(items, func(item pool.Item) bool { return played[item.ID] })
	s.logger.Info("video catalog loaded", "videos", len(items))
	return nil
}

// Match serves the not-yet-played video whose weather tags score highest
// against the description, provided the score clears the threshold.
func (s *service) Match(ctx context.Context, weatherDesc string) Recommendation {
	if !s.ensureLoaded(ctx) {
		return Recommendation{Message: emptyCatalogMessage}
	}

	item, ok := s.pool.ServeByMatch(weatherDesc, matchScore, s.cfg.MatchThreshold)
	if !ok {
		return Recommendation{
			Message: fmt.Sprintf("找不到與「%s」相關的未播放音樂，或所有音樂已播放完畢。", weatherDesc),
		}
	}
	return Recommendation{
		URL:         item.URL,
		Description: item.Title,
		Message:     fmt.Sprintf("已為您推薦與「%s」相關的音樂：%s", weatherDesc, item.Title),
	}
}

// Random serves one not-yet-played video uniformly at random.
func (s *service) Random(ctx context.Context) Recommendation {
	if !s.ensureLoaded(ctx) {
		return Recommendation{Message: emptyCatalogMessage}
	}

	item, ok := s.pool.ServeRandom()
	if !ok {
		return Recommendation{Message: emptyCatalogMessage}
	}
	return Recommendation{
		URL:         item.URL,
		Description: item.Title,
		Message:     fmt.Sprintf("已為您隨機推薦了一首音樂：%s", item.Title),
	}
}

func (s *service) ensureLoaded(ctx context.Context) bool {
	if s.pool.Len() > 0 {
		return true
	}
	if err := s.Load(ctx); err != nil {
		s.logger.Error("lazy catalog load failed", "error", err)
		return false
	}
	return s.pool.Len() > 0
}

// matchScore rates an item as the best partial-ratio over its weather
// tags. Partial matching lets a bare "晴" query hit a "晴時多雲" tag.
func matchScore(query string, item pool.Item) int {
	best := 0
	lowered := strings.ToLower(query)
	for _, tag := range item.Tags {
		if s := fuzzy.PartialRatio(lowered, strings.ToLower(tag)); s > best {
			best = s
		}
	}
	return best
}
