package weather

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode"

	apperrors "github.com/alexanderchen5966/weathermix/pkg/errors"
)

// Provider fetches region names and forecasts from the upstream weather
// API.
type Provider interface {
	LocationNames(ctx context.Context) ([]string, error)
	Forecast(ctx context.Context, location string) (Forecast, error)
}

// SnapshotStore caches weather snapshots per canonical city with a TTL.
type SnapshotStore interface {
	Get(ctx context.Context, city string) (Snapshot, bool, error)
	Save(ctx context.Context, city string, snap Snapshot, ttl time.Duration) error
}

// Service answers weather lookups.
type Service interface {
	Current(ctx context.Context, cityInput string) Snapshot
}

// The administrative regions served by the CWA 36-hour forecast, used when
// the upstream region list cannot be fetched.
var defaultRegionNames = []string{
	"臺北市", "新北市", "桃園市", "臺中市", "臺南市", "高雄市", "基隆市", "新竹市", "嘉義市",
	"新竹縣", "苗栗縣", "彰化縣", "南投縣", "雲林縣", "嘉義縣", "屏東縣", "宜蘭縣", "花蓮縣",
	"臺東縣", "澎湖縣", "金門縣", "連江縣",
}

type service struct {
	cfg        Config
	provider   Provider
	store      SnapshotStore
	corrector  *Corrector
	classifier *Classifier
	logger     *slog.Logger
	now        func() time.Time

	regionMu        sync.Mutex
	regionNames     []string
	regionFetchedAt time.Time
}

// NewService wires up the weather lookup domain.
func NewService(cfg Config, provider Provider, store SnapshotStore, logger *slog.Logger) Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.RegionListTTL <= 0 {
		cfg.RegionListTTL = 6 * time.Hour
	}
	return &service{
		cfg:        cfg,
		provider:   provider,
		store:      store,
		corrector:  NewCorrector(cfg.MatchThreshold),
		classifier: NewClassifier(),
		logger:     logger.With("component", "weather.service"),
		now:        time.Now,
	}
}

// Current resolves the city, consults the snapshot cache and falls back to
// a fresh upstream fetch. It never fails outward: every internal failure
// degrades to a snapshot whose display text explains what happened.
func (s *service) Current(ctx context.Context, cityInput string) Snapshot {
	if containsDigit(cityInput) {
		return Snapshot{
			CityName:    cityInput,
			Description: "無效輸入",
			DisplayText: "縣市名稱不能包含數字！",
			Category:    CategoryClear,
		}
	}

	city, ok := s.corrector.Correct(cityInput, s.regions(ctx))
	if !ok {
		return Snapshot{
			CityName:    cityInput,
			Description: "無效輸入",
			DisplayText: fmt.Sprintf("無效或無法識別的縣市: %s", cityInput),
			Category:    CategoryClear,
		}
	}

	if cached, hit, err := s.store.Get(ctx, city); err == nil && hit {
		return cached
	} else if err != nil {
		s.logger.Warn("snapshot cache read failed", "city", city, "error", err)
	}

	snap, cacheable := s.fetchSnapshot(ctx, city)
	if cacheable {
		if err := s.store.Save(ctx, city, snap, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("snapshot cache write failed", "city", city, "error", err)
		}
	}
	return snap
}

// fetchSnapshot builds a fresh snapshot from the upstream forecast. The
// second return reports whether the result may be cached; degraded
// snapshots never are, so the next lookup retries the upstream.
func (s *service) fetchSnapshot(ctx context.Context, city string) (Snapshot, bool) {
	forecast, err := s.provider.Forecast(ctx, city)
	if err != nil {
		s.logger.Error("forecast fetch failed", "city", city, "error", err)
		if apperrors.IsCode(err, "cwa_bad_payload") {
			return Snapshot{
				CityName:    city,
				Description: "N/A",
				DisplayText: "無法取得天氣資料：資料結構異常或無有效預報",
				Category:    CategoryClear,
			}, false
		}
		return Snapshot{
			CityName:    city,
			Description: "N/A",
			DisplayText: fmt.Sprintf("無法取得天氣資料：網路或API錯誤 (%v)", err),
			Category:    CategoryClear,
		}, false
	}
	slot, ok := nearestSlot(forecast.Slots, s.now())
	if !ok {
		s.logger.Error("forecast payload had no usable slots", "city", city)
		return Snapshot{
			CityName:    city,
			Description: "N/A",
			DisplayText: "無法取得天氣資料：資料結構異常或無有效預報",
			Category:    CategoryClear,
		}, false
	}

	pop := "N/A"
	if slot.RainChance != "" {
		pop = slot.RainChance + "%"
	}
	display := fmt.Sprintf("%s %d/%d %s是：%s，降雨機率%s喔！",
		city, int(slot.StartTime.Month()), slot.StartTime.Day(),
		timeOfDay(slot.StartTime.Hour()), slot.Description, pop)

	return Snapshot{
		CityName:    city,
		Description: slot.Description,
		DisplayText: display,
		Category:    s.classifier.Classify(slot.Description),
	}, true
}

// regions returns the canonical region names, refreshing the cached list
// when its TTL elapsed. A refresh failure keeps the last good list, and
// the built-in default set covers the very first failure.
func (s *service) regions(ctx context.Context) []string {
	s.regionMu.Lock()
	defer s.regionMu.Unlock()

	if len(s.regionNames) > 0 && s.now().Sub(s.regionFetchedAt) < s.cfg.RegionListTTL {
		return s.regionNames
	}

	names, err := s.provider.LocationNames(ctx)
	if err != nil || len(names) == 0 {
		if err != nil {
			s.logger.Warn("region list fetch failed", "error", err)
		}
		if len(s.regionNames) == 0 {
			s.regionNames = defaultRegionNames
			s.regionFetchedAt = s.now()
		}
		return s.regionNames
	}

	s.regionNames = names
	s.regionFetchedAt = s.now()
	return s.regionNames
}

func nearestSlot(slots []ForecastSlot, now time.Time) (ForecastSlot, bool) {
	if len(slots) == 0 {
		return ForecastSlot{}, false
	}
	best := slots[0]
	bestDiff := absDuration(now.Sub(best.StartTime))
	for _, slot := range slots[1:] {
		if diff := absDuration(now.Sub(slot.StartTime)); diff < bestDiff {
			bestDiff = diff
			best = slot
		}
	}
	return best, true
}

func timeOfDay(hour int) string {
	switch {
	case hour < 6:
		return "午夜到早晨"
	case hour < 12:
		return "早晨到中午"
	case hour < 18:
		return "中午到傍晚"
	default:
		return "傍晚到午夜"
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
