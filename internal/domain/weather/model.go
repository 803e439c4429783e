package weather

import "time"

// Weather categories used by the frontend to pick an animation.
const (
	CategoryClear    = "晴"
	CategoryRain     = "雨"
	CategoryOvercast = "陰"
	CategoryCloudy   = "多雲"
	CategorySnow     = "雪"
)

// Snapshot is the response returned for a weather lookup. It is also the
// vehicle for every degraded outcome: invalid input, unknown city and
// upstream failures all produce a message-bearing snapshot instead of an
// error.
type Snapshot struct {
	CityName    string `json:"city_name"`
	Description string `json:"weather_description"`
	DisplayText string `json:"display_text"`
	Category    string `json:"current_weather_type"`
}

// Forecast is a normalized slice of upstream forecast time slots.
type Forecast struct {
	Slots []ForecastSlot
}

// ForecastSlot carries one forecast window. RainChance is the raw PoP
// value ("30") or empty when the upstream payload had none.
type ForecastSlot struct {
	StartTime   time.Time
	EndTime     time.Time
	Description string
	RainChance  string
}

// Config wires runtime knobs for the weather domain.
type Config struct {
	CacheTTL       time.Duration
	RegionListTTL  time.Duration
	MatchThreshold int
}
