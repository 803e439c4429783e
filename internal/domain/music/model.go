package music

// Video is one entry of the recommendation catalog.
type Video struct {
	URL         string   `json:"url"`
	Description string   `json:"description"`
	WeatherTags []string `json:"matched_weather_descriptions"`
	Played      bool     `json:"played"`
}

// Recommendation is serialized back to API consumers. URL and Description
// stay empty when no video could be served; Message always explains the
// outcome.
type Recommendation struct {
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	Message     string `json:"message"`
}

// Config wires runtime knobs for the music domain.
type Config struct {
	MatchThreshold int
}
