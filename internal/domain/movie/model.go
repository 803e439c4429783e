package movie

// Recommendation is serialized back to API consumers. PosterURL and
// MovieTitle stay empty when no poster could be served.
type Recommendation struct {
	PosterURL  string `json:"poster_url,omitempty"`
	MovieTitle string `json:"movie_title,omitempty"`
	Message    string `json:"message"`
}

// Config wires runtime knobs for the movie domain.
type Config struct {
	// StaticURLPrefix is where poster assets are mounted, e.g. "/static".
	StaticURLPrefix string
}
