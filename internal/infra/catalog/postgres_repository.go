package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexanderchen5966/weathermix/internal/domain/music"
)

// PostgresRepository loads the video catalog from Postgres using pgx. The
// expected schema:
//
//	CREATE TABLE videos (
//	    url          TEXT PRIMARY KEY,
//	    description  TEXT NOT NULL,
//	    weather_tags TEXT[] NOT NULL DEFAULT '{}',
//	    played       BOOLEAN NOT NULL DEFAULT false
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Videos implements music.Catalog.
func (r *PostgresRepository) Videos(ctx context.Context) ([]music.Video, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT url, description, weather_tags, played
		FROM videos
		ORDER BY url
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []music.Video
	for rows.Next() {
		var v music.Video
		if err := rows.Scan(&v.URL, &v.Description, &v.WeatherTags, &v.Played); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

var _ music.Catalog = (*PostgresRepository)(nil)
