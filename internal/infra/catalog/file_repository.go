// Package catalog supplies the video universe for the music recommender.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderchen5966/weathermix/internal/domain/music"
)

// FileRepository reads the video catalog from a JSON file.
type FileRepository struct {
	path string
}

// NewFileRepository constructs the repository.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Videos implements music.Catalog.
func (r *FileRepository) Videos(_ context.Context) ([]music.Video, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read video catalog %s: %w", r.path, err)
	}
	var videos []music.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, fmt.Errorf("parse video catalog %s: %w", r.path, err)
	}
	return videos, nil
}

var _ music.Catalog = (*FileRepository)(nil)
