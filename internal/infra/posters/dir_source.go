// Package posters lists the poster assets served by the movie recommender.
package posters

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alexanderchen5966/weathermix/internal/domain/movie"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// DirSource lists poster image files from a local directory.
type DirSource struct {
	dir string
}

// NewDirSource constructs the source.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Posters implements movie.PosterSource. Filenames are sorted so the pool
// universe has a stable order.
func (s *DirSource) Posters(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("scan poster directory %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if isImage(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func isImage(name string) bool {
	lowered := strings.ToLower(name)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	return false
}

var _ movie.PosterSource = (*DirSource)(nil)
