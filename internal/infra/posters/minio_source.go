package posters

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/alexanderchen5966/weathermix/internal/domain/movie"
)

// MinioSource lists poster objects from an S3-compatible bucket, for
// deployments that keep assets in object storage instead of on disk.
type MinioSource struct {
	client *minio.Client
	bucket string
	prefix string
	logger *slog.Logger
}

// NewMinioSource constructs the source.
func NewMinioSource(endpoint, accessKey, secretKey, bucket, prefix string, logger *slog.Logger) (*MinioSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cleanEndpoint := sanitizeEndpoint(endpoint)
	useSSL := strings.HasPrefix(strings.ToLower(endpoint), "https")
	client, err := minio.New(cleanEndpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init poster object store client: %w", err)
	}
	return &MinioSource{
		client: client,
		bucket: bucket,
		prefix: strings.TrimPrefix(prefix, "/"),
		logger: logger.With("component", "posters.minio"),
	}, nil
}

// Posters implements movie.PosterSource.
func (s *MinioSource) Posters(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list poster bucket %s: %w", s.bucket, obj.Err)
		}
		name := strings.TrimPrefix(strings.TrimPrefix(obj.Key, s.prefix), "/")
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		if isImage(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Ping verifies the bucket is reachable so the provider can fall back to
// the local directory when it is not.
func (s *MinioSource) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("poster bucket %s does not exist", s.bucket)
	}
	return nil
}

var _ movie.PosterSource = (*MinioSource)(nil)

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.IndexByte(raw, '/'); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}
