package snapstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/alexanderchen5966/weathermix/internal/domain/weather"
)

// ValkeyStore persists weather snapshots in a Valkey-compatible database,
// so the freshness window survives process restarts.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "weather"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, city string) (weather.Snapshot, bool, error) {
	cmd := s.client.B().Get().Key(s.key(city)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return weather.Snapshot{}, false, nil
		}
		return weather.Snapshot{}, false, err
	}
	var snap weather.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return weather.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, city string, snap weather.Snapshot, ttl time.Duration) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key(city)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(city string) string {
	return fmt.Sprintf("%s:snapshot:%s", s.prefix, city)
}

var _ weather.SnapshotStore = (*ValkeyStore)(nil)
