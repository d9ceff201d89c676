package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medicore/hospital-portal/internal/core/ports"
)

// WindowStore keeps rate-limit hit timestamps as a JSON array of unix
// milliseconds.
// Key format: ratelimit:<identifier>
type WindowStore struct {
	client *redis.Client
}

var _ ports.WindowStore = (*WindowStore)(nil)

func NewWindowStore(client *redis.Client) *WindowStore {
	return &WindowStore{client: client}
}

func (w *WindowStore) Get(ctx context.Context, key string) ([]time.Time, error) {
	raw, err := w.client.Get(ctx, w.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("window get: %w", err)
	}
	return decodeHits(raw)
}

func (w *WindowStore) Set(ctx context.Context, key string, hits []time.Time, ttl time.Duration) error {
	raw, err := encodeHits(hits)
	if err != nil {
		return err
	}
	if err := w.client.Set(ctx, w.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("window set: %w", err)
	}
	return nil
}

func (w *WindowStore) key(id string) string {
	return "ratelimit:" + id
}

func encodeHits(hits []time.Time) ([]byte, error) {
	ms := make([]int64, len(hits))
	for i, t := range hits {
		ms[i] = t.UnixMilli()
	}
	raw, err := json.Marshal(ms)
	if err != nil {
		return nil, fmt.Errorf("encode hits: %w", err)
	}
	return raw, nil
}

func decodeHits(raw []byte) ([]time.Time, error) {
	var ms []int64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return nil, fmt.Errorf("decode hits: %w", err)
	}
	hits := make([]time.Time, len(ms))
	for i, m := range ms {
		hits[i] = time.UnixMilli(m)
	}
	return hits, nil
}
