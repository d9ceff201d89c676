package ports

import (
	"context"
	"time"
)

// WindowStore keeps the request timestamps of each rate-limit identifier.
// Entries expire after the ttl given to Set; a missing key reads as empty.
type WindowStore interface {
	Get(ctx context.Context, key string) ([]time.Time, error)
	Set(ctx context.Context, key string, hits []time.Time, ttl time.Duration) error
}
