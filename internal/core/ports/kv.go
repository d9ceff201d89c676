package ports

import "context"

// KeyValueStore is the flat client-side store a session lives in. Writes are
// last-write-wins. Get returns domain.ErrNotFound for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// SessionStores hands out the key/value store of a session id.
type SessionStores interface {
	For(sessionID string) KeyValueStore
}
