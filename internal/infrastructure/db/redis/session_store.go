package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
)

// SessionStores keeps each session in one hash.
// Key format: session:<session_id>
// Every write refreshes the hash TTL.
type SessionStores struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.SessionStores = (*SessionStores)(nil)

func NewSessionStores(client *redis.Client, ttl time.Duration) *SessionStores {
	return &SessionStores{client: client, ttl: ttl}
}

func (s *SessionStores) For(sessionID string) ports.KeyValueStore {
	return &sessionHash{client: s.client, key: sessionKey(sessionID), ttl: s.ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

type sessionHash struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func (h *sessionHash) Get(ctx context.Context, field string) (string, error) {
	v, err := h.client.HGet(ctx, h.key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session get %s: %w", field, err)
	}
	return v, nil
}

func (h *sessionHash) Set(ctx context.Context, field, value string) error {
	pipe := h.client.TxPipeline()
	pipe.HSet(ctx, h.key, field, value)
	if h.ttl > 0 {
		pipe.Expire(ctx, h.key, h.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session set %s: %w", field, err)
	}
	return nil
}

func (h *sessionHash) Remove(ctx context.Context, field string) error {
	if err := h.client.HDel(ctx, h.key, field).Err(); err != nil {
		return fmt.Errorf("session remove %s: %w", field, err)
	}
	return nil
}

func (h *sessionHash) Clear(ctx context.Context) error {
	if err := h.client.Del(ctx, h.key).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
