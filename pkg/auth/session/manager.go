package session

import (
	"context"
	"fmt"
	"time"

	"github.com/FamilyDinnerTime/backend/pkg/auth"
	"github.com/FamilyDinnerTime/backend/pkg/redis"
)

// Store is the key/value surface the manager needs from redis.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, keys ...string) error
}

// Manager tracks live sessions in redis. An access session key exists for
// the lifetime of the access token, and a refresh key (by JTI) for the
// lifetime of the refresh token. Logout deletes both, which invalidates
// tokens before their JWT expiry.
type Manager struct {
	store      Store
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(store Store, accessTTL, refreshTTL time.Duration) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("session TTLs must be positive")
	}
	return &Manager{store: store, accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

// Start records the sessions backing a freshly minted token pair.
func (m *Manager) Start(ctx context.Context, userID string, pair *auth.TokenPair) error {
	if pair == nil {
		return fmt.Errorf("token pair is required")
	}
	accessKey := redis.AccessSessionKey(userID, pair.AccessID)
	if err := m.store.Set(ctx, accessKey, "1", m.accessTTL); err != nil {
		return fmt.Errorf("storing access session: %w", err)
	}
	refreshKey := redis.RefreshSessionKey(pair.RefreshJTI)
	refreshValue := fmt.Sprintf("%s:%s", userID, pair.AccessID)
	if err := m.store.Set(ctx, refreshKey, refreshValue, m.refreshTTL); err != nil {
		return fmt.Errorf("storing refresh session: %w", err)
	}
	return nil
}

// HasAccessSession reports whether the access token's session is still live.
func (m *Manager) HasAccessSession(ctx context.Context, userID, accessID string) (bool, error) {
	_, ok, err := m.store.Get(ctx, redis.AccessSessionKey(userID, accessID))
	if err != nil {
		return false, fmt.Errorf("checking access session: %w", err)
	}
	return ok, nil
}

// HasRefreshSession reports whether the refresh token's JTI is still live.
func (m *Manager) HasRefreshSession(ctx context.Context, jti string) (bool, error) {
	_, ok, err := m.store.Get(ctx, redis.RefreshSessionKey(jti))
	if err != nil {
		return false, fmt.Errorf("checking refresh session: %w", err)
	}
	return ok, nil
}

// Rotate retires the old session pair and records the new one. The old
// refresh JTI is deleted first so a replayed token cannot rotate twice.
func (m *Manager) Rotate(ctx context.Context, userID, oldAccessID, oldJTI string, next *auth.TokenPair) error {
	if err := m.Revoke(ctx, userID, oldAccessID, oldJTI); err != nil {
		return err
	}
	return m.Start(ctx, userID, next)
}

// Revoke deletes both session keys for a token pair.
func (m *Manager) Revoke(ctx context.Context, userID, accessID, jti string) error {
	keys := []string{
		redis.AccessSessionKey(userID, accessID),
		redis.RefreshSessionKey(jti),
	}
	if err := m.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	return nil
}
