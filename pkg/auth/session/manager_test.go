package session

import (
	"context"
	"testing"
	"time"

	"github.com/FamilyDinnerTime/backend/pkg/auth"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (s *memoryStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.values[key] = value
	return nil
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func testPair(accessID, jti string) *auth.TokenPair {
	return &auth.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		AccessID:     accessID,
		RefreshJTI:   jti,
	}
}

func TestNewManagerValidation(t *testing.T) {
	if _, err := NewManager(nil, time.Minute, time.Hour); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := NewManager(newMemoryStore(), 0, time.Hour); err == nil {
		t.Fatal("expected error for zero access TTL")
	}
}

func TestStartAndLookup(t *testing.T) {
	store := newMemoryStore()
	mgr, err := NewManager(store, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	ctx := context.Background()
	if err := mgr.Start(ctx, "user-1", testPair("acc-1", "jti-1")); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	ok, err := mgr.HasAccessSession(ctx, "user-1", "acc-1")
	if err != nil || !ok {
		t.Fatalf("expected live access session, ok=%v err=%v", ok, err)
	}
	ok, err = mgr.HasRefreshSession(ctx, "jti-1")
	if err != nil || !ok {
		t.Fatalf("expected live refresh session, ok=%v err=%v", ok, err)
	}
	ok, err = mgr.HasAccessSession(ctx, "user-1", "acc-other")
	if err != nil || ok {
		t.Fatalf("expected no session for unknown access id, ok=%v err=%v", ok, err)
	}
}

func TestRotateRetiresOldSession(t *testing.T) {
	store := newMemoryStore()
	mgr, err := NewManager(store, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	ctx := context.Background()
	if err := mgr.Start(ctx, "user-1", testPair("acc-1", "jti-1")); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := mgr.Rotate(ctx, "user-1", "acc-1", "jti-1", testPair("acc-2", "jti-2")); err != nil {
		t.Fatalf("Rotate returned error: %v", err)
	}

	if ok, _ := mgr.HasAccessSession(ctx, "user-1", "acc-1"); ok {
		t.Fatal("old access session should be revoked after rotate")
	}
	if ok, _ := mgr.HasRefreshSession(ctx, "jti-1"); ok {
		t.Fatal("old refresh session should be revoked after rotate")
	}
	if ok, _ := mgr.HasAccessSession(ctx, "user-1", "acc-2"); !ok {
		t.Fatal("new access session should be live after rotate")
	}
}

func TestRevoke(t *testing.T) {
	store := newMemoryStore()
	mgr, err := NewManager(store, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	ctx := context.Background()
	if err := mgr.Start(ctx, "user-1", testPair("acc-1", "jti-1")); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := mgr.Revoke(ctx, "user-1", "acc-1", "jti-1"); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if len(store.values) != 0 {
		t.Fatalf("expected empty store after revoke, got %v", store.values)
	}
}
