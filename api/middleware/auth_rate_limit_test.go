package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type stubRateLimiter struct {
	counts map[string]int64
}

func newStubRateLimiter() *stubRateLimiter {
	return &stubRateLimiter{counts: map[string]int64{}}
}

func (s *stubRateLimiter) IncrWithWindow(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.counts[key]++
	return s.counts[key], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func loginRequest(username, ip string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"`+username+`","password":"pw"}`))
	req.RemoteAddr = ip + ":51234"
	return req
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	handler := AuthRateLimit(policy, newStubRateLimiter(), nil)(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequest("alice", "10.0.0.1"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAuthRateLimitBlocksByIP(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, newStubRateLimiter(), nil)(okHandler())

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, loginRequest("alice", "10.0.0.1"))
		if resp.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200 got %d", i+1, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequest("alice", "10.0.0.1"))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", resp.Code)
	}

	// A different client IP is counted separately.
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequest("alice", "10.0.0.2"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for other ip got %d", resp.Code)
	}
}

func TestAuthRateLimitBlocksByUsername(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 2)
	handler := AuthRateLimit(policy, newStubRateLimiter(), nil)(okHandler())

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, loginRequest("alice", "10.0.0.1"))
		if resp.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200 got %d", i+1, resp.Code)
		}
	}

	// The same username from a fresh IP still trips the counter.
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequest("alice", "10.0.0.9"))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequest("bob", "10.0.0.1"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for other username got %d", resp.Code)
	}
}

func TestAuthRateLimitUsernameNormalized(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	handler := AuthRateLimit(policy, newStubRateLimiter(), nil)(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequest("Alice", "10.0.0.1"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequest("alice", "10.0.0.2"))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", resp.Code)
	}
}

func TestAuthRateLimitBodyPreservedForNext(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		seen = string(body)
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthRateLimit(policy, newStubRateLimiter(), nil)(next)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequest("alice", "10.0.0.1"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(seen, `"username":"alice"`) {
		t.Fatalf("expected body replayed to handler, got %q", seen)
	}
}
