package blogpost

import (
	"context"
	"testing"
	"time"

	"github.com/eringen/blogpost/blog"
	"github.com/eringen/blogpost/state"
)

func newTestRegistry(t *testing.T, ttl time.Duration) (*Registry, *time.Time) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	r := NewRegistry(ctx, func() blog.Backend { return nil }, ttl)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	return r, &now
}

func addClient(r *Registry) (string, *state.Client) {
	c := r.NewClient()
	return r.Add(c), c
}

func TestRegistryAddAndGet(t *testing.T) {
	r, _ := newTestRegistry(t, time.Hour)

	key, c := addClient(r)
	if key == "" {
		t.Fatal("expected a key")
	}
	got, ok := r.Get(key)
	if !ok || got != c {
		t.Fatalf("Get(%q) = %p, %v; want %p", key, got, ok, c)
	}
	if _, ok := r.Get(""); ok {
		t.Error("empty key should not resolve")
	}
	if _, ok := r.Get("unknown"); ok {
		t.Error("unknown key should not resolve")
	}
}

func TestRegistryNewClientIsNotRegistered(t *testing.T) {
	r, _ := newTestRegistry(t, time.Hour)
	if r.NewClient() == nil {
		t.Fatal("expected a client")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestRegistryKeysAreDistinct(t *testing.T) {
	r, _ := newTestRegistry(t, time.Hour)
	k1, c1 := addClient(r)
	k2, c2 := addClient(r)
	if k1 == k2 || c1 == c2 {
		t.Fatal("each browser should get its own client")
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
}

func TestRegistryExpiresIdleClients(t *testing.T) {
	r, now := newTestRegistry(t, time.Hour)
	key, _ := addClient(r)

	*now = now.Add(59 * time.Minute)
	if _, ok := r.Get(key); !ok {
		t.Fatal("client should still be live")
	}
	// Get refreshed the idle timer.
	*now = now.Add(59 * time.Minute)
	if _, ok := r.Get(key); !ok {
		t.Fatal("client should still be live after refresh")
	}
	*now = now.Add(time.Hour)
	if _, ok := r.Get(key); ok {
		t.Fatal("idle client should have expired")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestRegistryZeroTTLKeepsClients(t *testing.T) {
	r, now := newTestRegistry(t, 0)
	key, _ := addClient(r)
	*now = now.Add(365 * 24 * time.Hour)
	if _, ok := r.Get(key); !ok {
		t.Fatal("zero TTL should never expire")
	}
}

func TestRegistryRemove(t *testing.T) {
	r, _ := newTestRegistry(t, time.Hour)
	key, _ := addClient(r)
	r.Remove(key)
	if _, ok := r.Get(key); ok {
		t.Fatal("removed client should be gone")
	}
}
