package blogpost

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/oklog/ulid/v2"

	"github.com/eringen/blogpost/blog"
	"github.com/eringen/blogpost/state"
)

// Registry keeps one state.Client per browser session, keyed by an opaque
// id stored in the session cookie. Only browsers that have attempted to
// sign in are registered. Clients idle for longer than the TTL are dropped,
// which signs that browser out.
type Registry struct {
	mu         sync.Mutex
	clients    map[string]*registryEntry
	newBackend func() blog.Backend
	ttl        time.Duration
	now        func() time.Time
}

type registryEntry struct {
	client *state.Client
	seen   time.Time
}

// NewRegistry creates a Registry. Expired clients are swept every TTL
// until ctx is done. A zero TTL keeps clients forever.
func NewRegistry(ctx context.Context, newBackend func() blog.Backend, ttl time.Duration) *Registry {
	r := &Registry{
		clients:    make(map[string]*registryEntry),
		newBackend: newBackend,
		ttl:        ttl,
		now:        time.Now,
	}
	if ttl > 0 {
		go r.sweep(ctx)
	}
	return r
}

func (r *Registry) expired(e *registryEntry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.seen) >= r.ttl
}

// Get returns the client for key and marks it used.
func (r *Registry) Get(key string) (*state.Client, bool) {
	if key == "" {
		return nil, false
	}
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.clients[key]
	if !ok {
		return nil, false
	}
	if r.expired(e, now) {
		delete(r.clients, key)
		return nil, false
	}
	e.seen = now
	return e.client, true
}

// NewClient returns a client over a fresh backend without registering it.
func (r *Registry) NewClient() *state.Client {
	return state.NewClient(r.newBackend())
}

// Add registers c and returns its key.
func (r *Registry) Add(c *state.Client) string {
	key := ulid.Make().String()

	r.mu.Lock()
	r.clients[key] = &registryEntry{client: c, seen: r.now()}
	r.mu.Unlock()
	return key
}

// Remove forgets the client for key.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	delete(r.clients, key)
	r.mu.Unlock()
}

// Len returns the number of live clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

func (r *Registry) sweep(ctx context.Context) {
	ticker := time.NewTicker(r.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		now := r.now()
		r.mu.Lock()
		dropped := 0
		for key, e := range r.clients {
			if r.expired(e, now) {
				delete(r.clients, key)
				dropped++
			}
		}
		r.mu.Unlock()
		if dropped > 0 {
			glog.V(1).Infof("[registry] dropped %d idle clients", dropped)
		}
	}
}
