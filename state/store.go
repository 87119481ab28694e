package state

import (
	"sync"

	"github.com/eringen/blogpost/blog"
)

// SessionStore owns a SessionState. Each Dispatch is applied atomically.
type SessionStore struct {
	mu    sync.RWMutex
	state SessionState
}

// NewSessionStore returns a store in the initial state: no user, idle.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Dispatch applies ev and returns the resulting state.
func (s *SessionStore) Dispatch(ev Event) SessionState {
	s.mu.Lock()
	s.state = ReduceSession(s.state, ev)
	out := s.state.clone()
	s.mu.Unlock()
	return out
}

// Snapshot returns a copy of the current state.
func (s *SessionStore) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s SessionState) clone() SessionState {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// ContentStore owns a ContentState. Each Dispatch is applied atomically.
type ContentStore struct {
	mu    sync.RWMutex
	state ContentState
}

// NewContentStore returns a store with no posts, idle.
func NewContentStore() *ContentStore {
	return &ContentStore{state: ContentState{Posts: []blog.Post{}}}
}

// Dispatch applies ev and returns the resulting state.
func (s *ContentStore) Dispatch(ev Event) ContentState {
	s.mu.Lock()
	s.state = ReduceContent(s.state, ev)
	out := s.state.clone()
	s.mu.Unlock()
	return out
}

// Snapshot returns a copy of the current state.
func (s *ContentStore) Snapshot() ContentState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s ContentState) clone() ContentState {
	s.Posts = append(make([]blog.Post, 0, len(s.Posts)), s.Posts...)
	return s
}
