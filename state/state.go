// Package state mirrors the lifecycle of every backend round trip into two
// stores: the session store (who is signed in) and the content store (the
// fetched posts). State only changes by dispatching an Event through the
// pure reducers in this package; readers take copies via Snapshot.
package state

import "github.com/eringen/blogpost/blog"

// Status is the lifecycle of the most recent operation against a store.
type Status int

const (
	Idle Status = iota
	Loading
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Op names an operation. Session ops touch the session store, the rest
// touch the content store.
type Op string

const (
	OpRegister   Op = "auth/register"
	OpLogin      Op = "auth/login"
	OpLogout     Op = "auth/logout"
	OpClearError Op = "auth/clearError"

	OpFetchPosts Op = "blogs/fetch"
	OpCreatePost Op = "blogs/create"
	OpUpdatePost Op = "blogs/update"
	OpDeletePost Op = "blogs/delete"
)

func (op Op) session() bool {
	switch op {
	case OpRegister, OpLogin, OpLogout, OpClearError:
		return true
	}
	return false
}

// Phase is the point in an operation's round trip an Event reports.
type Phase int

const (
	Requested Phase = iota
	Fulfilled
	Rejected
)

// Event is a single lifecycle transition. Only the payload fields relevant
// to Op and Phase are read.
type Event struct {
	Op    Op
	Phase Phase

	User  *blog.User  // register, login
	Posts []blog.Post // fetch
	Post  blog.Post   // create, update
	ID    int64       // delete
	Err   error       // any rejection
}

// SessionState is the session store's value.
type SessionState struct {
	User   *blog.User
	Status Status
	Err    error
}

// SignedIn reports whether an identity with an id is present.
func (s SessionState) SignedIn() bool {
	return s.User != nil && s.User.ID != ""
}

// UserID returns the signed-in user's id, or "" without a session.
func (s SessionState) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}

// ContentState is the content store's value. Posts keep the backend's
// newest-first order.
type ContentState struct {
	Posts  []blog.Post
	Status Status
	Err    error
}

// Visible applies VisiblePostsFor to the held posts.
func (s ContentState) Visible(userID string, scope Scope) []blog.Post {
	return VisiblePostsFor(s.Posts, userID, scope)
}

var errUnknown = &blog.BackendError{Message: "unknown error"}

// ReduceSession returns the session state after ev. Events for content
// operations leave s unchanged.
func ReduceSession(s SessionState, ev Event) SessionState {
	if !ev.Op.session() {
		return s
	}
	if ev.Op == OpClearError {
		s.Err = nil
		return s
	}
	switch ev.Phase {
	case Requested:
		s.Status = Loading
		s.Err = nil
	case Rejected:
		s.Status = Failed
		s.Err = ev.Err
		if s.Err == nil {
			s.Err = errUnknown
		}
	case Fulfilled:
		if ev.Op == OpLogout {
			return SessionState{}
		}
		if ev.User != nil {
			u := *ev.User
			s.User = &u
		}
		s.Status = Succeeded
		s.Err = nil
	}
	return s
}

// ReduceContent returns the content state after ev. The input's post slice
// is never written to. Events for session operations leave s unchanged.
func ReduceContent(s ContentState, ev Event) ContentState {
	if ev.Op.session() {
		return s
	}
	switch ev.Phase {
	case Requested:
		s.Status = Loading
		s.Err = nil
		return s
	case Rejected:
		s.Status = Failed
		s.Err = ev.Err
		if s.Err == nil {
			s.Err = errUnknown
		}
		return s
	}

	switch ev.Op {
	case OpFetchPosts:
		s.Posts = append(make([]blog.Post, 0, len(ev.Posts)), ev.Posts...)
	case OpCreatePost:
		posts := make([]blog.Post, 0, len(s.Posts)+1)
		posts = append(posts, ev.Post)
		s.Posts = append(posts, s.Posts...)
	case OpUpdatePost:
		posts := append(make([]blog.Post, 0, len(s.Posts)), s.Posts...)
		for i := range posts {
			if posts[i].ID == ev.Post.ID {
				updated := ev.Post
				// author is fixed at creation
				updated.AuthorID = posts[i].AuthorID
				posts[i] = updated
				break
			}
		}
		s.Posts = posts
	case OpDeletePost:
		posts := make([]blog.Post, 0, len(s.Posts))
		for _, p := range s.Posts {
			if p.ID != ev.ID {
				posts = append(posts, p)
			}
		}
		s.Posts = posts
	}
	s.Status = Succeeded
	s.Err = nil
	return s
}
