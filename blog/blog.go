// Package blog holds the domain types shared by the synchronization layer,
// the backends that persist them and the web shell that renders them.
package blog

import (
	"context"
	"time"
)

// User is the identity returned by a backend on register or login.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Post is a single blog entry. ID is zero until the backend has confirmed
// the insert and assigned one.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	AuthorID    string    `json:"user_id"`
	AuthorEmail string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasID reports whether the backend has assigned the post an id.
func (p Post) HasID() bool {
	return p.ID != 0
}

// NewPost is the client-supplied part of a post on insert.
type NewPost struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	AuthorID    string `json:"user_id"`
	AuthorEmail string `json:"email"`
}

// PostChanges carries the mutable fields of a post. The author never changes.
type PostChanges struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Backend is the remote data service: credential auth plus table operations
// against the blogs resource. Implementations return *BackendError for any
// failure reported by the service so the message reaches the user verbatim.
type Backend interface {
	Register(ctx context.Context, email, password string) (User, error)
	Login(ctx context.Context, email, password string) (User, error)
	Logout(ctx context.Context) error

	// ListPosts returns every post ordered by creation time, newest first.
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, id int64) (Post, error)
	InsertPost(ctx context.Context, p NewPost) (Post, error)
	UpdatePost(ctx context.Context, id int64, ch PostChanges) (Post, error)
	DeletePost(ctx context.Context, id int64) error
}
