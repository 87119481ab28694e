package state

import (
	"context"

	"github.com/golang/glog"

	"github.com/eringen/blogpost/blog"
)

// Client runs operations against a backend and records each one's
// lifecycle in its session and content stores. Every operation returns its
// error as well as recording it, so callers may branch on it or only read
// the stores afterwards.
//
// Overlapping calls are not serialized: whichever completes last decides a
// store's status.
type Client struct {
	backend blog.Backend
	session *SessionStore
	content *ContentStore
}

// NewClient returns a Client with fresh stores.
func NewClient(b blog.Backend) *Client {
	return &Client{
		backend: b,
		session: NewSessionStore(),
		content: NewContentStore(),
	}
}

// Session returns a snapshot of the session store.
func (c *Client) Session() SessionState {
	return c.session.Snapshot()
}

// Content returns a snapshot of the content store.
func (c *Client) Content() ContentState {
	return c.content.Snapshot()
}

func (c *Client) sessionEvent(op Op, phase Phase, u *blog.User, err error) {
	glog.V(2).Infof("[state] %s phase=%d err=%v", op, phase, err)
	c.session.Dispatch(Event{Op: op, Phase: phase, User: u, Err: err})
}

func (c *Client) contentEvent(ev Event) {
	glog.V(2).Infof("[state] %s phase=%d id=%d err=%v", ev.Op, ev.Phase, ev.ID, ev.Err)
	c.content.Dispatch(ev)
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, email, password string) (blog.User, error) {
	c.sessionEvent(OpRegister, Requested, nil, nil)
	u, err := c.backend.Register(ctx, email, password)
	if err != nil {
		err = blog.AsBackendError(err)
		c.sessionEvent(OpRegister, Rejected, nil, err)
		return blog.User{}, err
	}
	c.sessionEvent(OpRegister, Fulfilled, &u, nil)
	return u, nil
}

// Login signs in with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (blog.User, error) {
	c.sessionEvent(OpLogin, Requested, nil, nil)
	u, err := c.backend.Login(ctx, email, password)
	if err != nil {
		err = blog.AsBackendError(err)
		c.sessionEvent(OpLogin, Rejected, nil, err)
		return blog.User{}, err
	}
	c.sessionEvent(OpLogin, Fulfilled, &u, nil)
	return u, nil
}

// ClearError drops the session error without touching status. It is safe
// to call any number of times.
func (c *Client) ClearError() {
	c.session.Dispatch(Event{Op: OpClearError})
}

// Logout signs out. On failure the identity is kept.
func (c *Client) Logout(ctx context.Context) error {
	c.sessionEvent(OpLogout, Requested, nil, nil)
	if err := c.backend.Logout(ctx); err != nil {
		err = blog.AsBackendError(err)
		c.sessionEvent(OpLogout, Rejected, nil, err)
		return err
	}
	c.sessionEvent(OpLogout, Fulfilled, nil, nil)
	return nil
}

// FetchPosts replaces the held posts with the backend's full list.
func (c *Client) FetchPosts(ctx context.Context) ([]blog.Post, error) {
	c.contentEvent(Event{Op: OpFetchPosts, Phase: Requested})
	posts, err := c.backend.ListPosts(ctx)
	if err != nil {
		err = blog.AsBackendError(err)
		c.contentEvent(Event{Op: OpFetchPosts, Phase: Rejected, Err: err})
		return nil, err
	}
	c.contentEvent(Event{Op: OpFetchPosts, Phase: Fulfilled, Posts: posts})
	return posts, nil
}

// CreatePost inserts a post authored by the signed-in user and puts it at
// the front of the held posts. Without a session it fails with
// blog.ErrNotAuthenticated and the backend is not called.
func (c *Client) CreatePost(ctx context.Context, title, content string) (blog.Post, error) {
	c.contentEvent(Event{Op: OpCreatePost, Phase: Requested})
	sess := c.session.Snapshot()
	if !sess.SignedIn() {
		c.contentEvent(Event{Op: OpCreatePost, Phase: Rejected, Err: blog.ErrNotAuthenticated})
		return blog.Post{}, blog.ErrNotAuthenticated
	}
	p, err := c.backend.InsertPost(ctx, blog.NewPost{
		Title:       title,
		Content:     content,
		AuthorID:    sess.User.ID,
		AuthorEmail: sess.User.Email,
	})
	if err != nil {
		err = blog.AsBackendError(err)
		c.contentEvent(Event{Op: OpCreatePost, Phase: Rejected, Err: err})
		return blog.Post{}, err
	}
	c.contentEvent(Event{Op: OpCreatePost, Phase: Fulfilled, Post: p})
	return p, nil
}

// UpdatePost changes a post's title and content and replaces the held copy
// in place. A post that is not held is not added.
func (c *Client) UpdatePost(ctx context.Context, id int64, title, content string) (blog.Post, error) {
	c.contentEvent(Event{Op: OpUpdatePost, Phase: Requested, ID: id})
	p, err := c.backend.UpdatePost(ctx, id, blog.PostChanges{Title: title, Content: content})
	if err != nil {
		err = blog.AsBackendError(err)
		c.contentEvent(Event{Op: OpUpdatePost, Phase: Rejected, ID: id, Err: err})
		return blog.Post{}, err
	}
	c.contentEvent(Event{Op: OpUpdatePost, Phase: Fulfilled, ID: id, Post: p})
	return p, nil
}

// DeletePost removes a post and drops it from the held posts.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	c.contentEvent(Event{Op: OpDeletePost, Phase: Requested, ID: id})
	if err := c.backend.DeletePost(ctx, id); err != nil {
		err = blog.AsBackendError(err)
		c.contentEvent(Event{Op: OpDeletePost, Phase: Rejected, ID: id, Err: err})
		return err
	}
	c.contentEvent(Event{Op: OpDeletePost, Phase: Fulfilled, ID: id})
	return nil
}

// GetPost returns a single post, from the held posts when present and from
// the backend otherwise. It does not change either store.
func (c *Client) GetPost(ctx context.Context, id int64) (blog.Post, error) {
	for _, p := range c.content.Snapshot().Posts {
		if p.ID == id {
			return p, nil
		}
	}
	p, err := c.backend.GetPost(ctx, id)
	if err != nil {
		return blog.Post{}, blog.AsBackendError(err)
	}
	return p, nil
}
