package supabase

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/eringen/blogpost/blog"
)

const blogsPath = "/rest/v1/blogs"

var returnRepresentation = http.Header{"Prefer": {"return=representation"}}

func idFilter(id int64) url.Values {
	return url.Values{"id": {"eq." + strconv.FormatInt(id, 10)}}
}

// ListPosts selects every row, newest first.
func (c *Client) ListPosts(ctx context.Context) ([]blog.Post, error) {
	q := url.Values{"select": {"*"}, "order": {"created_at.desc"}}
	posts := []blog.Post{}
	if err := c.do(ctx, http.MethodGet, blogsPath, q, nil, &posts, nil); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost selects one row by id.
func (c *Client) GetPost(ctx context.Context, id int64) (blog.Post, error) {
	q := idFilter(id)
	q.Set("select", "*")
	var rows []blog.Post
	if err := c.do(ctx, http.MethodGet, blogsPath, q, nil, &rows, nil); err != nil {
		return blog.Post{}, err
	}
	return first(rows)
}

// InsertPost inserts a row and returns it as stored.
func (c *Client) InsertPost(ctx context.Context, np blog.NewPost) (blog.Post, error) {
	q := url.Values{"select": {"*"}}
	var rows []blog.Post
	if err := c.do(ctx, http.MethodPost, blogsPath, q, []blog.NewPost{np}, &rows, returnRepresentation); err != nil {
		return blog.Post{}, err
	}
	return first(rows)
}

// UpdatePost patches title and content of the row with id.
func (c *Client) UpdatePost(ctx context.Context, id int64, ch blog.PostChanges) (blog.Post, error) {
	q := idFilter(id)
	q.Set("select", "*")
	var rows []blog.Post
	if err := c.do(ctx, http.MethodPatch, blogsPath, q, ch, &rows, returnRepresentation); err != nil {
		return blog.Post{}, err
	}
	return first(rows)
}

// DeletePost deletes the row with id.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, blogsPath, idFilter(id), nil, nil, nil)
}

// first returns the single row PostgREST sends back, or blog.ErrNotFound
// when the filter matched nothing (including rows hidden by row security).
func first(rows []blog.Post) (blog.Post, error) {
	if len(rows) == 0 {
		return blog.Post{}, blog.ErrNotFound
	}
	return rows[0], nil
}
