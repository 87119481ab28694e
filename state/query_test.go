package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eringen/blogpost/blog"
)

func TestPaginate(t *testing.T) {
	posts := seedPosts(10, "u-1")

	tests := []struct {
		name   string
		size   int
		number int
		want   []blog.Post
		count  int
	}{
		{"first page", 4, 1, posts[0:4], 3},
		{"middle page", 4, 2, posts[4:8], 3},
		{"last partial page", 4, 3, posts[8:10], 3},
		{"past the end", 4, 4, []blog.Post{}, 3},
		{"zero page", 4, 0, []blog.Post{}, 3},
		{"negative page", 4, -1, []blog.Post{}, 3},
		{"zero size", 0, 1, []blog.Post{}, 0},
		{"one page", 20, 1, posts, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(posts, tt.size, tt.number)
			assert.Equal(t, tt.want, got.Posts)
			assert.Equal(t, tt.count, got.Count)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	got := Paginate(nil, 4, 1)
	assert.Empty(t, got.Posts)
	assert.Equal(t, 0, got.Count)
	assert.False(t, got.HasNext())
	assert.False(t, got.HasPrev())
}

func TestPageNavigation(t *testing.T) {
	posts := seedPosts(10, "u-1")
	assert.True(t, Paginate(posts, 4, 1).HasNext())
	assert.False(t, Paginate(posts, 4, 1).HasPrev())
	assert.True(t, Paginate(posts, 4, 3).HasPrev())
	assert.False(t, Paginate(posts, 4, 3).HasNext())
}

func TestAuthorize(t *testing.T) {
	p := blog.Post{ID: 1, AuthorID: "u-1"}
	assert.True(t, Authorize(p, "u-1"))
	assert.False(t, Authorize(p, "u-2"))
	assert.False(t, Authorize(p, ""))
	assert.False(t, Authorize(blog.Post{ID: 1}, ""))
}

func TestVisiblePostsFor(t *testing.T) {
	posts := []blog.Post{
		{ID: 3, AuthorID: "u-1"},
		{ID: 0, AuthorID: "u-1"},
		{ID: 2, AuthorID: "u-2"},
		{ID: 1, AuthorID: "u-1"},
	}

	own := VisiblePostsFor(posts, "u-1", ScopeOwn)
	assert.Equal(t, []blog.Post{posts[0], posts[3]}, own)

	all := VisiblePostsFor(posts, "u-1", ScopeAll)
	assert.Equal(t, []blog.Post{posts[0], posts[2], posts[3]}, all)

	assert.Empty(t, VisiblePostsFor(posts, "", ScopeOwn))
}

func TestParseScope(t *testing.T) {
	assert.Equal(t, ScopeAll, ParseScope("all"))
	assert.Equal(t, ScopeOwn, ParseScope("own"))
	assert.Equal(t, ScopeOwn, ParseScope(""))
	assert.Equal(t, ScopeOwn, ParseScope("bogus"))
}
