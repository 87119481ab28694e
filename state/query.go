package state

import "github.com/eringen/blogpost/blog"

// Scope selects which posts a listing shows.
type Scope string

const (
	ScopeOwn Scope = "own"
	ScopeAll Scope = "all"
)

// ParseScope maps a query value to a Scope, defaulting to ScopeOwn.
func ParseScope(s string) Scope {
	if Scope(s) == ScopeAll {
		return ScopeAll
	}
	return ScopeOwn
}

// VisiblePostsFor filters posts for a listing. Posts without an assigned id
// are never visible; ScopeOwn further keeps only posts authored by userID.
func VisiblePostsFor(posts []blog.Post, userID string, scope Scope) []blog.Post {
	out := make([]blog.Post, 0, len(posts))
	for _, p := range posts {
		if !p.HasID() {
			continue
		}
		if scope != ScopeAll && !Authorize(p, userID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Authorize reports whether userID may edit or delete p. An empty userID
// is never authorized. This gates UI affordances only.
func Authorize(p blog.Post, userID string) bool {
	return userID != "" && p.AuthorID == userID
}

// Page is one slice of a paginated listing. Number is 1-indexed.
type Page struct {
	Posts  []blog.Post
	Number int
	Size   int
	Count  int
}

// HasPrev reports whether a page precedes this one.
func (p Page) HasPrev() bool {
	return p.Number > 1 && p.Number <= p.Count+1
}

// HasNext reports whether a page follows this one.
func (p Page) HasNext() bool {
	return p.Number >= 1 && p.Number < p.Count
}

// PageCount returns ceil(n/size), or 0 for a non-positive size.
func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns posts[(number-1)*size : number*size], clamped to the
// slice. An out-of-range number yields an empty page, not an error.
func Paginate(posts []blog.Post, size, number int) Page {
	page := Page{
		Posts:  []blog.Post{},
		Number: number,
		Size:   size,
		Count:  PageCount(len(posts), size),
	}
	if number < 1 || number > page.Count {
		return page
	}
	start := (number - 1) * size
	end := start + size
	if end > len(posts) {
		end = len(posts)
	}
	page.Posts = posts[start:end:end]
	return page
}
