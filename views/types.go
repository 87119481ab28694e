package views

import (
	"github.com/eringen/blogpost/blog"
	"github.com/eringen/blogpost/state"
)

// Page carries what every page's chrome needs: the site name, the CSRF
// token for forms and the signed-in user, if any.
type Page struct {
	Site  string
	Title string
	CSRF  string
	User  *blog.User
}

// BlogList is the data behind the paginated listing.
type BlogList struct {
	Page   state.Page
	Scope  state.Scope
	UserID string
	Status state.Status
	Error  string
}

// BlogForm is the create/edit form. ID is zero when creating.
type BlogForm struct {
	ID      int64
	Title   string
	Content string
	Error   string
}

// Editing reports whether the form edits an existing post.
func (f BlogForm) Editing() bool {
	return f.ID != 0
}
