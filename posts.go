package blogpost

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/blogpost/blog"
	"github.com/eringen/blogpost/state"
	"github.com/eringen/blogpost/views"
)

const errMissingFields = "Title and content are required."

// handleBlogs refreshes the posts and renders one page of the listing.
// A failed refresh still renders, showing the previously held posts.
func (a *App) handleBlogs(c echo.Context) error {
	client := clientFrom(c)
	if _, err := client.FetchPosts(c.Request().Context()); err != nil {
		c.Logger().Warnf("fetch posts: %v", err)
	}
	content := client.Content()
	userID := client.Session().UserID()
	scope := state.ParseScope(c.QueryParam("scope"))

	list := views.BlogList{
		Page:   state.Paginate(content.Visible(userID, scope), a.Config.PageSize, pageNumber(c.QueryParam("page"))),
		Scope:  scope,
		UserID: userID,
		Status: content.Status,
	}
	if content.Status == state.Failed {
		list.Error = errText(content.Err)
	}
	return Render(c, a.Views.Blogs(a.page(c, "Blogs"), list))
}

func (a *App) handleCreateForm(c echo.Context) error {
	return Render(c, a.Views.BlogForm(a.page(c, "Create Blog"), views.BlogForm{}))
}

func (a *App) handleCreate(c echo.Context) error {
	client := clientFrom(c)
	form := views.BlogForm{Title: formText(c, "title"), Content: formText(c, "content")}
	if form.Title == "" || form.Content == "" {
		form.Error = errMissingFields
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.BlogForm(a.page(c, "Create Blog"), form))
	}
	if _, err := client.CreatePost(c.Request().Context(), form.Title, form.Content); err != nil {
		form.Error = errText(client.Content().Err)
		return RenderStatus(c, statusFor(err), a.Views.BlogForm(a.page(c, "Create Blog"), form))
	}
	return c.Redirect(http.StatusSeeOther, "/blogs/")
}

func (a *App) handleDetail(c echo.Context) error {
	post, err := a.findPost(c)
	if err != nil {
		return a.renderPostError(c, err)
	}
	canEdit := state.Authorize(post, clientFrom(c).Session().UserID())
	return Render(c, a.Views.BlogDetail(a.page(c, post.Title), post, canEdit))
}

func (a *App) handleUpdateForm(c echo.Context) error {
	post, err := a.ownPost(c)
	if err != nil {
		return a.renderPostError(c, err)
	}
	form := views.BlogForm{ID: post.ID, Title: post.Title, Content: post.Content}
	return Render(c, a.Views.BlogForm(a.page(c, "Edit Blog"), form))
}

func (a *App) handleUpdate(c echo.Context) error {
	post, err := a.ownPost(c)
	if err != nil {
		return a.renderPostError(c, err)
	}
	client := clientFrom(c)
	form := views.BlogForm{ID: post.ID, Title: formText(c, "title"), Content: formText(c, "content")}
	if form.Title == "" || form.Content == "" {
		form.Error = errMissingFields
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.BlogForm(a.page(c, "Edit Blog"), form))
	}
	if _, err := client.UpdatePost(c.Request().Context(), post.ID, form.Title, form.Content); err != nil {
		form.Error = errText(client.Content().Err)
		return RenderStatus(c, statusFor(err), a.Views.BlogForm(a.page(c, "Edit Blog"), form))
	}
	return c.Redirect(http.StatusSeeOther, "/blogs/")
}

func (a *App) handleDeleteForm(c echo.Context) error {
	post, err := a.ownPost(c)
	if err != nil {
		return a.renderPostError(c, err)
	}
	return Render(c, a.Views.DeleteBlog(a.page(c, "Delete Blog"), post, ""))
}

func (a *App) handleDelete(c echo.Context) error {
	post, err := a.ownPost(c)
	if err != nil {
		return a.renderPostError(c, err)
	}
	client := clientFrom(c)
	if err := client.DeletePost(c.Request().Context(), post.ID); err != nil {
		return RenderStatus(c, statusFor(err), a.Views.DeleteBlog(a.page(c, "Delete Blog"), post, errText(client.Content().Err)))
	}
	return c.Redirect(http.StatusSeeOther, "/blogs/")
}

var errForbidden = errors.New("forbidden")

// findPost resolves the :id route parameter to a post.
func (a *App) findPost(c echo.Context) (blog.Post, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return blog.Post{}, blog.ErrNotFound
	}
	return clientFrom(c).GetPost(c.Request().Context(), id)
}

// ownPost is findPost restricted to posts the signed-in user authored.
func (a *App) ownPost(c echo.Context) (blog.Post, error) {
	post, err := a.findPost(c)
	if err != nil {
		return blog.Post{}, err
	}
	if !state.Authorize(post, clientFrom(c).Session().UserID()) {
		return blog.Post{}, errForbidden
	}
	return post, nil
}

func (a *App) renderPostError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, blog.ErrNotFound):
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, "Not found"), blog.ErrNotFound.Message))
	case errors.Is(err, errForbidden):
		return RenderStatus(c, http.StatusForbidden, a.Views.Forbidden(a.page(c, "Not allowed")))
	}
	return RenderStatus(c, statusFor(err), a.Views.NotFound(a.page(c, "Error"), errText(err)))
}
