package views

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/blogpost/blog"
	"github.com/eringen/blogpost/state"
)

const excerptLen = 280

// Blogs renders one page of the listing. Edit and delete links appear only
// on posts the user is authorized to change.
func Blogs(p Page, l BlogList) templ.Component {
	return Layout(p, component(func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<div class="toolbar"><a class="button primary" href="/blogs/create/">Create Blog</a>`)
		buf.WriteString(`<div class="tabs">`)
		for _, s := range []state.Scope{state.ScopeOwn, state.ScopeAll} {
			label := "My Blogs"
			if s == state.ScopeAll {
				label = "All Blogs"
			}
			class := "tab"
			if s == l.Scope {
				class += " active"
			}
			fmt.Fprintf(buf, `<a class="%s" href="%s">%s</a>`, class, esc(ListPath(s, 1)), label)
		}
		buf.WriteString(`</div></div>`)

		if l.Scope == state.ScopeAll {
			buf.WriteString(`<h1>All Blogs</h1>`)
		} else {
			buf.WriteString(`<h1>My Blogs</h1>`)
		}
		if l.Status == state.Loading {
			buf.WriteString(`<p class="muted center">Loading...</p>`)
		}
		errorBox(buf, l.Error)
		if len(l.Page.Posts) == 0 {
			buf.WriteString(`<p class="muted center">No blogs yet.</p>`)
		}

		buf.WriteString(`<div class="posts">`)
		for _, post := range l.Page.Posts {
			writePostCard(buf, post, state.Authorize(post, l.UserID))
		}
		buf.WriteString(`</div>`)

		writePager(buf, l)
		return nil
	}))
}

func writePostCard(buf *bytes.Buffer, post blog.Post, canEdit bool) {
	buf.WriteString(`<article class="card post">`)
	fmt.Fprintf(buf, `<header><h2><a href="%s">%s</a></h2>`, PostPath(post.ID, ""), esc(post.Title))
	if canEdit {
		fmt.Fprintf(buf, `<div class="actions"><a class="button small" href="%s">Edit</a><a class="button small" href="%s">Delete</a></div>`,
			PostPath(post.ID, "update"), PostPath(post.ID, "delete"))
	}
	buf.WriteString(`</header>`)
	fmt.Fprintf(buf, `<p>%s</p>`, esc(Excerpt(post.Content, excerptLen)))
	fmt.Fprintf(buf, `<p class="meta">By %s &middot; Created: %s</p>`, esc(post.AuthorEmail), esc(FormatTime(post.CreatedAt)))
	buf.WriteString(`</article>`)
}

func writePager(buf *bytes.Buffer, l BlogList) {
	if l.Page.Count <= 1 {
		return
	}
	buf.WriteString(`<nav class="pager">`)
	if l.Page.HasPrev() {
		fmt.Fprintf(buf, `<a class="page" rel="prev" href="%s">&larr; Prev</a>`, esc(ListPath(l.Scope, l.Page.Number-1)))
	}
	for i := 1; i <= l.Page.Count; i++ {
		class := "page"
		if i == l.Page.Number {
			class += " active"
		}
		fmt.Fprintf(buf, `<a class="%s" href="%s">%s</a>`, class, esc(ListPath(l.Scope, i)), strconv.Itoa(i))
	}
	if l.Page.HasNext() {
		fmt.Fprintf(buf, `<a class="page" rel="next" href="%s">Next &rarr;</a>`, esc(ListPath(l.Scope, l.Page.Number+1)))
	}
	buf.WriteString(`</nav>`)
}

// BlogFormView renders the create or edit form.
func BlogFormView(p Page, f BlogForm) templ.Component {
	return Layout(p, component(func(ctx context.Context, buf *bytes.Buffer) error {
		heading, action, submit := "Create Blog", "/blogs/create/", "Create"
		if f.Editing() {
			heading, action, submit = "Edit Blog", PostPath(f.ID, "update"), "Update"
		}
		fmt.Fprintf(buf, `<section class="card"><h2>%s</h2>`, heading)
		errorBox(buf, f.Error)
		fmt.Fprintf(buf, `<form method="post" action="%s" class="stack">`, action)
		csrfField(buf, p.CSRF)
		fmt.Fprintf(buf, `<input type="text" name="title" placeholder="Title" value="%s" required/>`, esc(f.Title))
		fmt.Fprintf(buf, `<textarea name="content" placeholder="Content" rows="10" required>%s</textarea>`, esc(f.Content))
		fmt.Fprintf(buf, `<div class="row"><button type="submit" class="primary">%s</button><a class="button" href="/blogs/">Cancel</a></div>`, submit)
		buf.WriteString(`</form></section>`)
		return nil
	}))
}

// BlogDetail renders a single post.
func BlogDetail(p Page, post blog.Post, canEdit bool) templ.Component {
	return Layout(p, component(func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<a href="/blogs/">&larr; Back to Blogs</a><article class="card">`)
		fmt.Fprintf(buf, `<h1>%s</h1><div class="content">`, esc(post.Title))
		writeParagraphs(buf, post.Content)
		buf.WriteString(`</div>`)
		fmt.Fprintf(buf, `<p class="meta">By: %s</p><p class="meta small">Created: %s</p>`, esc(post.AuthorEmail), esc(FormatTime(post.CreatedAt)))
		if canEdit {
			fmt.Fprintf(buf, `<div class="actions"><a class="button" href="%s">Edit</a><a class="button" href="%s">Delete</a></div>`,
				PostPath(post.ID, "update"), PostPath(post.ID, "delete"))
		}
		buf.WriteString(`</article>`)
		return nil
	}))
}

// DeleteConfirm asks before deleting a post.
func DeleteConfirm(p Page, post blog.Post, errMsg string) templ.Component {
	return Layout(p, component(func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<section class="card narrow center"><h2>Delete Blog</h2>`)
		errorBox(buf, errMsg)
		fmt.Fprintf(buf, `<p>Are you sure you want to delete <strong>%s</strong>?</p>`, esc(post.Title))
		fmt.Fprintf(buf, `<form method="post" action="%s" class="row">`, PostPath(post.ID, "delete"))
		csrfField(buf, p.CSRF)
		buf.WriteString(`<button type="submit" class="danger">Delete</button><a class="button" href="/blogs/">Cancel</a></form></section>`)
		return nil
	}))
}
