package views

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
)

// Layout wraps body in the site chrome. The nav shows account and logout
// links only when a user is signed in.
func Layout(p Page, body templ.Component) templ.Component {
	return component(func(ctx context.Context, buf *bytes.Buffer) error {
		title := p.Site
		if p.Title != "" {
			title = p.Title + " | " + p.Site
		}
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		fmt.Fprintf(buf, `<title>%s</title>`, esc(title))
		buf.WriteString(`<link rel="stylesheet" href="/public/app.css"/></head><body>`)

		fmt.Fprintf(buf, `<nav class="nav"><a class="brand" href="/">%s</a>`, esc(p.Site))
		if p.User != nil {
			buf.WriteString(`<div class="nav-links"><a href="/blogs/">Blogs</a><a href="/account/">My Account</a>`)
			buf.WriteString(`<form method="post" action="/logout/" class="inline">`)
			csrfField(buf, p.CSRF)
			buf.WriteString(`<button type="submit" class="danger">Logout</button></form></div>`)
		} else {
			buf.WriteString(`<div class="nav-links"><a href="/login/">Login</a><a href="/register/">Register</a></div>`)
		}
		buf.WriteString(`</nav><main class="container">`)
		if err := body.Render(ctx, buf); err != nil {
			return err
		}
		buf.WriteString(`</main></body></html>`)
		return nil
	})
}

// NotFound is the 404 page body.
func NotFound(p Page, msg string) templ.Component {
	if msg == "" {
		msg = "Page not found."
	}
	return Layout(p, component(func(ctx context.Context, buf *bytes.Buffer) error {
		fmt.Fprintf(buf, `<section class="card center"><h1>404</h1><p>%s</p><a href="/blogs/">&larr; Back to Blogs</a></section>`, esc(msg))
		return nil
	}))
}

// ServerError is the 5xx page body.
func ServerError(p Page) templ.Component {
	return Layout(p, component(func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<section class="card center"><h1>Something went wrong</h1><p>Please try again in a moment.</p></section>`)
		return nil
	}))
}

// Forbidden is shown when a user opens an action on someone else's post.
func Forbidden(p Page) templ.Component {
	return Layout(p, component(func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<section class="card center"><h1>Not allowed</h1><p>Only the author can change this post.</p><a href="/blogs/">&larr; Back to Blogs</a></section>`)
		return nil
	}))
}
