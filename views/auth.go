package views

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
)

func credentialsForm(buf *bytes.Buffer, p Page, action, submit, email string) {
	fmt.Fprintf(buf, `<form method="post" action="%s" class="stack">`, action)
	csrfField(buf, p.CSRF)
	fmt.Fprintf(buf, `<input type="email" name="email" placeholder="Email" value="%s" required autocomplete="email"/>`, esc(email))
	buf.WriteString(`<input type="password" name="password" placeholder="Password" required minlength="6"/>`)
	fmt.Fprintf(buf, `<button type="submit" class="primary">%s</button></form>`, esc(submit))
}

// Login renders the sign-in form. A non-empty errMsg is shown with a
// dismiss button that clears it without resubmitting.
func Login(p Page, email, errMsg string) templ.Component {
	return Layout(p, component(func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<section class="card narrow"><h2>Login</h2>`)
		if errMsg != "" {
			fmt.Fprintf(buf, `<div class="error" role="alert">%s<form method="post" action="/login/dismiss/" class="inline">`, esc(errMsg))
			csrfField(buf, p.CSRF)
			buf.WriteString(`<button type="submit" class="link" aria-label="Dismiss">&times;</button></form></div>`)
		}
		credentialsForm(buf, p, "/login/", "Login", email)
		buf.WriteString(`<p class="muted">No account? <a href="/register/">Register</a></p></section>`)
		return nil
	}))
}

// Register renders the sign-up form.
func Register(p Page, email, errMsg string) templ.Component {
	return Layout(p, component(func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<section class="card narrow"><h2>Register</h2>`)
		errorBox(buf, errMsg)
		credentialsForm(buf, p, "/register/", "Register", email)
		buf.WriteString(`<p class="muted">Already registered? <a href="/login/">Login</a></p></section>`)
		return nil
	}))
}

// Account greets the signed-in user. errMsg carries a failed logout.
func Account(p Page, errMsg string) templ.Component {
	return Layout(p, component(func(ctx context.Context, buf *bytes.Buffer) error {
		email := ""
		if p.User != nil {
			email = p.User.Email
		}
		buf.WriteString(`<section class="card narrow center"><h2>Account Page</h2>`)
		errorBox(buf, errMsg)
		fmt.Fprintf(buf, `<p>Welcome, <strong>%s</strong>!</p>`, esc(email))
		buf.WriteString(`<a class="button" href="/blogs/">Go to Blogs</a>`)
		buf.WriteString(`<form method="post" action="/logout/">`)
		csrfField(buf, p.CSRF)
		buf.WriteString(`<button type="submit" class="danger wide">Logout</button></form></section>`)
		return nil
	}))
}

// Home is the landing page for a signed-in user.
func Home(p Page) templ.Component {
	return Layout(p, component(func(ctx context.Context, buf *bytes.Buffer) error {
		fmt.Fprintf(buf, `<section class="center"><h1>%s</h1>`, esc(p.Site))
		buf.WriteString(`<p><a class="button primary" href="/blogs/create/">Create Blog</a> <a class="button" href="/blogs/">My Blogs</a></p></section>`)
		return nil
	}))
}
