package views

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/blogpost/state"
)

// component renders into a buffer first so a failing body never leaves a
// half-written page behind.
func component(fn func(ctx context.Context, buf *bytes.Buffer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := fn(ctx, &buf); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

// PostPath returns the path of a post's page, or of one of its actions
// ("update", "delete").
func PostPath(id int64, action string) string {
	if action == "" {
		return "/blogs/" + strconv.FormatInt(id, 10) + "/"
	}
	return "/blogs/" + action + "/" + strconv.FormatInt(id, 10) + "/"
}

// ListPath returns the listing URL for a scope and page number.
func ListPath(scope state.Scope, page int) string {
	q := url.Values{}
	if scope == state.ScopeAll {
		q.Set("scope", string(scope))
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/blogs/"
	}
	return "/blogs/?" + q.Encode()
}

// FormatTime renders a creation time for display.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

// Excerpt shortens content to at most n runes on a word boundary.
func Excerpt(content string, n int) string {
	r := []rune(strings.TrimSpace(content))
	if len(r) <= n {
		return string(r)
	}
	cut := string(r[:n])
	if i := strings.LastIndexAny(cut, " \n\t"); i > n/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " \n\t.,;:") + "…"
}

// writeParagraphs keeps the author's line breaks: blank lines separate
// paragraphs and single newlines become <br/>.
func writeParagraphs(buf *bytes.Buffer, content string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	for _, para := range strings.Split(content, "\n\n") {
		para = strings.Trim(para, "\n")
		if strings.TrimSpace(para) == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i := range lines {
			lines[i] = esc(lines[i])
		}
		buf.WriteString("<p>")
		buf.WriteString(strings.Join(lines, "<br/>"))
		buf.WriteString("</p>")
	}
}

func csrfField(buf *bytes.Buffer, token string) {
	fmt.Fprintf(buf, `<input type="hidden" name="_csrf" value="%s"/>`, esc(token))
}

func errorBox(buf *bytes.Buffer, msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintf(buf, `<div class="error" role="alert">%s</div>`, esc(msg))
}
