package blogpost

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/blogpost/blog"
)

// pageNumber parses a 1-indexed page query value, defaulting to 1.
// Out-of-range numbers are passed through; they render an empty page.
func pageNumber(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return n
}

// formText returns a trimmed form value.
func formText(c echo.Context, name string) string {
	return strings.TrimSpace(c.FormValue(name))
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// statusFor maps an operation error to a response code: local validation
// failures are the client's fault, everything else came from the backend.
func statusFor(err error) int {
	var ve *blog.ValidationError
	if errors.As(err, &ve) {
		if ve == blog.ErrNotAuthenticated {
			return http.StatusUnauthorized
		}
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}
