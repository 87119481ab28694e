package blogpost

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eringen/blogpost/state"
	"github.com/eringen/blogpost/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// page builds the chrome data every view receives.
func (a *App) page(c echo.Context, title string) views.Page {
	p := views.Page{Site: a.Config.Name, Title: title, CSRF: CsrfToken(c)}
	if client := clientFrom(c); client != nil {
		p.User = client.Session().User
	}
	return p
}

// sessionError returns the recorded auth error while the last operation
// stands failed, so a reload keeps showing it until dismissed.
func sessionError(s state.SessionState) string {
	if s.Status != state.Failed {
		return ""
	}
	return errText(s.Err)
}

func (a *App) handleHome(c echo.Context) error {
	return Render(c, a.Views.Home(a.page(c, "")))
}

func (a *App) handleLoginForm(c echo.Context) error {
	sess := clientFrom(c).Session()
	if sess.SignedIn() {
		return c.Redirect(http.StatusSeeOther, "/blogs/")
	}
	return Render(c, a.Views.Login(a.page(c, "Login"), "", sessionError(sess)))
}

func (a *App) handleLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.authLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	if err := a.keepClient(c); err != nil {
		return err
	}
	client := clientFrom(c)
	email := formText(c, "email")
	if _, err := client.Login(c.Request().Context(), email, c.FormValue("password")); err != nil {
		a.authLimiter.Record(ip)
		msg := sessionError(client.Session())
		return RenderStatus(c, http.StatusUnauthorized, a.Views.Login(a.page(c, "Login"), email, msg))
	}
	return c.Redirect(http.StatusSeeOther, "/blogs/")
}

func (a *App) handleDismissError(c echo.Context) error {
	clientFrom(c).ClearError()
	return c.Redirect(http.StatusSeeOther, "/login/")
}

func (a *App) handleRegisterForm(c echo.Context) error {
	if clientFrom(c).Session().SignedIn() {
		return c.Redirect(http.StatusSeeOther, "/blogs/")
	}
	return Render(c, a.Views.Register(a.page(c, "Register"), "", ""))
}

func (a *App) handleRegister(c echo.Context) error {
	ip := c.RealIP()
	if !a.authLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many attempts. Try again later.")
	}
	if err := a.keepClient(c); err != nil {
		return err
	}
	client := clientFrom(c)
	email := formText(c, "email")
	if _, err := client.Register(c.Request().Context(), email, c.FormValue("password")); err != nil {
		a.authLimiter.Record(ip)
		msg := sessionError(client.Session())
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Register(a.page(c, "Register"), email, msg))
	}
	return c.Redirect(http.StatusSeeOther, "/blogs/")
}

func (a *App) handleAccount(c echo.Context) error {
	return Render(c, a.Views.Account(a.page(c, "Account"), sessionError(clientFrom(c).Session())))
}

// handleLogout keeps the user signed in when the backend refuses, and
// shows why.
func (a *App) handleLogout(c echo.Context) error {
	client := clientFrom(c)
	if err := client.Logout(c.Request().Context()); err != nil {
		c.Logger().Warnf("logout: %v", err)
		return RenderStatus(c, http.StatusBadGateway, a.Views.Account(a.page(c, "Account"), sessionError(client.Session())))
	}
	a.forgetClient(c)
	return c.Redirect(http.StatusSeeOther, "/login/")
}

// forgetClient drops the browser's client so the next request starts from
// an empty state.
func (a *App) forgetClient(c echo.Context) {
	sess, err := session.Get(sessionName, c)
	if sess == nil {
		c.Logger().Warnf("session: %v", err)
		return
	}
	if key, ok := sess.Values[sessionClientKey].(string); ok {
		a.Registry.Remove(key)
	}
	delete(sess.Values, sessionClientKey)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Logger().Warnf("session: %v", err)
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, "Not found"), ""))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.page(c, "Error")))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
