package blogpost

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/blogpost/state"
)

const (
	sessionName      = "blog_session"
	sessionClientKey = "client"
	clientContextKey = "blogpost.client"

	clientKeyContextKey = "blogpost.client_key"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; form-action 'self'",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:  middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup: "header:X-CSRF-Token,form:_csrf",
		CookieName:  "_csrf",
		CookiePath:  "/",
		CookieSameSite: func() http.SameSite {
			return http.SameSiteLaxMode
		}(),
		CookieSecure: a.Config.CookieSecure,
		ErrorHandler: func(err error, c echo.Context) error {
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public")
		},
	}))

	e.Use(cacheControlMiddleware)
	e.Use(a.attachClient)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.HasPrefix(c.Request().URL.Path, "/public/") {
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			// every page reflects one user's state
			c.Response().Header().Set("Cache-Control", "no-store")
		}
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(a.Config.ClientTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// attachClient looks up the browser's registered state.Client. A browser
// without one gets a throwaway client that is only registered, and its key
// stored in the session cookie, once keepClient is called.
func (a *App) attachClient(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.HasPrefix(c.Request().URL.Path, "/public/") {
			return next(c)
		}
		sess, err := session.Get(sessionName, c)
		if sess == nil {
			return err
		}
		if err != nil {
			// A cookie signed with an old secret still yields a usable
			// empty session.
			c.Logger().Warnf("session: %v", err)
		}
		key, _ := sess.Values[sessionClientKey].(string)
		if client, ok := a.Registry.Get(key); ok {
			c.Set(clientKeyContextKey, key)
			c.Set(clientContextKey, client)
		} else {
			c.Set(clientContextKey, a.Registry.NewClient())
		}
		return next(c)
	}
}

// keepClient registers the request's client if it is still throwaway, so
// state recorded by the current operation survives to the next request.
func (a *App) keepClient(c echo.Context) error {
	if key, _ := c.Get(clientKeyContextKey).(string); key != "" {
		return nil
	}
	sess, err := session.Get(sessionName, c)
	if sess == nil {
		return err
	}
	key := a.Registry.Add(clientFrom(c))
	sess.Values[sessionClientKey] = key
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		a.Registry.Remove(key)
		return err
	}
	c.Set(clientKeyContextKey, key)
	return nil
}

// requireUser redirects to the login page when no identity is present.
func (a *App) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !clientFrom(c).Session().SignedIn() {
			return c.Redirect(http.StatusSeeOther, "/login/")
		}
		return next(c)
	}
}

func clientFrom(c echo.Context) *state.Client {
	client, _ := c.Get(clientContextKey).(*state.Client)
	return client
}

// CsrfToken extracts the CSRF token from the Echo context.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
