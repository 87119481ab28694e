// Package blogpost is a small multi-user blog: users register, log in and
// manage their own posts. Persistence and authentication are delegated to a
// blog.Backend; this package renders pages and keeps one state.Client per
// browser session.
package blogpost

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/blogpost/blog"
	"github.com/eringen/blogpost/views"
)

// ViewFuncs holds the components the handlers render. DefaultViews
// returns the stock set; callers may swap individual pages.
type ViewFuncs struct {
	Home        func(p views.Page) templ.Component
	Login       func(p views.Page, email, errMsg string) templ.Component
	Register    func(p views.Page, email, errMsg string) templ.Component
	Account     func(p views.Page, errMsg string) templ.Component
	Blogs       func(p views.Page, l views.BlogList) templ.Component
	BlogForm    func(p views.Page, f views.BlogForm) templ.Component
	BlogDetail  func(p views.Page, post blog.Post, canEdit bool) templ.Component
	DeleteBlog  func(p views.Page, post blog.Post, errMsg string) templ.Component
	NotFound    func(p views.Page, msg string) templ.Component
	Forbidden   func(p views.Page) templ.Component
	ServerError func(p views.Page) templ.Component
}

// DefaultViews returns the components from the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Login:       views.Login,
		Register:    views.Register,
		Account:     views.Account,
		Blogs:       views.Blogs,
		BlogForm:    views.BlogFormView,
		BlogDetail:  views.BlogDetail,
		DeleteBlog:  views.DeleteConfirm,
		NotFound:    views.NotFound,
		Forbidden:   views.Forbidden,
		ServerError: views.ServerError,
	}
}

// App wires together the backend, the per-browser client registry, the
// handlers and the middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Registry *Registry
	Views    ViewFuncs

	newBackend   func() blog.Backend
	closer       io.Closer
	authLimiter  *LoginLimiter
	stop         context.CancelFunc
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App with the given configuration and views.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     v,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the backend (unless one was supplied with WithBackend) and
// installs middleware and routes. Start calls it; tests call it directly.
func (a *App) Setup(ctx context.Context) error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("blogpost: SessionSecret is required")
	}

	if a.newBackend == nil {
		newBackend, closer, err := openBackend(ctx, a.Config)
		if err != nil {
			return fmt.Errorf("blogpost: init backend: %w", err)
		}
		a.newBackend = newBackend
		a.closer = closer
	}

	bg, stop := context.WithCancel(context.Background())
	a.stop = stop
	a.Registry = NewRegistry(bg, a.newBackend, a.Config.ClientTTL)
	a.authLimiter = NewLoginLimiter(bg, 5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and serves until ctx is cancelled, then shuts the
// server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}
	errc := make(chan error, 1)
	go func() {
		errc <- a.Echo.Start(a.Config.Addr)
	}()
	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.Echo.Shutdown(shutdownCtx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)

	e.GET("/register/", a.handleRegisterForm)
	e.POST("/register/", a.handleRegister)
	e.GET("/login/", a.handleLoginForm)
	e.POST("/login/", a.handleLogin)
	e.POST("/login/dismiss/", a.handleDismissError)

	// Everything below needs a signed-in user.
	g := e.Group("", a.requireUser)
	g.GET("/", a.handleHome)
	g.GET("/account/", a.handleAccount)
	g.POST("/logout/", a.handleLogout)
	g.GET("/blogs/", a.handleBlogs)
	g.GET("/blogs/create/", a.handleCreateForm)
	g.POST("/blogs/create/", a.handleCreate)
	g.GET("/blogs/:id/", a.handleDetail)
	g.GET("/blogs/update/:id/", a.handleUpdateForm)
	g.POST("/blogs/update/:id/", a.handleUpdate)
	g.GET("/blogs/delete/:id/", a.handleDeleteForm)
	g.POST("/blogs/delete/:id/", a.handleDelete)
}

// Close stops background work and releases the backend.
func (a *App) Close() error {
	if a.stop != nil {
		a.stop()
	}
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("blogpost: required environment variable %s is not set", key)
	}
	return v
}
