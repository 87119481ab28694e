package blogpost

import (
	"strconv"
	"strings"
	"time"

	"github.com/eringen/blogpost/blog"
)

// Backend kinds accepted by SiteConfig.Backend.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
)

// SiteConfig holds all configuration for a blogpost site.
type SiteConfig struct {
	Name string // Site name (default "Blog App")
	Addr string // Listen address (default ":3000")

	Backend     string // sqlite, postgres or supabase (default sqlite)
	DatabaseURL string // SQLite path or Postgres DSN (default "data/blog.db")

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string // optional, enables token verification

	SessionSecret string // Required: cookie session secret
	CookieSecure  bool   // Set true for HTTPS

	ClientTTL time.Duration // Idle time before a browser's state is dropped (default 12h)
	PageSize  int           // Posts per listing page (default 4)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog App"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Backend == "" {
		c.Backend = BackendSQLite
	}
	if c.DatabaseURL == "" && c.Backend == BackendSQLite {
		c.DatabaseURL = "data/blog.db"
	}
	if c.ClientTTL == 0 {
		c.ClientTTL = 12 * time.Hour
	}
	if c.PageSize <= 0 {
		c.PageSize = 4
	}
}

// ConfigFromEnv reads a SiteConfig from environment variables.
// SESSION_SECRET is required.
func ConfigFromEnv() SiteConfig {
	cfg := SiteConfig{
		Name:              EnvOr("SITE_NAME", ""),
		Addr:              EnvOr("ADDR", ""),
		Backend:           strings.ToLower(EnvOr("BACKEND", "")),
		DatabaseURL:       EnvOr("DATABASE_URL", ""),
		SupabaseURL:       EnvOr("SUPABASE_URL", ""),
		SupabaseAnonKey:   EnvOr("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret: EnvOr("SUPABASE_JWT_SECRET", ""),
		SessionSecret:     MustEnv("SESSION_SECRET"),
		CookieSecure:      strings.EqualFold(EnvOr("COOKIE_SECURE", ""), "true"),
	}
	if d, err := time.ParseDuration(EnvOr("CLIENT_TTL", "")); err == nil {
		cfg.ClientTTL = d
	}
	if n, err := strconv.Atoi(EnvOr("PAGE_SIZE", "")); err == nil {
		cfg.PageSize = n
	}
	return cfg
}

// Option configures additional App behavior.
type Option func(*App)

// WithBackend replaces the configured backend. newBackend is called once
// per browser session; it may return the same value every time when the
// backend holds no per-user state.
func WithBackend(newBackend func() blog.Backend) Option {
	return func(a *App) {
		a.newBackend = newBackend
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
