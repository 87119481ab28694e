package blogpost

import (
	"context"
	"fmt"
	"io"

	"github.com/eringen/blogpost/backend/sqlstore"
	"github.com/eringen/blogpost/backend/supabase"
	"github.com/eringen/blogpost/blog"
)

// openBackend builds the backend factory for cfg.Backend. SQL stores are
// shared by every browser; Supabase clients hold a user's token and are
// created per browser.
func openBackend(ctx context.Context, cfg SiteConfig) (func() blog.Backend, io.Closer, error) {
	switch cfg.Backend {
	case BackendSQLite, BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("DatabaseURL is required for %s", cfg.Backend)
		}
		s, err := sqlstore.Open(ctx, sqlstore.Dialect(cfg.Backend), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return func() blog.Backend { return s }, s, nil
	case BackendSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
			return nil, nil, fmt.Errorf("SupabaseURL and SupabaseAnonKey are required")
		}
		sc := supabase.Config{
			URL:       cfg.SupabaseURL,
			AnonKey:   cfg.SupabaseAnonKey,
			JWTSecret: cfg.SupabaseJWTSecret,
		}
		return func() blog.Backend { return supabase.New(sc) }, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
