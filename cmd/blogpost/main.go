// Command blogpost serves the blog or prepares its database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/docopt/docopt-go"
	"github.com/golang/glog"

	"github.com/eringen/blogpost"
	"github.com/eringen/blogpost/backend/sqlstore"
)

// version is set at build time via ldflags.
var version = "dev"

const usage = `Blog server.

Configuration is read from the environment: SESSION_SECRET (required),
BACKEND (sqlite, postgres or supabase), DATABASE_URL, SUPABASE_URL,
SUPABASE_ANON_KEY, SUPABASE_JWT_SECRET, SITE_NAME, ADDR, COOKIE_SECURE,
CLIENT_TTL and PAGE_SIZE.

Usage:
    blogpost serve [--addr=<addr>] [--v=<level>]
    blogpost migrate [--v=<level>]
    blogpost version
    blogpost -h | --help

Options:
    -h --help         Show this screen.
    --version         Show version.
    --addr=<addr>     Listen address, overrides ADDR.
    --v=<level>       Log verbosity [default: 0].
`

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// glog reads its settings from the standard flag set.
	flag.Set("logtostderr", "true")
	if v, err := opts.String("--v"); err == nil {
		flag.Set("v", v)
	}
	flag.CommandLine.Parse(nil)
	defer glog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case flagSet(opts, "serve"):
		err = serve(ctx, opts)
	case flagSet(opts, "migrate"):
		err = migrate(ctx)
	case flagSet(opts, "version"):
		fmt.Printf("blogpost %s\n", version)
	}
	if err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func flagSet(opts docopt.Opts, key string) bool {
	b, _ := opts.Bool(key)
	return b
}

func serve(ctx context.Context, opts docopt.Opts) error {
	cfg := blogpost.ConfigFromEnv()
	if addr, err := opts.String("--addr"); err == nil && addr != "" {
		cfg.Addr = addr
	}
	app := blogpost.New(cfg, blogpost.DefaultViews())
	defer app.Close()
	glog.Infof("blogpost %s listening on %s (%s backend)", version, app.Config.Addr, app.Config.Backend)
	return app.Start(ctx)
}

// migrate applies pending schema migrations for the SQL backends.
func migrate(ctx context.Context) error {
	backend := blogpost.EnvOr("BACKEND", blogpost.BackendSQLite)
	if backend != blogpost.BackendSQLite && backend != blogpost.BackendPostgres {
		return fmt.Errorf("migrate: backend %q has no local schema", backend)
	}
	dsn := blogpost.EnvOr("DATABASE_URL", "")
	if dsn == "" {
		if backend == blogpost.BackendPostgres {
			return fmt.Errorf("migrate: DATABASE_URL is required for postgres")
		}
		dsn = "data/blog.db"
	}
	s, err := sqlstore.Open(ctx, sqlstore.Dialect(backend), dsn)
	if err != nil {
		return err
	}
	return s.Close()
}
