// Package cmd holds the skygaze CLI commands.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-envconfig"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/cobra"

	"github.com/skygaze/skygaze/internal/cache"
	"github.com/skygaze/skygaze/internal/fetch"
	"github.com/skygaze/skygaze/internal/logging"
	"github.com/skygaze/skygaze/internal/migrations"
	"github.com/skygaze/skygaze/internal/nasa"
	"github.com/skygaze/skygaze/internal/notify"
	"github.com/skygaze/skygaze/internal/skygaze"
)

// Set by the linker at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type config struct {
	NASAAPIKey string `env:"NASA_API_KEY, default=DEMO_KEY"`
	Database   string `env:"DATABASE, default=skygaze.db"`

	// Override the upstream hosts, mostly for poking at mirrors.
	APIBaseURL  string `env:"NASA_API_BASE_URL"`
	EPICBaseURL string `env:"EPIC_BASE_URL"`

	// Which format to use for logging: either text or json
	LoggerFormat string `env:"LOGGER_FORMAT, default=text"`

	// Which cache backend to use: either sqlite or none
	CacheBackend string `env:"CACHE_BACKEND, default=sqlite"`
}

// app bundles everything a command needs once the config is processed
// and the cache is open.
type app struct {
	cfg    config
	dbx    *sqlx.DB
	sqlite *cache.SQLite
	orch   *fetch.Orchestrator
	center *notify.Center
}

func (a *app) Close() {
	if a.dbx != nil {
		_ = a.dbx.Close()
	}
}

func setup(ctx context.Context) (*app, error) {
	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %s", err)
	}

	logging.Setup(cfg.LoggerFormat)

	a := &app{cfg: cfg}

	var store skygaze.Store
	switch cfg.CacheBackend {
	case "none":
		store = cache.NewMemory()
	default:
		dbx, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.dbx = dbx

		s := cache.NewSQLite(dbx)
		a.sqlite = &s
		store = s
	}

	opts := []nasa.Option{}
	if cfg.APIBaseURL != "" {
		opts = append(opts, nasa.WithAPIBaseURL(cfg.APIBaseURL))
	}
	if cfg.EPICBaseURL != "" {
		opts = append(opts, nasa.WithEPICBaseURL(cfg.EPICBaseURL))
	}
	client := nasa.NewClient(cfg.NASAAPIKey, opts...)

	a.center = notify.NewCenter()
	a.orch = fetch.New(store, client, client, client, a.center)
	a.orch.Seed(ctx)

	return a, nil
}

func openDatabase(ctx context.Context, path string) (*sqlx.DB, error) {
	dbx, err := sqlx.Open("sqlite", fmt.Sprintf("%s?_txlock=immediate&_journal_mode=WAL&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %s", err)
	}

	// Retry until any writer holding the file lets go
	if err := retry.Fibonacci(ctx, 100*time.Millisecond, func(ctx context.Context) error {
		if err := dbx.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("error reaching database: %s", err)
	}

	// Migrate, always
	if err := migrations.Run(dbx); err != nil {
		return nil, fmt.Errorf("error migrating: %s", err)
	}

	return dbx, nil
}

var rootCmd = &cobra.Command{
	Use:   "skygaze",
	Short: "Browse NASA's space imagery from the terminal",
	Long: `Skygaze pulls imagery from NASA's open APIs and keeps the last
result of each feature cached locally:

  - EPIC enhanced Earth imagery for a chosen date
  - Mars rover photos by rover and Earth date
  - The astronomy picture of the day

Run without a subcommand to open the interactive UI.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tuiCmd.RunE(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd)
}
