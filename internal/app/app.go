package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/filter"
	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/tmdb"
	"github.com/five82/marquee/internal/ui"
)

// Options configure a marquee run. Zero values fall back to config.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/marquee/prefs.toml

	// LogLevel and Filter override the config file when set.
	LogLevel string
	Filter   string

	// LogOutput receives logs for non-interactive runs. The TUI owns the
	// terminal, so it always logs to the configured file instead.
	LogOutput io.Writer

	Version string
}

// Env is the wired object graph shared by the TUI and the one-shot commands.
type Env struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Client  *tmdb.Client
	Filter  *filter.Filter
	Fetcher *catalog.Fetcher
	Store   *state.Store

	closers []io.Closer
}

// Bootstrap loads configuration and builds every dependency. interactive
// selects file logging for the TUI. Callers must Close the returned Env.
func Bootstrap(opts Options, interactive bool) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if lvl := strings.TrimSpace(opts.LogLevel); lvl != "" {
		cfg.Logging.Level = strings.ToLower(lvl)
	}
	if expr := strings.TrimSpace(opts.Filter); expr != "" {
		cfg.Search.Filter = expr
	}

	env := &Env{Config: cfg}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	if interactive {
		f, err := logging.OpenFile(cfg.LogFilePath())
		if err != nil {
			return nil, err
		}
		env.closers = append(env.closers, f)
		out = f
	}
	env.Logger = logging.New(cfg.Logging, out)

	env.Filter, err = filter.Compile(cfg.Search.Filter)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("compile filter: %w", err)
	}

	version := opts.Version
	if version == "" {
		version = "dev"
	}
	env.Client, err = tmdb.NewClient(tmdb.Options{
		BaseURL:   cfg.TMDB.BaseURL,
		APIKey:    cfg.TMDB.APIKey,
		Timeout:   cfg.TMDB.Timeout,
		UserAgent: "marquee/" + version,
		Logger:    env.Logger.With().Str("component", "tmdb").Logger(),
	})
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init tmdb client: %w", err)
	}

	env.Fetcher = catalog.NewFetcher(env.Client,
		env.Logger.With().Str("component", "catalog").Logger(),
		catalog.WithFilter(env.Filter))

	policy := state.ApplyInArrivalOrder
	if cfg.Search.DiscardStale {
		policy = state.DiscardStale
	}
	env.Store = state.NewStore(policy)

	env.Logger.Debug().
		Str("config", cfg.Path).
		Str("base_url", cfg.TMDB.BaseURL).
		Dur("debounce", cfg.Search.Debounce).
		Bool("discard_stale", cfg.Search.DiscardStale).
		Str("filter", env.Filter.Expression()).
		Msg("marquee initialized")

	return env, nil
}

// Query runs one fetch through the store, the same path the TUI uses.
func (e *Env) Query(ctx context.Context, query string) catalog.Outcome {
	return e.Store.Refresh(ctx, e.Fetcher, query)
}

// Close releases the log file, if one was opened.
func (e *Env) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c.Close())
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Run boots the marquee TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Bootstrap(opts, true)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		env.Logger.Warn().Err(err).Msg("using default preferences")
	}

	env.Logger.Info().Str("theme", userPrefs.Theme).Msg("starting ui")
	err = ui.Run(ui.Options{
		Context:     ctx,
		Fetcher:     env.Fetcher,
		Store:       env.Store,
		Debounce:    env.Config.Search.Debounce,
		ThemeName:   userPrefs.Theme,
		ShowDetails: userPrefs.ShowDetails,
		PrefsPath:   opts.PrefsPath,
		FilterExpr:  env.Filter.Expression(),
		Logger:      env.Logger.With().Str("component", "ui").Logger(),
	})
	if err != nil {
		env.Logger.Error().Err(err).Msg("ui exited")
		return fmt.Errorf("run ui: %w", err)
	}
	env.Logger.Info().Msg("ui closed")
	return nil
}
