package app

import (
	"context"
	"fmt"

	"github.com/five82/holonet/internal/config"
	"github.com/five82/holonet/internal/detail"
	"github.com/five82/holonet/internal/logger"
	"github.com/five82/holonet/internal/prefs"
	"github.com/five82/holonet/internal/state"
	"github.com/five82/holonet/internal/swapi"
	"github.com/five82/holonet/internal/ui"
)

// Options configure the holonet application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/holonet/prefs.toml
	OpenRoute  string // initial route such as "/character/1"; empty opens the list
	LogLevel   string // overrides log_level from the config file when set
}

// rateBurst lets the detail fan-out fire a handful of requests at once
// before pacing kicks in.
const rateBurst = 10

// Run boots the holonet TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.LogLevel != "" {
		if !logger.ValidLevel(opts.LogLevel) {
			return fmt.Errorf("unknown log level %q", opts.LogLevel)
		}
		cfg.LogLevel = opts.LogLevel
	}

	start, err := ui.ParseRoute(opts.OpenRoute)
	if err != nil {
		return fmt.Errorf("open route: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	client, err := swapi.NewClient(cfg.APIURL,
		swapi.WithTimeout(cfg.RequestTimeout),
		swapi.WithRateLimit(cfg.RateLimit, rateBurst),
		swapi.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	kv, err := openStore(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Warn("close storage failed", logger.Error(err))
		}
	}()

	store := state.Open(ctx, kv, log)
	userPrefs := prefs.Load(opts.PrefsPath)

	log.Info("holonet starting",
		logger.String("api", cfg.APIURL),
		logger.String("storage", cfg.Storage.Backend),
		logger.String("route", start.String()),
	)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Details:   detail.New(client, log, cfg.Concurrency),
		Store:     store,
		Logger:    log,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		LogFile:   cfg.LogFile,
		Start:     start,
	})
	if err != nil && ctx.Err() != nil {
		// A signal ended the program; tea reports that as ErrProgramKilled.
		log.Debug("ui stopped after cancellation", logger.Error(err))
		return nil
	}
	return err
}
