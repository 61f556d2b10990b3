package app

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/five82/foodlens/internal/config"
	"github.com/five82/foodlens/internal/foodlens"
	"github.com/five82/foodlens/internal/logging"
	"github.com/five82/foodlens/internal/prefs"
	"github.com/five82/foodlens/internal/state"
	"github.com/five82/foodlens/internal/ui"
)

// Options configure the FoodLens application.
type Options struct {
	Config    config.Config
	ImagePath string // optional; pre-selects this image
	// ThemeOverride is set when the theme came from a flag or environment
	// variable; it then wins over the theme saved in prefs.
	ThemeOverride bool
}

// Env holds what every entry point shares: the logger and the API client.
type Env struct {
	Config config.Config
	Logger *logrus.Logger
	Client *foodlens.Client

	closer io.Closer
}

// NewEnv builds the logger and client from cfg.
func NewEnv(cfg config.Config) (*Env, error) {
	logger, closer, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := foodlens.NewClient(cfg.APIURL,
		foodlens.WithTimeout(cfg.RequestTimeout),
		foodlens.WithLogger(logger),
	)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init foodlens client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": client.Endpoint(),
		"timeout":  cfg.RequestTimeout.String(),
	}).Debug("foodlens client ready")

	return &Env{Config: cfg, Logger: logger, Client: client, closer: closer}, nil
}

// Close flushes and closes the log file.
func (e *Env) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Run boots the FoodLens TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := NewEnv(opts.Config)
	if err != nil {
		return err
	}
	defer env.Close()

	store := &state.Store{}
	defer store.Close()

	var (
		saved     prefs.Prefs
		savePrefs func(prefs.Prefs)
	)
	if path := opts.Config.PrefsFile; path != "" {
		if saved, err = prefs.Load(path); err != nil {
			env.Logger.WithError(err).WithField("path", path).Warn("prefs ignored")
		}
		savePrefs = func(p prefs.Prefs) {
			if err := prefs.Save(path, p); err != nil {
				env.Logger.WithError(err).WithField("path", path).Warn("save prefs failed")
			}
		}
	}

	env.Logger.Info("foodlens started")
	defer env.Logger.Info("foodlens stopped")

	return ui.Run(ui.Options{
		Context:   ctx,
		Analyzer:  env.Client,
		Store:     store,
		Logger:    env.Logger,
		ThemeName: themeName(opts, saved),
		LogFile:   opts.Config.LogFile,
		Endpoint:  env.Client.Endpoint(),
		ImagePath: opts.ImagePath,
		StartDir:  saved.LastDir,
		SavePrefs: savePrefs,
	})
}

// themeName picks the session theme: flag or env, then prefs, then config.
func themeName(opts Options, saved prefs.Prefs) string {
	if opts.ThemeOverride || saved.Theme == "" {
		return opts.Config.Theme
	}
	return saved.Theme
}
