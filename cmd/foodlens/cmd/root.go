// Package cmd contains the foodlens CLI commands.
package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/foodlens/internal/app"
	"github.com/five82/foodlens/internal/config"
)

// ErrReported is returned when a command already printed its failure.
var ErrReported = errors.New("failure already reported")

// Flag names double as viper keys; FOODLENS_API_URL overrides api-url and so on.
const (
	flagConfig   = "config"
	flagAPIURL   = "api-url"
	flagTimeout  = "timeout"
	flagLogFile  = "log-file"
	flagLogLevel = "log-level"
	flagPrefs    = "prefs-file"
	flagTheme    = "theme"
)

type settings struct {
	v *viper.Viper
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&settings{v: viper.New()})
}

func newRootCmd(s *settings) *cobra.Command {
	root := &cobra.Command{
		Use:   "foodlens [image]",
		Short: "Estimate nutrition for a photo of food",
		Long: `FoodLens sends a food photo to the analysis service and shows the
estimated name, description, vegetarian flag, calories, quality score and
macronutrients.

Running 'foodlens' launches the interactive TUI. Pass an image path to
pre-select it, or use 'foodlens analyze <image>' for a one-shot result.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.config()
			if err != nil {
				return err
			}
			var image string
			if len(args) == 1 {
				image = args[0]
			}
			return app.Run(cmd.Context(), app.Options{
				Config:        cfg,
				ImagePath:     image,
				ThemeOverride: s.get(flagTheme) != "",
			})
		},
	}

	flags := root.PersistentFlags()
	flags.String(flagConfig, "", "config file (default is "+config.DefaultPath+")")
	flags.String(flagAPIURL, "", "analysis service base URL (default "+config.DefaultAPIURL+")")
	flags.String(flagTimeout, "", "request timeout such as 45s (default none)")
	flags.String(flagLogFile, "", "write diagnostic logs to this file")
	flags.String(flagLogLevel, "", "log level: debug, info, warn or error")
	flags.String(flagTheme, "", "color theme: Nightfox, Kanagawa or Slate")
	flags.String(flagPrefs, "", "remember theme and last folder in this file")

	for _, name := range []string{flagConfig, flagAPIURL, flagTimeout, flagLogFile, flagLogLevel, flagTheme, flagPrefs} {
		_ = s.v.BindPFlag(name, flags.Lookup(name))
	}
	s.v.SetEnvPrefix("FOODLENS")
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()

	root.AddCommand(newAnalyzeCmd(s))
	return root
}

// config loads the TOML file and layers flag and environment overrides on top.
func (s *settings) config() (config.Config, error) {
	cfg, err := config.Load(s.v.GetString(flagConfig))
	if err != nil {
		return config.Config{}, err
	}

	if v := s.get(flagAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := s.get(flagTimeout); v != "" {
		if cfg.RequestTimeout, err = config.ParseTimeout(v); err != nil {
			return config.Config{}, err
		}
	}
	if v := s.get(flagLogFile); v != "" {
		path, err := config.ExpandPath(v)
		if err != nil {
			return config.Config{}, err
		}
		cfg.LogFile = path
	}
	if v := s.get(flagPrefs); v != "" {
		path, err := config.ExpandPath(v)
		if err != nil {
			return config.Config{}, err
		}
		cfg.PrefsFile = path
	}
	if v := s.get(flagLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := s.get(flagTheme); v != "" {
		cfg.Theme = v
	}
	return cfg, nil
}

func (s *settings) get(key string) string {
	return strings.TrimSpace(s.v.GetString(key))
}
