// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/skinkit/skinkit/internal/config"
	"github.com/skinkit/skinkit/internal/issue"
	"github.com/skinkit/skinkit/internal/survey"
	"github.com/skinkit/skinkit/pkg/assets"
	"github.com/skinkit/skinkit/pkg/theme"
)

type (
	// App wires CLI services. Command handlers receive an App and build a
	// session per invocation from the loaded configuration.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies are the injection points of NewApp. Nil fields get
	// production defaults.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}

	// session is everything one command invocation needs, built from a
	// single configuration load.
	session struct {
		cfg      *config.Config
		registry *assets.MemoryRegistry
		settings *config.ThemeSettings
		// surveys is nil when no survey_store is configured.
		surveys  *survey.FileStore
		resolver *theme.Resolver
		logger   *log.Logger
	}
)

// NewApp creates an App, filling unset dependencies with defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// loadConfig loads the configuration named by the root flags.
func (a *App) loadConfig(ctx context.Context, flags *rootFlagValues) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
}

// newSession loads configuration, seeds the package registry and builds the
// resolver.
func (a *App) newSession(ctx context.Context, flags *rootFlagValues) (*session, error) {
	cfg, err := a.loadConfig(ctx, flags)
	if err != nil {
		return nil, err
	}

	level := log.WarnLevel
	if flags.verbose || cfg.UI.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: "skinkit",
		Level:  level,
	})

	registry := assets.NewMemoryRegistry()
	if cfg.PackagesFile != "" {
		err = assets.LoadSeedFile(registry, cfg.PackagesFile)
	} else {
		err = assets.LoadDefaults(registry)
	}
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("seed package registry").
			WithResource(cfg.PackagesFile).
			WithSuggestion("Check packages_file against the package schema").
			WithSuggestion("Remove packages_file to use the built-in packages").
			Wrap(err).
			BuildError()
	}

	s := &session{
		cfg:      cfg,
		registry: registry,
		settings: config.NewThemeSettings(cfg),
		logger:   logger,
	}

	opts := theme.Options{
		StandardRoot:      cfg.StandardRoot,
		UserRoot:          cfg.UserRoot,
		StandardURL:       cfg.StandardURL,
		UserURL:           cfg.UserURL,
		StandardThemes:    cfg.StandardThemes,
		Language:          cfg.Language,
		Debug:             cfg.Debug,
		CorePackage:       cfg.CorePackage,
		GeneralScriptsURL: cfg.GeneralScriptsURL,
		Defaults:          s.settings,
		Logger:            logger,
	}
	if cfg.SurveyStore != "" {
		s.surveys = survey.NewFileStore(cfg.SurveyStore)
		opts.Surveys = s.surveys
	}
	s.resolver = theme.NewResolver(registry, opts)
	return s, nil
}
