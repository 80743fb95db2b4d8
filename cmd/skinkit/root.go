// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/skinkit/skinkit/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds the skinkit command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "skinkit",
		Short: "Resolve survey themes and their asset packages",
		Long: TitleStyle.Render("skinkit") + SubtitleStyle.Render(" - survey theme inheritance and asset packages") + `

skinkit resolves a theme through its extends chain, merges the
inherited settings and publishes one asset package per theme into a
package registry, ordered so that more specific styles load last.

` + SubtitleStyle.Render("Examples:") + `
  skinkit resolve fruity             Resolve a theme and show its chain
  skinkit resolve --survey 4711      Resolve the theme assigned to a survey
  skinkit packages --format toml     Export the package registry
  skinkit touch vanilla              Refresh a theme's last_update stamp
  skinkit watch                      Refresh stamps while editing themes`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/skinkit/config.cue)")

	rootCmd.AddCommand(newResolveCommand(app, flags))
	rootCmd.AddCommand(newPackagesCommand(app, flags))
	rootCmd.AddCommand(newTouchCommand(app, flags))
	rootCmd.AddCommand(newWatchCommand(app, flags))
	rootCmd.AddCommand(newThemesCommand(app, flags))
	rootCmd.AddCommand(newSurveyCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main.
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// withDiagnostics wraps a RunE body so actionable errors also print their
// catalog help before fang reports the error line.
func withDiagnostics(app *App, flags *rootFlagValues, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err == nil {
			return nil
		}
		scheme := config.ColorSchemeAuto
		if cfg, loadErr := app.loadConfig(cmd.Context(), flags); loadErr == nil {
			scheme = cfg.UI.ColorScheme
		}
		renderDiagnostics(app.stderr, err, flags.verbose, scheme)
		return err
	}
}
