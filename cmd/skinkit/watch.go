// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/skinkit/skinkit/internal/watch"
	"github.com/skinkit/skinkit/pkg/theme"
)

type watchFlagValues struct {
	standard    bool
	patterns    []string
	ignore      []string
	debounce    time.Duration
	clearScreen bool
}

func newWatchCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &watchFlagValues{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh last_update while theme files change",
		Long: `Watch the custom theme root and refresh each edited theme's
metadatas/last_update once edits settle. Use --standard to also watch
the built-in themes. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = withDiagnostics(app, rootFlags, func(cmd *cobra.Command, _ []string) error {
		s, err := app.newSession(cmd.Context(), rootFlags)
		if err != nil {
			return err
		}

		roots := []string{s.cfg.UserRoot}
		if flags.standard {
			roots = append(roots, s.cfg.StandardRoot)
		}

		var w *watch.Watcher
		w, err = watch.New(watch.Config{
			Roots:       roots,
			Patterns:    flags.patterns,
			Ignore:      flags.ignore,
			Debounce:    flags.debounce,
			ClearScreen: flags.clearScreen,
			Stdout:      app.stdout,
			Stderr:      app.stderr,
			OnChange: func(_ context.Context, changes []watch.Change) error {
				for _, c := range changes {
					// The rewrite below must not come back as an edit.
					if manifest, ok := theme.ManifestPath(c.Dir); ok {
						w.Quiet(manifest)
					}
					stamp, touchErr := theme.TouchLastUpdate(c.Dir, theme.SystemClock{})
					if touchErr != nil {
						s.logger.Warn("refresh failed", "theme", c.Theme, "error", touchErr)
						continue
					}
					fmt.Fprintf(app.stdout, "%s %s %s %s\n",
						SuccessStyle.Render("✓"),
						PackageStyle.Render(c.Theme),
						SubtitleStyle.Render(stamp.Format(theme.LastUpdateLayout)),
						VerboseStyle.Render(strings.Join(c.Files, ", ")))
				}
				return nil
			},
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("watching"), strings.Join(w.Roots(), ", "))
		return w.Run(cmd.Context())
	})

	cmd.Flags().BoolVar(&flags.standard, "standard", false, "also watch the standard theme root")
	cmd.Flags().StringSliceVar(&flags.patterns, "pattern", nil, "glob of theme files that trigger a refresh (repeatable)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob of paths to ignore (repeatable)")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", 500*time.Millisecond, "quiet period before refreshing")
	cmd.Flags().BoolVar(&flags.clearScreen, "clear", false, "clear the screen before each refresh")
	return cmd
}
