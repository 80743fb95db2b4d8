// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skinkit/skinkit/pkg/theme"
)

func newTouchCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "touch <theme>...",
		Short: "Refresh the last_update stamp of themes",
		Long: `Write the current time into each theme's metadatas/last_update and
bump the theme directory's modification time, so published asset
bundles are rebuilt.`,
		Args: cobra.MinimumNArgs(1),
	}
	cmd.RunE = withDiagnostics(app, rootFlags, func(cmd *cobra.Command, args []string) error {
		s, err := app.newSession(cmd.Context(), rootFlags)
		if err != nil {
			return err
		}
		for _, name := range args {
			dir := s.resolver.ThemeDir(theme.FilterName(name))
			stamp, err := theme.TouchLastUpdate(dir, theme.SystemClock{})
			if err != nil {
				return explain(err, "touch theme", dir)
			}
			fmt.Fprintf(app.stdout, "%s %s %s\n",
				SuccessStyle.Render("✓"),
				PackageStyle.Render(name),
				SubtitleStyle.Render(stamp.Format(theme.LastUpdateLayout)))
		}
		return nil
	})
	return cmd
}
