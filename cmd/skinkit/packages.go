// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/skinkit/skinkit/pkg/assets"
	"github.com/skinkit/skinkit/pkg/theme"
)

func newPackagesCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "packages [theme...]",
		Short: "Export the package registry",
		Long: `Export the package registry, including scripts and path aliases.

Each named theme is resolved first so its template packages appear in the
export next to the seeded framework packages.`,
	}
	cmd.RunE = withDiagnostics(app, rootFlags, func(cmd *cobra.Command, args []string) error {
		f, err := assets.ParseFormat(format)
		if err != nil {
			return err
		}
		s, err := app.newSession(cmd.Context(), rootFlags)
		if err != nil {
			return err
		}
		for _, name := range args {
			if _, err := s.resolver.Resolve(cmd.Context(), theme.Request{Name: name}); err != nil {
				return explain(err, "resolve theme", name)
			}
		}
		return assets.Export(app.stdout, assets.SnapshotOf(s.registry), f)
	})
	cmd.Flags().StringVarP(&format, "format", "f", string(assets.FormatYAML), "output format: yaml, toml or json")
	return cmd
}
