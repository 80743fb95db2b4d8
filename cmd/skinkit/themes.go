// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skinkit/skinkit/pkg/theme"
)

func newThemesCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List themes and manage the default theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List installed themes",
		Args:  cobra.NoArgs,
	}
	listCmd.RunE = withDiagnostics(app, rootFlags, func(cmd *cobra.Command, _ []string) error {
		s, err := app.newSession(cmd.Context(), rootFlags)
		if err != nil {
			return err
		}
		installed, err := s.resolver.Installed()
		if err != nil {
			return err
		}
		current := theme.FilterName(s.settings.DefaultTheme())
		for _, it := range installed {
			marker := "  "
			if it.Name == current {
				marker = SuccessStyle.Render("* ")
			}
			kind := "custom"
			if it.IsStandard {
				kind = "standard"
			}
			line := marker + PackageStyle.Render(it.Name) + " " + SubtitleStyle.Render("("+kind+")")
			switch {
			case it.Err != nil:
				line += " " + ErrorStyle.Render(it.Err.Error())
			case it.Extends != "":
				line += " extends " + it.Extends
			}
			fmt.Fprintln(app.stdout, line)
		}
		return nil
	})

	defaultCmd := &cobra.Command{
		Use:   "default [theme]",
		Short: "Show or set the default theme",
		Args:  cobra.MaximumNArgs(1),
	}
	defaultCmd.RunE = withDiagnostics(app, rootFlags, func(cmd *cobra.Command, args []string) error {
		s, err := app.newSession(cmd.Context(), rootFlags)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			fmt.Fprintln(app.stdout, s.settings.DefaultTheme())
			return nil
		}
		name := theme.FilterName(args[0])
		if _, err := theme.LoadManifest(s.resolver.ThemeDir(name)); err != nil {
			return explain(err, "set default theme", name)
		}
		if err := s.settings.SetDefaultTheme(name); err != nil {
			return err
		}
		fmt.Fprintln(app.stdout, SuccessStyle.Render("Default theme set to ")+PackageStyle.Render(name))
		return nil
	})

	themesCmd.AddCommand(listCmd, defaultCmd)
	return themesCmd
}
