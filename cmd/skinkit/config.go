// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skinkit/skinkit/internal/config"
)

// settableKeys lists the keys accepted by `skinkit config set`.
var settableKeys = []string{
	"standard_root", "user_root", "standard_url", "user_url",
	"default_theme", "standard_themes", "language", "debug",
	"core_package", "general_scripts_url", "packages_file", "survey_store",
	"ui.color_scheme", "ui.verbose",
}

// newConfigCommand creates the `skinkit config` command tree.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage skinkit configuration",
		Long: `Manage skinkit configuration.

Configuration is stored in:
  - Linux: ~/.config/skinkit/config.cue
  - macOS: ~/Library/Application Support/skinkit/config.cue
  - Windows: %APPDATA%\skinkit\config.cue

Every key can also be set through a SKINKIT_ environment variable,
for example SKINKIT_DEFAULT_THEME or SKINKIT_UI_VERBOSE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: withDiagnostics(app, rootFlags, func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context(), rootFlags)
			if err != nil {
				return err
			}
			showConfig(app.stdout, cfg)
			return nil
		}),
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: withDiagnostics(app, rootFlags, func(_ *cobra.Command, _ []string) error {
			path, err := configPath(rootFlags)
			if err != nil {
				return err
			}
			created, err := config.CreateDefaultConfig(path)
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s %s already exists\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		}),
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := configPath(rootFlags)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a configuration value.\n\nValid keys: " + strings.Join(settableKeys, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: withDiagnostics(app, rootFlags, func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), rootFlags)
			if err != nil {
				return err
			}
			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Source == "" {
				if cfg.Source, err = configPath(rootFlags); err != nil {
					return err
				}
			}
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(app.stdout, "%s Set %s = %s\n", SuccessStyle.Render("✓"), args[0], args[1])
			return nil
		}),
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: withDiagnostics(app, rootFlags, func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context(), rootFlags)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		}),
	})

	return cfgCmd
}

// configPath is the --config file or the default config file.
func configPath(flags *rootFlagValues) (string, error) {
	if flags.configPath != "" {
		return flags.configPath, nil
	}
	return config.ConfigFilePath("")
}

func showConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	source := cfg.Source
	if source == "" {
		source = SubtitleStyle.Render("(using defaults)")
	}
	row := func(key, value string) {
		fmt.Fprintf(w, "%s %s\n", PackageStyle.Render(key+":"), value)
	}
	row("config file", source)
	fmt.Fprintln(w)
	row("standard_root", cfg.StandardRoot)
	row("user_root", cfg.UserRoot)
	row("standard_url", cfg.StandardURL)
	row("user_url", cfg.UserURL)
	row("default_theme", SuccessStyle.Render(cfg.DefaultTheme))
	row("standard_themes", strings.Join(cfg.StandardThemes, ", "))
	row("language", cfg.Language)
	row("debug", strconv.FormatBool(cfg.Debug))
	row("core_package", cfg.CorePackage)
	row("general_scripts_url", cfg.GeneralScriptsURL)
	row("packages_file", orNone(cfg.PackagesFile, "(built-in packages)"))
	row("survey_store", orNone(cfg.SurveyStore, "(disabled)"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, PackageStyle.Render("ui:"))
	fmt.Fprintf(w, "  color_scheme: %s\n", cfg.UI.ColorScheme)
	fmt.Fprintf(w, "  verbose: %v\n", cfg.UI.Verbose)
}

func orNone(value, placeholder string) string {
	if value == "" {
		return SubtitleStyle.Render(placeholder)
	}
	return value
}

// setConfigValue applies one key. Validation of the result is left to
// Config.Validate.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "standard_root":
		cfg.StandardRoot = value
	case "user_root":
		cfg.UserRoot = value
	case "standard_url":
		cfg.StandardURL = value
	case "user_url":
		cfg.UserURL = value
	case "default_theme":
		cfg.DefaultTheme = value
	case "standard_themes":
		var names []string
		for name := range strings.SplitSeq(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		cfg.StandardThemes = names
	case "language":
		cfg.Language = value
	case "debug":
		cfg.Debug = parseBool(value)
	case "core_package":
		cfg.CorePackage = value
	case "general_scripts_url":
		cfg.GeneralScriptsURL = value
	case "packages_file":
		cfg.PackagesFile = value
	case "survey_store":
		cfg.SurveyStore = value
	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)
	case "ui.verbose":
		cfg.UI.Verbose = parseBool(value)
	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(settableKeys, ", "))
	}
	return nil
}

func parseBool(value string) bool {
	return slices.Contains([]string{"true", "1", "yes", "on"}, strings.ToLower(value))
}
