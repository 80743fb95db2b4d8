// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the palette used for rendered help and issues.
	ColorScheme string

	// UIConfig holds terminal presentation settings.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}

	// Config is the skinkit application configuration.
	Config struct {
		// StandardRoot holds the built-in themes.
		StandardRoot string `json:"standard_root" mapstructure:"standard_root"`
		// UserRoot holds custom themes.
		UserRoot string `json:"user_root" mapstructure:"user_root"`
		// StandardURL is the URL prefix of StandardRoot.
		StandardURL string `json:"standard_url" mapstructure:"standard_url"`
		// UserURL is the URL prefix of UserRoot.
		UserURL string `json:"user_url" mapstructure:"user_url"`
		// DefaultTheme is used when neither a theme nor a survey is given.
		DefaultTheme string `json:"default_theme" mapstructure:"default_theme"`
		// StandardThemes lists the themes resolved under StandardRoot.
		StandardThemes []string `json:"standard_themes" mapstructure:"standard_themes"`
		Language       string   `json:"language" mapstructure:"language"`
		Debug          bool     `json:"debug" mapstructure:"debug"`
		// CorePackage is appended to every theme's dependencies.
		CorePackage       string `json:"core_package" mapstructure:"core_package"`
		GeneralScriptsURL string `json:"general_scripts_url" mapstructure:"general_scripts_url"`
		// PackagesFile seeds the registry; empty uses the built-in packages.
		PackagesFile string `json:"packages_file" mapstructure:"packages_file"`
		// SurveyStore is the YAML survey-to-theme file; empty disables it.
		SurveyStore string   `json:"survey_store" mapstructure:"survey_store"`
		UI          UIConfig `json:"ui" mapstructure:"ui"`

		// Source is the file the configuration was loaded from, if any.
		Source string `json:"-" mapstructure:"-"`
	}

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects field-level validation failures.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme so callers can use errors.Is for programmatic detection.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate returns nil if the ColorScheme is one of the defined schemes.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// GlamourStyle maps the scheme to a glamour standard style name.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeDark:
		return "dark"
	case ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig so callers can use errors.Is for programmatic detection.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks the constraints the CUE schema cannot express.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.StandardRoot) == "" {
		errs = append(errs, errors.New("standard_root must not be empty"))
	}
	if strings.TrimSpace(c.UserRoot) == "" {
		errs = append(errs, errors.New("user_root must not be empty"))
	}
	if strings.TrimSpace(c.CorePackage) == "" {
		errs = append(errs, errors.New("core_package must not be empty"))
	}
	seen := make(map[string]bool, len(c.StandardThemes))
	for i, name := range c.StandardThemes {
		if seen[name] {
			errs = append(errs, fmt.Errorf("standard_themes[%d]: duplicate theme %q", i, name))
		}
		seen[name] = true
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// IsStandardTheme reports whether name is listed in StandardThemes.
func (c *Config) IsStandardTheme(name string) bool {
	return slices.Contains(c.StandardThemes, name)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		StandardRoot:      "themes/core",
		UserRoot:          "upload/themes",
		StandardURL:       "/themes/core",
		UserURL:           "/upload/themes",
		DefaultTheme:      "default",
		StandardThemes:    []string{"default", "vanilla", "fruity", "bootswatch"},
		Language:          "en",
		Debug:             false,
		CorePackage:       "survey-public",
		GeneralScriptsURL: "/assets/scripts/",
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
