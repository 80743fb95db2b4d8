// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath string
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath string
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	fileProvider struct{}

	// ThemeSettings exposes the default_theme setting of a loaded Config and
	// persists changes with Save.
	ThemeSettings struct {
		mu  sync.Mutex
		cfg *Config
	}
)

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	return loadWithOptions(ctx, opts)
}

// NewThemeSettings wraps cfg.
func NewThemeSettings(cfg *Config) *ThemeSettings {
	return &ThemeSettings{cfg: cfg}
}

// DefaultTheme returns the configured default theme.
func (s *ThemeSettings) DefaultTheme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.DefaultTheme
}

// SetDefaultTheme updates default_theme and writes only that field to the
// config file. Environment overrides merged into the loaded Config stay out
// of the file.
func (s *ThemeSettings) SetDefaultTheme(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.DefaultTheme == name {
		return nil
	}
	path := s.cfg.Source
	if path == "" {
		var err error
		if path, err = ConfigFilePath(""); err != nil {
			return err
		}
	}
	if err := SaveDefaultTheme(path, name); err != nil {
		return err
	}
	s.cfg.DefaultTheme = name
	return nil
}
