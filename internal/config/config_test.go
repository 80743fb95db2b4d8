// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/skinkit/skinkit/internal/issue"
	"github.com/skinkit/skinkit/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.DefaultTheme != "default" {
		t.Errorf("DefaultTheme = %q, want default", cfg.DefaultTheme)
	}
	if cfg.CorePackage != "survey-public" {
		t.Errorf("CorePackage = %q, want survey-public", cfg.CorePackage)
	}
	if !cfg.IsStandardTheme("vanilla") || cfg.IsStandardTheme("custom") {
		t.Errorf("IsStandardTheme mismatch for %v", cfg.StandardThemes)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q, want auto", cfg.UI.ColorScheme)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := DefaultConfig()
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.cue")
	testutil.MustWriteFile(t, path, `
standard_root: "/srv/themes/core"
default_theme: "fruity"
standard_themes: ["default", "fruity"]
language: "he"
debug: true
ui: color_scheme: "dark"
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := DefaultConfig()
	want.StandardRoot = "/srv/themes/core"
	want.DefaultTheme = "fruity"
	want.StandardThemes = []string{"default", "fruity"}
	want.Language = "he"
	want.Debug = true
	want.UI.ColorScheme = ColorSchemeDark
	want.Source = path
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `default_theme: `},
		{"unknown key", `container_engine: "podman"`},
		{"wrong type", `debug: "yes"`},
		{"bad theme name", `default_theme: "../etc"`},
		{"bad color scheme", `ui: color_scheme: "neon"`},
		{"empty core package", `core_package: ""`},
		{"duplicate standard theme", `standard_themes: ["a", "a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "custom.cue")
			testutil.MustWriteFile(t, path, tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatal("Load() expected error")
			}
			var actionable *issue.ActionableError
			if !errors.As(err, &actionable) {
				t.Fatalf("error %T is not an *issue.ActionableError", err)
			}
			if !actionable.HasSuggestions() {
				t.Error("error carries no suggestions")
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "missing.cue"),
	})
	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("Load() error = %v, want *issue.ActionableError", err)
	}
	if actionable.IssueID != issue.ConfigLoadFailedId {
		t.Errorf("IssueID = %v, want ConfigLoadFailedId", actionable.IssueID)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Load() error = %v, want context.Canceled", err)
	}
}

// Environment overrides mutate process state, so this test is not parallel.
func TestLoad_EnvOverride(t *testing.T) {
	restoreTheme := testutil.MustSetenv(t, "SKINKIT_DEFAULT_THEME", "vanilla")
	defer restoreTheme()
	restoreDebug := testutil.MustSetenv(t, "SKINKIT_DEBUG", "true")
	defer restoreDebug()
	restoreScheme := testutil.MustSetenv(t, "SKINKIT_UI_COLOR_SCHEME", "light")
	defer restoreScheme()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultTheme != "vanilla" || !cfg.Debug || cfg.UI.ColorScheme != ColorSchemeLight {
		t.Errorf("env overrides not applied: theme=%q debug=%v scheme=%q", cfg.DefaultTheme, cfg.Debug, cfg.UI.ColorScheme)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.DefaultTheme = "fruity"
	cfg.PackagesFile = "/etc/skinkit/packages.cue"
	cfg.SurveyStore = "/var/lib/skinkit/surveys.yaml"
	cfg.UI.Verbose = true

	dir := t.TempDir()
	path := filepath.Join(dir, "config.cue")
	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v\n%s", err, testutil.MustReadFile(t, path))
	}
	cfg.Source = path
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.cue")
	created, err := CreateDefaultConfig(path)
	if err != nil || !created {
		t.Fatalf("CreateDefaultConfig() = %v, %v", created, err)
	}
	if !strings.Contains(testutil.MustReadFile(t, path), `default_theme: "default"`) {
		t.Error("default config missing default_theme")
	}

	created, err = CreateDefaultConfig(path)
	if err != nil || created {
		t.Errorf("second CreateDefaultConfig() = %v, %v, want false, nil", created, err)
	}
}

func TestThemeSettings_Persists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.cue")
	cfg := DefaultConfig()
	cfg.DefaultTheme = "deleted"
	cfg.Source = path

	settings := NewThemeSettings(cfg)
	if got := settings.DefaultTheme(); got != "deleted" {
		t.Fatalf("DefaultTheme() = %q", got)
	}
	if err := settings.SetDefaultTheme("default"); err != nil {
		t.Fatalf("SetDefaultTheme() error = %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DefaultTheme != "default" {
		t.Errorf("persisted DefaultTheme = %q, want default", loaded.DefaultTheme)
	}
}

func TestThemeSettings_KeepsEnvOverridesOutOfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.cue")
	written := DefaultConfig()
	written.UserRoot = "/srv/themes/upload"
	if err := SaveTo(path, written); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	restoreRoot := testutil.MustSetenv(t, "SKINKIT_USER_ROOT", "/tmp/one-off-root")
	defer restoreRoot()
	restoreDebug := testutil.MustSetenv(t, "SKINKIT_DEBUG", "true")
	defer restoreDebug()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UserRoot != "/tmp/one-off-root" || !cfg.Debug {
		t.Fatalf("env overrides not applied: user_root=%q debug=%v", cfg.UserRoot, cfg.Debug)
	}
	if err := NewThemeSettings(cfg).SetDefaultTheme("fruity"); err != nil {
		t.Fatalf("SetDefaultTheme() error = %v", err)
	}

	content := collapseSpace(testutil.MustReadFile(t, path))
	for _, unwanted := range []string{"one-off-root", "debug: true"} {
		if strings.Contains(content, unwanted) {
			t.Errorf("config file picked up %q:\n%s", unwanted, content)
		}
	}
	for _, want := range []string{`"/srv/themes/upload"`, `default_theme: "fruity"`} {
		if !strings.Contains(content, want) {
			t.Errorf("config file lacks %q:\n%s", want, content)
		}
	}
	if cfg.DefaultTheme != "fruity" {
		t.Errorf("in-memory DefaultTheme = %q, want fruity", cfg.DefaultTheme)
	}
}

func TestSaveDefaultTheme(t *testing.T) {
	t.Parallel()

	t.Run("keeps other fields and comments", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.cue")
		src := "// hand written\nlanguage: \"ar\"\n\n// picked by the admin\ndefault_theme: \"harbor\"\n"
		testutil.MustWriteFile(t, path, src)

		if err := SaveDefaultTheme(path, "default"); err != nil {
			t.Fatalf("SaveDefaultTheme() error = %v", err)
		}
		content := collapseSpace(testutil.MustReadFile(t, path))
		for _, want := range []string{"// hand written", "// picked by the admin", `language: "ar"`, `default_theme: "default"`} {
			if !strings.Contains(content, want) {
				t.Errorf("file lacks %q:\n%s", want, content)
			}
		}
		if strings.Contains(content, "harbor") {
			t.Errorf("old value kept:\n%s", content)
		}
	})

	t.Run("missing file holds only default_theme", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "config.cue")
		if err := SaveDefaultTheme(path, "harbor"); err != nil {
			t.Fatalf("SaveDefaultTheme() error = %v", err)
		}
		cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		want := DefaultConfig()
		want.DefaultTheme = "harbor"
		want.Source = path
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("loaded config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.cue")
		testutil.MustWriteFile(t, path, "default_theme: {\n")
		if err := SaveDefaultTheme(path, "default"); err == nil {
			t.Error("SaveDefaultTheme() on malformed CUE succeeded")
		}
	})
}

// collapseSpace folds runs of whitespace so checks ignore CUE field alignment.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestColorScheme_Validate(t *testing.T) {
	t.Parallel()

	for _, c := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if err := c.Validate(); err != nil {
			t.Errorf("%q.Validate() = %v", c, err)
		}
	}
	err := ColorScheme("neon").Validate()
	if !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("Validate(neon) = %v, want ErrInvalidColorScheme", err)
	}
}

func TestConfigDir_Override(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer SetConfigDirOverride("")

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %q, want %q", got, dir)
	}
}
