// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/skinkit/skinkit/pkg/assets"
)

type (
	// DefaultThemeStore holds the process-wide default theme setting.
	DefaultThemeStore interface {
		DefaultTheme() string
		SetDefaultTheme(name string) error
	}

	// SurveyThemes looks up the theme assigned to a survey.
	SurveyThemes interface {
		// ThemeFor returns the survey's theme. found is false for unknown surveys.
		ThemeFor(ctx context.Context, surveyID string) (theme string, found bool, err error)
	}

	// Options configures a Resolver.
	Options struct {
		// StandardRoot holds the built-in themes; UserRoot holds custom ones.
		StandardRoot string
		UserRoot     string
		// StandardURL and UserURL are the URL prefixes the roots are served under.
		StandardURL string
		UserURL     string
		// StandardThemes lists the names that resolve under StandardRoot.
		StandardThemes []string

		// Language is the active rendering language tag; it fixes the direction.
		Language          string
		Debug             bool
		CorePackage       string
		GeneralScriptsURL string

		Defaults DefaultThemeStore
		Surveys  SurveyThemes
		Logger   *log.Logger
	}

	// Request selects the theme to resolve. Name wins over SurveyID; with
	// neither, the configured default theme is used.
	Request struct {
		Name     string
		SurveyID string
	}

	// Resolver resolves themes and publishes their packages. One Resolver
	// runs one pass at a time.
	Resolver struct {
		opts      Options
		registry  assets.Registry
		logger    *log.Logger
		deps      *DependencyBuilder
		assembler *Assembler

		// mu serializes resolution passes.
		mu sync.Mutex
	}

	// level is one loaded, not yet finalized, theme of a chain.
	level struct {
		name       string
		path       string
		isStandard bool
		manifest   *Manifest
	}
)

// NewResolver creates a Resolver publishing into registry.
func NewResolver(registry assets.Registry, opts Options) *Resolver {
	logger := orDiscard(opts.Logger)
	frameworks := NewFrameworkBuilder(registry, logger)
	return &Resolver{
		opts:     opts,
		registry: registry,
		logger:   logger,
		deps:     NewDependencyBuilder(frameworks, opts.CorePackage),
		assembler: NewAssembler(registry, AssemblerOptions{
			Debug:             opts.Debug,
			GeneralScriptsURL: opts.GeneralScriptsURL,
			Logger:            logger,
		}),
	}
}

// Direction returns the rendering direction of the configured language.
func (r *Resolver) Direction() Direction {
	return DirectionFor(r.opts.Language)
}

// Resolve loads the requested theme and its ancestors, merges them, and
// publishes one package per level, mother first.
//
// A theme that extends itself, directly or through other themes, fails with
// a *CycleError. A chain whose root declares no apiVersion fails with a
// *MissingAttributeError. A missing theme directory falls back to the
// standard "default" theme; when the request has no survey, that fallback is
// also saved as the new default theme.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Descriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger := r.logger.With("pass", uuid.New().String())

	name, err := r.themeName(ctx, req)
	if err != nil {
		return nil, err
	}

	chain, err := r.walk(ctx, logger, name, req.SurveyID)
	if err != nil {
		return nil, err
	}

	dir := r.Direction()
	var mother *Descriptor
	for i := len(chain) - 1; i >= 0; i-- {
		d, err := r.finalize(chain[i], mother, dir)
		if err != nil {
			return nil, err
		}
		logger.Debug("theme resolved", "theme", d.Name, "package", d.PackageName, "depends", d.Depends)
		mother = d
	}
	return mother, nil
}

// themeName applies the name policy: explicit name, then the survey's
// theme, then the default theme.
func (r *Resolver) themeName(ctx context.Context, req Request) (string, error) {
	if req.Name != "" {
		return req.Name, nil
	}
	if req.SurveyID != "" && r.opts.Surveys != nil {
		theme, found, err := r.opts.Surveys.ThemeFor(ctx, req.SurveyID)
		if err != nil {
			return "", fmt.Errorf("look up theme of survey %s: %w", req.SurveyID, err)
		}
		if found {
			return FilterName(theme), nil
		}
	}
	if r.opts.Defaults == nil {
		return DefaultThemeName, nil
	}
	return FilterName(r.opts.Defaults.DefaultTheme()), nil
}

// walk loads manifests from the requested theme up to the root of its
// chain. Names are tracked per pass so a repeat is reported as a cycle.
func (r *Resolver) walk(ctx context.Context, logger *log.Logger, name, surveyID string) ([]level, error) {
	var (
		chain []level
		seen  = make(map[string]bool)
		names []string
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lvl, err := r.locate(logger, name, surveyID)
		if err != nil {
			return nil, err
		}

		names = append(names, lvl.name)
		if seen[lvl.name] {
			return nil, &CycleError{Chain: names}
		}
		seen[lvl.name] = true
		chain = append(chain, lvl)

		logger.Debug("theme manifest loaded", "theme", lvl.name, "path", lvl.path, "standard", lvl.isStandard)

		mother := lvl.manifest.Extends()
		if mother == "" {
			return chain, nil
		}
		// Mothers are resolved outside any survey context.
		name, surveyID = mother, ""
	}
}

// locate applies the standard-flag and path-fallback policies and loads the
// level's manifest.
func (r *Resolver) locate(logger *log.Logger, name, surveyID string) (level, error) {
	lvl := level{name: name, isStandard: slices.Contains(r.opts.StandardThemes, name)}
	lvl.path = r.themeDir(name, lvl.isStandard)

	if !isDir(lvl.path) {
		logger.Warn("theme directory missing, using default theme", "theme", name, "path", lvl.path)
		lvl.name = DefaultThemeName
		lvl.isStandard = true
		lvl.path = r.themeDir(DefaultThemeName, true)
		if surveyID == "" && r.opts.Defaults != nil {
			if err := r.opts.Defaults.SetDefaultTheme(DefaultThemeName); err != nil {
				logger.Warn("failed to persist default theme", "error", err)
			} else {
				logger.Warn("default theme reset", "theme", DefaultThemeName)
			}
		}
	}

	m, err := LoadManifest(lvl.path)
	if errors.Is(err, ErrManifestNotFound) {
		fallback := r.themeDir(lvl.name, true)
		logger.Debug("theme has no manifest, using standard location", "theme", lvl.name, "path", fallback)
		lvl.path = fallback
		m, err = LoadManifest(lvl.path)
	}
	if err != nil {
		return level{}, fmt.Errorf("load theme %q: %w", lvl.name, err)
	}
	lvl.manifest = m
	return lvl, nil
}

// finalize merges lvl over its resolved mother, computes its dependencies
// and publishes its package.
func (r *Resolver) finalize(lvl level, mother *Descriptor, dir Direction) (*Descriptor, error) {
	m := lvl.manifest
	d := &Descriptor{
		Name:         lvl.name,
		Path:         lvl.path,
		IsStandard:   lvl.isStandard,
		Manifest:     m,
		Mother:       mother,
		CSSFramework: m.Engine.CSSFramework,
		PackageName:  PackageNameFor(lvl.name),
		TemplateURL:  r.themeURL(lvl.name, lvl.isStandard),
		Direction:    dir,
	}
	if m.Engine.Packages != nil {
		d.Packages = *m.Engine.Packages
	}

	switch {
	case m.Metadata.APIVersion != nil:
		d.APIVersion = *m.Metadata.APIVersion
	case mother != nil:
		d.APIVersion = mother.APIVersion
	default:
		return nil, &MissingAttributeError{Theme: lvl.name, Attribute: "metadatas.apiVersion"}
	}

	d.ViewPath = r.localDir(d, m.Engine.ViewDirectory, func(p *Descriptor) string { return p.ViewPath })
	d.FilesPath = r.localDir(d, m.Engine.FilesDirectory, func(p *Descriptor) string { return p.FilesPath })
	switch {
	case m.Files.Logo != nil:
		d.SiteLogo = *m.Files.Logo
	case mother != nil:
		d.SiteLogo = mother.SiteLogo
	}

	deps, err := r.deps.Build(d)
	if err != nil {
		return nil, fmt.Errorf("build dependencies of theme %q: %w", d.Name, err)
	}
	d.Depends = deps

	if _, err := r.assembler.Assemble(d); err != nil {
		return nil, fmt.Errorf("assemble theme %q: %w", d.Name, err)
	}
	return d, nil
}

// localDir joins a declared directory to the theme path, or inherits the
// mother's value.
func (r *Resolver) localDir(d *Descriptor, declared *string, inherited func(*Descriptor) string) string {
	if declared != nil {
		return filepath.Join(d.Path, *declared)
	}
	if d.Mother != nil {
		return inherited(d.Mother)
	}
	return ""
}

func (r *Resolver) themeDir(name string, standard bool) string {
	if standard {
		return filepath.Join(r.opts.StandardRoot, name)
	}
	return filepath.Join(r.opts.UserRoot, name)
}

func (r *Resolver) themeURL(name string, standard bool) string {
	base := r.opts.UserURL
	if standard {
		base = r.opts.StandardURL
	}
	return strings.TrimRight(base, "/") + "/" + name + "/"
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
