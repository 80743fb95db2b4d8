// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"errors"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/skinkit/skinkit/pkg/assets"
)

// DebugDisableScript is registered at the end of the page when debug is off.
const DebugDisableScript = "deactivatedebug.js"

type (
	// Assembler publishes a resolved theme's own asset package.
	Assembler struct {
		registry          assets.Registry
		debug             bool
		generalScriptsURL string
		logger            *log.Logger
	}

	// AssemblerOptions configures an Assembler.
	AssemblerOptions struct {
		// Debug keeps debug helpers active; when false the debug-disabling
		// script is registered.
		Debug bool
		// GeneralScriptsURL prefixes DebugDisableScript.
		GeneralScriptsURL string
		Logger            *log.Logger
	}
)

// NewAssembler creates an Assembler publishing into registry.
func NewAssembler(registry assets.Registry, opts AssemblerOptions) *Assembler {
	return &Assembler{
		registry:          registry,
		debug:             opts.Debug,
		generalScriptsURL: opts.GeneralScriptsURL,
		logger:            orDiscard(opts.Logger),
	}
}

// Assemble publishes "survey-template-<name>" for d and returns it.
//
// Entries of files.css and files.js that carry a replace or remove directive
// act on the mother's published package: the replaced (or removed) file is
// deleted from it, and only a replace entry's own file is shipped. The
// active direction's files are appended after the theme's own. d.Depends
// must already be computed.
func (a *Assembler) Assemble(d *Descriptor) (assets.PackageSpec, error) {
	if d.PackageName == "" {
		return assets.PackageSpec{}, errors.New("theme descriptor has no package name")
	}

	a.registry.SetAlias(d.PathAlias(), d.Path)
	a.registry.SetAlias(d.ViewPathAlias(), d.ViewPath)

	var files Files
	if d.Manifest != nil {
		files = d.Manifest.Files
	}

	css := a.ownFiles(d, assets.KindCSS, files.CSS)
	js := a.ownFiles(d, assets.KindJS, files.JS)
	if set := files.Set(d.Direction); set != nil {
		css = append(css, a.ownFiles(d, assets.KindCSS, set.CSS)...)
		js = append(js, a.ownFiles(d, assets.KindJS, set.JS)...)
	}

	if !a.debug {
		a.registry.RegisterScript(assets.Script{
			URL:      a.generalScriptsURL + DebugDisableScript,
			Position: assets.PositionEnd,
		})
	}

	spec := assets.PackageSpec{
		Name:     d.PackageName,
		BaseURL:  d.TemplateURL,
		BasePath: d.PathAlias(),
		CSS:      css,
		JS:       js,
		Depends:  slices.Clone(d.Depends),
	}
	a.registry.Publish(spec)
	a.logger.Debug("theme package published", "theme", d.Name, "package", spec.Name,
		"css", len(css), "js", len(js), "depends", len(spec.Depends))
	return spec, nil
}

// ownFiles applies override directives to the mother's package and returns
// the files this level ships.
func (a *Assembler) ownFiles(d *Descriptor, kind assets.Kind, entries []FileEntry) []string {
	out := []string{}
	for _, e := range entries {
		if e.Replace == "" && !e.Remove {
			if e.File != "" {
				out = append(out, e.File)
			}
			continue
		}

		target := e.Replace
		if target == "" {
			target = e.File
		}
		if d.Mother == nil {
			a.logger.Warn("override directive without a mother theme ignored",
				"theme", d.Name, "kind", kind, "file", target)
		} else if !a.registry.RemoveFile(d.Mother.PackageName, kind, target) {
			a.logger.Debug("override target not present in mother package",
				"theme", d.Name, "mother", d.Mother.PackageName, "kind", kind, "file", target)
		}

		if !e.Remove && e.File != "" {
			out = append(out, e.File)
		}
	}
	return out
}
