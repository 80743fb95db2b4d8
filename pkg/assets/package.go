// SPDX-License-Identifier: MPL-2.0

package assets

import (
	"fmt"
	"slices"
)

const (
	// KindCSS selects a package's stylesheet list.
	KindCSS Kind = "css"
	// KindJS selects a package's script list.
	KindJS Kind = "js"

	// PositionHead places a script in the document head.
	PositionHead ScriptPosition = "head"
	// PositionBegin places a script right after the opening body tag.
	PositionBegin ScriptPosition = "begin"
	// PositionEnd places a script right before the closing body tag.
	PositionEnd ScriptPosition = "end"
)

type (
	// Kind is a file list of a package.
	Kind string

	// ScriptPosition is where a registered script is injected.
	ScriptPosition string

	// PackageSpec is the registry unit: a named bundle of files plus the
	// packages it depends on. Names are unique; publishing an existing name
	// replaces the previous spec.
	PackageSpec struct {
		Name string `json:"name" yaml:"name" toml:"name"`
		// BaseURL is the URL the files are served from during development.
		BaseURL string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty" toml:"baseUrl,omitempty"`
		// BasePath is a path alias resolved through Registry.Alias.
		BasePath string   `json:"basePath,omitempty" yaml:"basePath,omitempty" toml:"basePath,omitempty"`
		CSS      []string `json:"css" yaml:"css" toml:"css"`
		JS       []string `json:"js" yaml:"js" toml:"js"`
		// Depends is ordered; order is cascade precedence.
		Depends []string `json:"depends" yaml:"depends" toml:"depends"`
	}

	// Script is a standalone script registration outside any package.
	Script struct {
		URL      string         `json:"url" yaml:"url" toml:"url"`
		Position ScriptPosition `json:"position" yaml:"position" toml:"position"`
	}
)

// Validate checks that k names a file list.
func (k Kind) Validate() error {
	switch k {
	case KindCSS, KindJS:
		return nil
	default:
		return fmt.Errorf("invalid file kind %q (expected css or js)", string(k))
	}
}

// Clone returns a deep copy of the spec.
func (p PackageSpec) Clone() PackageSpec {
	p.CSS = slices.Clone(p.CSS)
	p.JS = slices.Clone(p.JS)
	p.Depends = slices.Clone(p.Depends)
	return p
}

// Files returns the file list for kind.
func (p *PackageSpec) Files(kind Kind) []string {
	if kind == KindJS {
		return p.JS
	}
	return p.CSS
}

// SetFiles replaces the file list for kind.
func (p *PackageSpec) SetFiles(kind Kind, files []string) {
	if kind == KindJS {
		p.JS = files
		return
	}
	p.CSS = files
}

// Without returns files minus every entry in drop, keeping order.
func Without(files, drop []string) []string {
	if len(drop) == 0 {
		return slices.Clone(files)
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		if !slices.Contains(drop, f) {
			out = append(out, f)
		}
	}
	return out
}
