// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Installed is a theme directory found under one of the roots.
type Installed struct {
	Name       string
	Path       string
	IsStandard bool
	// Extends is the declared mother theme, empty for chain roots.
	Extends string
	// Err is set when the manifest could not be loaded.
	Err error
}

// ThemeDir returns the directory name maps to under the configured roots,
// whether or not it exists.
func (r *Resolver) ThemeDir(name string) string {
	return r.themeDir(name, slices.Contains(r.opts.StandardThemes, name))
}

// Installed lists the standard themes present under the standard root,
// then every directory under the user root, each group sorted by name.
// Directories without a manifest are skipped.
func (r *Resolver) Installed() ([]Installed, error) {
	standard, err := scanRoot(r.opts.StandardRoot, func(name string) bool {
		return slices.Contains(r.opts.StandardThemes, name)
	})
	if err != nil {
		return nil, err
	}
	user, err := scanRoot(r.opts.UserRoot, func(name string) bool {
		return !slices.Contains(r.opts.StandardThemes, name)
	})
	if err != nil {
		return nil, err
	}
	for i := range standard {
		standard[i].IsStandard = true
	}
	return append(standard, user...), nil
}

func scanRoot(root string, keep func(string) bool) ([]Installed, error) {
	if root == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list themes in %s: %w", root, err)
	}

	var out []Installed
	for _, e := range entries {
		if !e.IsDir() || !keep(e.Name()) {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, ok := ManifestPath(dir); !ok {
			continue
		}
		it := Installed{Name: e.Name(), Path: dir}
		if m, loadErr := LoadManifest(dir); loadErr != nil {
			it.Err = loadErr
		} else {
			it.Extends = m.Extends()
		}
		out = append(out, it)
	}
	return out, nil
}
