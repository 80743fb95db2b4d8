// SPDX-License-Identifier: MPL-2.0

package assets

import (
	"fmt"

	"github.com/skinkit/skinkit/internal/dag"
)

// LoadOrder returns name and every package its depends lists reach, ordered so
// each package comes after all of its dependencies. Where no dependency edge
// decides, earlier-declared dependencies load first. Names without a published
// package are kept as leaves so missing packages are visible to the caller.
//
// A depends cycle yields a *dag.CycleError.
func LoadOrder(store Store, name string) ([]string, error) {
	if !store.HasPackage(name) {
		return nil, fmt.Errorf("package %q is not registered", name)
	}

	g := dag.FromRoot(name, func(n string) []string {
		spec, ok := store.Package(n)
		if !ok {
			return nil
		}
		return spec.Depends
	})

	order, err := g.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("load order for %s: %w", name, err)
	}
	return order, nil
}

// Bundle is the flattened file list of a package and its dependencies.
type Bundle struct {
	Packages []string
	CSS      []string
	JS       []string
	Missing  []string
}

// Flatten collects the CSS and JS of every package in LoadOrder(name), in load order.
func Flatten(store Store, name string) (Bundle, error) {
	order, err := LoadOrder(store, name)
	if err != nil {
		return Bundle{}, err
	}

	b := Bundle{Packages: order}
	for _, pkg := range order {
		spec, ok := store.Package(pkg)
		if !ok {
			b.Missing = append(b.Missing, pkg)
			continue
		}
		b.CSS = append(b.CSS, qualify(spec, spec.CSS)...)
		b.JS = append(b.JS, qualify(spec, spec.JS)...)
	}
	return b, nil
}

// qualify prefixes files with the package's base URL when it has one.
func qualify(spec PackageSpec, files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		if spec.BaseURL == "" {
			out = append(out, f)
			continue
		}
		out = append(out, joinURL(spec.BaseURL, f))
	}
	return out
}

func joinURL(base, file string) string {
	switch {
	case base == "":
		return file
	case base[len(base)-1] == '/':
		return base + file
	default:
		return base + "/" + file
	}
}
