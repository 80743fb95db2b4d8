// SPDX-License-Identifier: MPL-2.0

package assets

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/skinkit/skinkit/pkg/cueutil"
)

var (
	//go:embed packages_schema.cue
	packagesSchema string

	//go:embed default_packages.cue
	defaultPackages []byte
)

type (
	seedPackage struct {
		BaseURL  string   `json:"baseUrl"`
		BasePath string   `json:"basePath"`
		CSS      []string `json:"css"`
		JS       []string `json:"js"`
		Depends  []string `json:"depends"`
	}

	seedDoc struct {
		Packages map[string]seedPackage `json:"packages"`
		Scripts  []Script               `json:"scripts"`
	}
)

// LoadSeed parses a packages.cue document and publishes its packages, in name
// order, and its scripts.
func LoadSeed(reg Registry, data []byte, filename string) error {
	result, err := cueutil.ParseAndDecodeString[seedDoc](
		packagesSchema,
		data,
		"#Packages",
		cueutil.WithFilename(filename),
	)
	if err != nil {
		return fmt.Errorf("load package seed: %w", err)
	}

	doc := result.Value
	for _, name := range slices.Sorted(maps.Keys(doc.Packages)) {
		p := doc.Packages[name]
		reg.Publish(PackageSpec{
			Name:     name,
			BaseURL:  p.BaseURL,
			BasePath: p.BasePath,
			CSS:      p.CSS,
			JS:       p.JS,
			Depends:  p.Depends,
		})
	}
	for _, s := range doc.Scripts {
		reg.RegisterScript(s)
	}
	return nil
}

// LoadSeedFile reads path and passes it to LoadSeed.
func LoadSeedFile(reg Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read package seed: %w", err)
	}
	return LoadSeed(reg, data, path)
}

// LoadDefaults publishes the built-in base packages.
func LoadDefaults(reg Registry) error {
	return LoadSeed(reg, defaultPackages, "default_packages.cue")
}
