// SPDX-License-Identifier: MPL-2.0

package assets

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

type (
	// Format is a registry export encoding.
	Format string

	// Snapshot is the exported view of a registry.
	Snapshot struct {
		Packages []PackageSpec     `json:"packages" yaml:"packages" toml:"package"`
		Scripts  []Script          `json:"scripts,omitempty" yaml:"scripts,omitempty" toml:"script,omitempty"`
		Aliases  map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	}
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatTOML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected yaml, toml or json)", s)
	}
}

// SnapshotOf captures the current packages, scripts and aliases of reg.
func SnapshotOf(reg Registry) Snapshot {
	return Snapshot{
		Packages: reg.Packages(),
		Scripts:  reg.Scripts(),
		Aliases:  reg.Aliases(),
	}
}

// Export writes snap to w in the given format.
func Export(w io.Writer, snap Snapshot, format Format) error {
	return Encode(w, snap, format)
}

// Encode writes any tagged value in the given format. The CLI uses it for
// resolution reports next to registry snapshots.
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q", string(format))
	}
}
