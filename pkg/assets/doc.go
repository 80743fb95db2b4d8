// SPDX-License-Identifier: MPL-2.0

// Package assets holds the asset package registry that theme resolution
// publishes into.
//
// A PackageSpec is a named bundle of CSS and JS files with an ordered depends
// list. The registry is explicit state passed to whoever needs it rather than a
// process-wide singleton; MemoryRegistry guards every mutation with a lock and
// offers Transact for multi-step rewrites that must not interleave with other
// resolutions. LoadOrder flattens the transitive depends graph into the order
// files must reach the page, and Export writes the registry as YAML, TOML or JSON.
package assets
