// SPDX-License-Identifier: MPL-2.0

// Package theme resolves survey themes into merged descriptors and publishes
// their asset packages.
//
// A theme lives in a directory holding a manifest (config.xml, or
// manifest.cue). A manifest may extend a mother theme; resolution walks that
// chain, merges the fallback fields (apiVersion, view and files directories,
// logo) from the nearest level that defines them, and publishes one
// "survey-template-<name>" package per level into an assets.Registry, mother
// first. Each level's package depends on its CSS framework packages, the core
// package, the packages its manifest declares and, last, its mother's package.
//
// Framework overrides declared under engine.cssframework rewrite the shared
// framework package in place (the replaced files are removed) and publish a
// "<framework>-template" package that carries the theme's own files.
package theme
