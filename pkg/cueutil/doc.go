// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Theme manifests (manifest.cue), the application configuration (config.cue)
// and registry seed files (packages.cue) all follow the same 3-step flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed manifest_schema.cue
//	var manifestSchema string
//
//	result, err := cueutil.ParseAndDecodeString[manifestDoc](
//	    manifestSchema,
//	    data,
//	    "#Manifest",
//	    cueutil.WithFilename(path),
//	    cueutil.WithConcrete(false),
//	)
//	if err != nil {
//	    return nil, err // error carries the CUE path of the offending field
//	}
package cueutil
