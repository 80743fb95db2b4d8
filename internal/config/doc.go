// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/skinkit/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/skinkit/config.cue on macOS, %APPDATA%\skinkit\config.cue
// on Windows). It names the standard and user theme roots, the standard theme list, the
// default theme, the rendering language and the asset package settings. Every key can be
// overridden with a SKINKIT_ environment variable (e.g. SKINKIT_DEFAULT_THEME).
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
