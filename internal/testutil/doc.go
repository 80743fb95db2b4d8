// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides the Must* filesystem and environment helpers, ThemeTree writes
// standard and user theme roots with config.xml manifests, and FakeClock gives
// deterministic timestamps for last_update rewrites.
package testutil
