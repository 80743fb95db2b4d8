// SPDX-License-Identifier: MPL-2.0

// Package survey stores which theme each survey uses.
//
// The store is a YAML file mapping survey ids to theme names:
//
//	surveys:
//	  "123456": fruity
//	  "987654": vanilla
//
// The file is re-read when its modification time changes, so edits made by
// other processes are picked up without a restart.
package survey
