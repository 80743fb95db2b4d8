// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the theme or file involved and
// remediation hints. The Issue catalog holds Markdown guidance for the failure
// classes of theme resolution, rendered for the terminal with glamour.
package issue
