// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the skinkit CLI: theme resolution, registry export,
// last_update maintenance and the supporting configuration commands.
package cmd
