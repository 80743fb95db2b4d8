// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/skinkit/skinkit/cmd/skinkit"

func main() {
	cmd.Execute()
}
