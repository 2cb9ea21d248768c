// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/opensbom-generator/npmlock/internal/cli"
)

// set by the release build
var version = "dev"

func main() {
	c := cli.New(os.Stdout, os.Stderr)
	root := c.RootCommand()
	root.Version = version

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
