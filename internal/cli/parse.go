// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/opensbom-generator/npmlock/npm"
)

func (c *CLI) parseCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse <lockfile|dir>",
		Short: "Print the normalized lockfile",
		Long:  `Parse a lockfile, or the lockfile detected in a project directory, and print both dependency views after normalization.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lock, err := c.load(args[0])
			if err != nil {
				return err
			}
			for _, name := range lock.UnresolvedLocalReferences() {
				c.logger.WithField("name", name).Warn("Local reference left unresolved")
			}
			return writeValue(c.out, output, lock)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "output format (json, yaml)")
	return cmd
}

func (c *CLI) depsCommand() *cobra.Command {
	var (
		output     string
		production bool
	)

	cmd := &cobra.Command{
		Use:   "deps <lockfile|dir>",
		Short: "List the top-level dependencies",
		Long:  `List the name, version and dev/optional flags of every top-level dependency, sorted by name and version.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lock, err := c.load(args[0])
			if err != nil {
				return err
			}
			deps := lock.SimpleDependencies()
			if production {
				deps = withoutDev(deps)
			}
			c.logger.Debugf("Listing %d dependencies", len(deps))
			return writeDependencies(c.out, output, deps)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&production, "production", false, "omit dev dependencies")
	return cmd
}

// load parses path directly, or the lockfile npm would use when path is a
// project directory.
func (c *CLI) load(path string) (*npm.PackageLock, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return c.parser().ParseDir(path)
	}
	return c.parser().ParseFile(path)
}

func withoutDev(deps []npm.SimpleDependency) []npm.SimpleDependency {
	kept := make([]npm.SimpleDependency, 0, len(deps))
	for _, d := range deps {
		if !d.Dev {
			kept = append(kept, d)
		}
	}
	return kept
}
