// SPDX-License-Identifier: Apache-2.0

// Package cli implements the npmlock command-line interface.
package cli

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/opensbom-generator/npmlock/npm"
)

// CLI holds shared state for all commands.
type CLI struct {
	out    io.Writer
	errOut io.Writer
	logger *logrus.Logger

	logLevel  string
	logFormat string
	prefix    string
}

// New creates a CLI writing results to out and diagnostics to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{
		out:       out,
		errOut:    errOut,
		logLevel:  logrus.WarnLevel.String(),
		logFormat: logFormatText,
		prefix:    npm.DefaultInstallPrefix,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "npmlock",
		Short:         "npmlock reads npm package-lock.json files",
		Long:          `npmlock parses npm package-lock.json, npm-shrinkwrap.json and node_modules/.package-lock.json files of any lockfile version and prints the locked dependencies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(c.errOut, c.logLevel, c.logFormat)
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", c.logLevel, "log level (trace, debug, info, warn, error)")
	flags.StringVar(&c.logFormat, "log-format", c.logFormat, "log format (text, json)")
	flags.StringVar(&c.prefix, "install-prefix", c.prefix, "install directory prefix stripped from package keys")

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.depsCommand())

	return root
}

func (c *CLI) parser() *npm.Parser {
	return npm.NewParser(npm.WithLogger(c.logger), npm.WithInstallPrefix(c.prefix))
}
