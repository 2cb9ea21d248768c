// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// newLogger builds the logger handed to the parser. Diagnostics go to w
// so they never mix with the command output.
func newLogger(w io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	switch format {
	case logFormatText:
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case logFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logger, nil
}
