// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/opensbom-generator/npmlock/npm"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
	outputText = "text"
)

// writeValue encodes v as JSON or YAML. YAML goes through the JSON
// encoding first so both formats use the lockfile field names.
func writeValue(w io.Writer, format string, v interface{}) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic interface{}
		if err := json.Unmarshal(b, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// writeDependencies prints one dependency per line: name, version, flags.
func writeDependencies(w io.Writer, format string, deps []npm.SimpleDependency) error {
	if format != outputText {
		return writeValue(w, format, deps)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range deps {
		flags := ""
		switch {
		case d.Dev && d.Optional:
			flags = "dev,optional"
		case d.Dev:
			flags = "dev"
		case d.Optional:
			flags = "optional"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.Version, flags)
	}
	return tw.Flush()
}
