// Package cmdutil provides shared state and helpers for s3adaptorctl's
// subcommands: the global flag values cobra's persistent flags are synced
// into, and the output-format dispatch every subcommand renders through.
package cmdutil

import (
	"io"

	"github.com/lattixfs/s3adaptor/internal/cli/output"
)

// Flags holds the values of s3adaptorctl's persistent flags, synced from
// cobra by the root command's PersistentPreRun so subcommands can read
// them without threading *cobra.Command through every call.
var Flags = &GlobalFlags{}

// GlobalFlags are the persistent flag values shared across subcommands.
type GlobalFlags struct {
	ConfigPath string
	Output     string
	NoColor    bool
	Verbose    bool
}

// OutputFormat returns the parsed --output flag value.
func OutputFormat() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// PrintResult renders data in the configured format: JSON/YAML marshal
// data directly, table format defers to tableRenderer.
func PrintResult(w io.Writer, data any, tableRenderer output.TableRenderer) error {
	format, err := OutputFormat()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		return output.PrintTable(w, tableRenderer)
	}
}
