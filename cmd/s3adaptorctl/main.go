// Command s3adaptorctl is the CLI companion for the s3adaptor library: it
// generates and validates the YAML configuration s3adaptor.Config expects,
// and drives a live write/read round trip against a configured backend.
package main

import (
	"fmt"
	"os"

	"github.com/lattixfs/s3adaptor/cmd/s3adaptorctl/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
