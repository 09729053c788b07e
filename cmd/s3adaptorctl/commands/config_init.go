package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lattixfs/s3adaptor/cmd/s3adaptorctl/cmdutil"
	"github.com/lattixfs/s3adaptor/pkg/config"
)

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration file",
	Long: `Write a sample configuration file populated with s3adaptor's defaults.

Examples:
  # Write to the default location
  s3adaptorctl config init

  # Write to a specific path, overwriting if it exists
  s3adaptorctl config init --config ./s3adaptor.yaml --force`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	var (
		path string
		err  error
	)
	if cmdutil.Flags.ConfigPath != "" {
		path, err = config.InitConfigToPath(cmdutil.Flags.ConfigPath, configInitForce)
	} else {
		path, err = config.InitConfig(configInitForce)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Configuration file created at: %s\n", path)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the file to set your bucket, region, and geometry")
	fmt.Printf("  2. Validate it with: s3adaptorctl config validate --config %s\n", path)
	return nil
}
