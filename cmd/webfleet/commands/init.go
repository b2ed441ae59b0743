package commands

import (
	"github.com/spf13/cobra"

	"github.com/webfleet/webfleet/cmd/webfleet/handlers"
)

// Init returns the command for interactively creating an environment
// configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "webfleet.yaml")
//	--force: Overwrite an existing file
func Init() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create an environment configuration",
		Long: `Interactively create an environment configuration file.

This command guides you through configuring the environment step by step:

  - Environment name
  - AWS region
  - Number of managed web nodes
  - Instance type

Everything else gets a sensible default and can be edited in the
generated file afterwards.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Init(outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "webfleet.yaml", "Output file path")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
