package commands

import (
	"github.com/spf13/cobra"

	"github.com/webfleet/webfleet/cmd/webfleet/handlers"
)

// Apply returns the command that creates or updates the environment.
//
// Optional flags:
//
//	--config, -c: Path to the environment YAML file (default: auto-detect webfleet.yaml)
//
// Credentials come from the default AWS credential chain (environment,
// shared config, instance role).
func Apply() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the environment",
		Long: `Create or update the web-server environment.

This command provisions the VPC, subnets, security groups, key pair, control
node, and managed nodes, writes the inventory, and runs the configuration
step against the control node. Re-running converges the environment; an
unchanged fleet skips the configuration step entirely.

If no config file is specified, it looks for webfleet.yaml in the current
directory. Use 'webfleet init' to create one.

Examples:
  # Stand up the environment from webfleet.yaml
  webfleet apply

  # Use a specific config file
  webfleet apply -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: webfleet.yaml)")

	return cmd
}
