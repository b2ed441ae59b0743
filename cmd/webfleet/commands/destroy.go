package commands

import (
	"github.com/spf13/cobra"

	"github.com/webfleet/webfleet/cmd/webfleet/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command removes all environment resources from AWS in
// dependency order: instances, security groups, key pair, route table,
// internet gateway, subnets, and the VPC.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the environment and all associated resources",
		Long: `Destroy removes all environment resources from AWS.

This command deletes all resources associated with the environment:
  - Control and managed node instances
  - Security groups
  - The EC2 key pair
  - Route table, internet gateway, subnets, and VPC
  - The environment's state record

Resources are deleted in dependency order to ensure clean teardown.

Example:
  webfleet destroy -c webfleet.yaml

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
