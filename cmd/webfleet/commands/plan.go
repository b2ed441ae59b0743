package commands

import (
	"github.com/spf13/cobra"

	"github.com/webfleet/webfleet/cmd/webfleet/handlers"
)

// Plan returns the command that reports the gap between desired and
// observed state without changing anything.
func Plan() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what apply would change",
		Long: `Show, per desired resource, whether it already exists and whether the
configuration step would run. Nothing is created, modified, or deleted.

Examples:
  webfleet plan
  webfleet plan -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: webfleet.yaml)")

	return cmd
}
