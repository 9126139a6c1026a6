package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the API health endpoint",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	_, client := buildClient()
	h, err := client.HealthCheck(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", h.Service, h.Status)
	return nil
}
