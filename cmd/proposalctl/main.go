package main

import (
	"fmt"
	"os"

	"whitepaper-portal-api/config"
	"whitepaper-portal-api/services"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposalctl",
		Short: "Operator tool for whitepaper proposals",
		Long: `proposalctl inspects proposals stored by the portal and moves them
through review: submitted -> under_review -> approved -> funded.

It reads the same environment (.env, DB_*, SMTP_*, NATS_*) as the API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := config.InitDB(); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd(), showCmd(), advanceCmd(), migrateCmd())
	return cmd
}

func newStore() *services.SubmissionStore {
	return services.NewSubmissionStore(config.DB)
}
