package main

import (
	"fmt"

	"github.com/SscSPs/ledger_service/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.Migrate(cfg.DatabaseURL, database.Up)
		},
	}

	var confirmed bool
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("migrate down drops every ledger table; rerun with --yes")
			}
			return database.Migrate(cfg.DatabaseURL, database.Down)
		},
	}
	downCmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm dropping all ledger tables")

	cmd.AddCommand(upCmd, downCmd)
	return cmd
}
