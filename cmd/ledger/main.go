package main

import (
	"fmt"
	"os"

	"github.com/SscSPs/ledger_service/internal/platform/config"
	"github.com/SscSPs/ledger_service/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	rootCmd = &cobra.Command{
		Use:   "ledger",
		Short: "Double-entry ledger service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger.Init(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
		SilenceUsage: true,
	}
)

// @title Ledger Service API
// @version 1.0
// @description Double-entry ledger service: references, sub-journals, domains and ledger rules.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newInitCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
