package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		defaultDomain   string
		defaultLanguage string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Store the ledger rules and create the default domain",
		Long: "Stores the ledger rules read from LEDGER_* settings and creates the " +
			"default domain when it does not exist yet. Running it again updates the rules.",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer handle.Close()

			rules := cfg.LedgerRules
			if defaultDomain != "" {
				rules.Domain.Default = defaultDomain
			}
			if defaultLanguage != "" {
				rules.Language.Default = defaultLanguage
			}
			stored, err := handle.Services.Rules.InitLedger(cmd.Context(), rules)
			if err != nil {
				return err
			}
			log.Info().Str("default_domain", stored.Domain.Default).
				Str("default_language", stored.Language.Default).
				Msg("Ledger initialized")
			fmt.Fprintf(cmd.OutOrStdout(), "ledger initialized with default domain %s\n", stored.Domain.Default)
			return nil
		},
	}
	cmd.Flags().StringVar(&defaultDomain, "domain", "", "Default domain code (overrides LEDGER_DEFAULT_DOMAIN)")
	cmd.Flags().StringVar(&defaultLanguage, "language", "", "Default language (overrides LEDGER_DEFAULT_LANGUAGE)")
	return cmd
}
