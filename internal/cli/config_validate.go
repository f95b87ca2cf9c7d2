package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stateledger/budgetextract/internal/config"
)

// NewConfigValidateCmd creates the 'config validate' command.
func NewConfigValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the current configuration",
		Long:  "Loads ~/.budgetextract/config.yaml and reports whether every setting is valid.",
		Example: `  # Validate the current configuration
  budgetextract config validate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.New()
			_ = cfg.Load()

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration is invalid: %w", err)
			}

			cmd.Printf("Configuration is valid\n")

			return nil
		},
	}

	return cmd
}
