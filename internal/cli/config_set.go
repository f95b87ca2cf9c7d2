package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stateledger/budgetextract/internal/config"
)

// NewConfigSetCmd creates the 'config set' command.
func NewConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value using dot notation.

Configuration keys:
  output.default_format        - Output format (json, ndjson)
  output.precision              - Decimal precision for numbers (0-10)
  extraction.target_year_mode   - Target year inference mode (auto, filename)
  extraction.pdftotext_path     - Path to the pdftotext binary
  extraction.pdfinfo_path       - Path to the pdfinfo binary
  extraction.default_output_dir - Default directory for extraction output
  logging.level                 - Log level (trace, debug, info, warn, error)
  logging.format                - Log format (json, console, text)
  logging.file                  - Log file path`,
		Example: `  # Set output format to JSON
  budgetextract config set output.default_format json

  # Set target year inference mode
  budgetextract config set extraction.target_year_mode filename`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			cfg := config.New()
			_ = cfg.Load()

			if err := cfg.Set(key, value); err != nil {
				return fmt.Errorf("setting config value: %w", err)
			}

			if err := cfg.Save(); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}

			cmd.Printf("Configuration %s set to %s\n", key, value)

			return nil
		},
	}

	return cmd
}
