package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/stateledger/budgetextract/internal/config"
)

// NewConfigGetCmd creates the 'config get' command.
func NewConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long:  "Gets a configuration value using dot notation from ~/.budgetextract/config.yaml.",
		Example: `  # Get default output format
  budgetextract config get output.default_format

  # Get the target year inference mode
  budgetextract config get extraction.target_year_mode

  # Get logging level
  budgetextract config get logging.level`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			cfg := config.New()
			_ = cfg.Load()

			value, err := cfg.Get(key)
			if err != nil {
				return fmt.Errorf("failed to get config value: %w", err)
			}

			formatAndPrintValue(cmd, key, value)

			return nil
		},
	}

	return cmd
}

// formatAndPrintValue formats and prints configuration values based on their type.
func formatAndPrintValue(cmd *cobra.Command, key string, value interface{}) {
	switch v := value.(type) {
	case string:
		cmd.Printf("%s\n", v)
	case int:
		cmd.Printf("%d\n", v)
	case map[string]interface{}:
		cmd.Printf("%s:\n", key)
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, subKey := range keys {
			cmd.Printf("  %s: %v\n", subKey, v[subKey])
		}
	default:
		cmd.Printf("%v\n", v)
	}
}
