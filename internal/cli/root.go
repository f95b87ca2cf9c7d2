package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/stateledger/budgetextract/internal/config"
	"github.com/stateledger/budgetextract/internal/logging"
)

// NewRootCmd creates the root Cobra command for the budgetextract CLI.
// It wires up logging, tracing, and audit logging from the resolved
// configuration, and attaches the extract, batch, review, and config
// subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "budgetextract",
		Short:   "Recover structured budget tables from Nigerian state budget PDFs",
		Long:    "budgetextract: extract structured administrative, economic, programme, and summary tables from state government budget PDFs.",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			result, ctx := setupLogging(cmd)
			logResult = result
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return logResult.Close()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(NewExtractCmd(), NewBatchCmd(), NewReviewCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Extract structured tables from one budget PDF
  budgetextract extract --input Adamawa_2025_budget.pdf --output result.json

  # Extract from several PDFs with a bounded worker pool
  budgetextract batch --input-dir ./budgets --output-dir ./results --workers 4

  # Render a prior run's diagnostics as a terminal table
  budgetextract review result.json

  # Initialize configuration
  budgetextract config init

  # Set configuration values
  budgetextract config set output.default_format json`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}

// setupLogging resolves configuration, builds the logger and audit logger,
// and returns a context carrying both plus a trace ID. The --debug flag
// overrides the configured log level to "debug".
func setupLogging(cmd *cobra.Command) (logging.LogPathResult, context.Context) {
	cfg := config.New()

	logCfg := cfg.Logging.ToLoggingConfig()

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
	}

	result := logging.NewLoggerWithPath(logCfg)

	traceID := logging.GetOrGenerateTraceID(cmd.Context())
	ctx := logging.ContextWithTraceID(cmd.Context(), traceID)
	ctx = result.Logger.WithContext(ctx)

	auditLogger := logging.NewAuditLogger(logging.AuditLoggerConfig{
		Enabled: cfg.Logging.Audit.Enabled,
		File:    cfg.Logging.Audit.File,
	})
	ctx = logging.ContextWithAuditLogger(ctx, auditLogger)

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	}
	if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	return result, ctx
}
