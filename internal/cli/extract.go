package cli

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stateledger/budgetextract/internal/config"
	"github.com/stateledger/budgetextract/internal/coordinator"
	"github.com/stateledger/budgetextract/internal/ingest"
	"github.com/stateledger/budgetextract/internal/logging"
	"github.com/stateledger/budgetextract/internal/outputschema"
	"github.com/stateledger/budgetextract/internal/schema"
)

// NewExtractCmd creates the 'extract' command, which runs the full pipeline
// over a single budget PDF: ingest, coordinate table extraction, validate
// the output against the result schema, and write the result as JSON.
func NewExtractCmd() *cobra.Command {
	var input, output, pdftotextPath, pdfinfoPath string

	cmd := &cobra.Command{
		Use:     "extract",
		Short:   "Extract structured tables from a single budget PDF",
		Example: `  budgetextract extract --input Adamawa_2025_budget.pdf --output result.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				return logging.InvalidArgumentError("--input", errors.New("required"))
			}

			cfg := config.GetGlobalConfig()
			if pdftotextPath == "" {
				pdftotextPath = cfg.Extraction.PdftotextPath
			}
			if pdfinfoPath == "" {
				pdfinfoPath = cfg.Extraction.PdfinfoPath
			}
			if output == "" && cfg.Extraction.DefaultOutputDir != "" {
				base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
				output = filepath.Join(cfg.Extraction.DefaultOutputDir, base+".json")
			}
			if output == "" {
				return logging.InvalidArgumentError("--output", errors.New("required"))
			}

			ctx := cmd.Context()
			start := time.Now()
			logger := logging.FromContext(ctx)
			auditLogger := logging.AuditLoggerFromContext(ctx)
			entry := logging.NewAuditEntry("extract", logging.TraceIDFromContext(ctx)).
				WithParameters(map[string]string{"input": input, "output": output})

			result, err := runExtract(ctx, extractOptions{
				input:         input,
				output:        output,
				pdftotextPath: pdftotextPath,
				pdfinfoPath:   pdfinfoPath,
			})
			if err != nil {
				entry.WithDuration(start).WithError(err.Error())
				auditLogger.Log(ctx, *entry)
				return err
			}

			rowCount := extractedRowCount(result)
			entry.WithDuration(start).WithSuccess(rowCount, len(result.Errors))
			auditLogger.Log(ctx, *entry)

			logger.Info().Str("status", result.Status).Int("errors", len(result.Errors)).Msg("extraction complete")
			cmd.Printf("Extraction complete: status=%s errors=%d\n", result.Status, len(result.Errors))

			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "path to the source budget PDF (required)")
	cmd.Flags().StringVar(&output, "output", "", "path to write the extracted result JSON (defaults to <default_output_dir>/<input name>.json)")
	cmd.Flags().StringVar(&pdftotextPath, "pdftotext-path", "", "override path to the pdftotext binary")
	cmd.Flags().StringVar(&pdfinfoPath, "pdfinfo-path", "", "override path to the pdfinfo binary")

	return cmd
}

// extractOptions bundles the inputs a single extraction run needs, shared
// between the extract and batch commands.
type extractOptions struct {
	input         string
	output        string
	pdftotextPath string
	pdfinfoPath   string
}

// runExtract ingests opts.input, coordinates table extraction, validates
// the result against the output schema, and writes it to opts.output.
func runExtract(ctx context.Context, opts extractOptions) (schema.ExtractionResult, error) {
	doc, err := ingest.LoadDocument(ctx, ingest.Options{
		PdftotextPath: opts.pdftotextPath,
		PdfinfoPath:   opts.pdfinfoPath,
	}, opts.input)
	if err != nil {
		return schema.ExtractionResult{}, err
	}

	result := coordinator.Run(doc.Pages, opts.input, doc.PdfPageCount)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return result, logging.DeveloperError("failed to marshal extraction result", "", err)
	}

	if err := outputschema.Validate(data); err != nil {
		return result, logging.SchemaValidationError(opts.output, err)
	}

	if err := os.WriteFile(opts.output, data, 0o600); err != nil {
		return result, logging.FileSystemError("write", opts.output, err)
	}

	return result, nil
}

// extractedRowCount sums the row counts across every table in result, for
// audit logging.
func extractedRowCount(result schema.ExtractionResult) int {
	return len(result.AdministrativeUnits) + len(result.RevenueBreakdown) +
		len(result.ExpenditureEconomic) + len(result.ProgrammeProjects) +
		len(result.Receipts) + len(result.FunctionalRows)
}
