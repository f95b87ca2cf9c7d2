package cli

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/stateledger/budgetextract/internal/ingest"
	"github.com/stateledger/budgetextract/internal/logging"
	"github.com/stateledger/budgetextract/internal/reviewreport"
	"github.com/stateledger/budgetextract/internal/schema"
	"github.com/stateledger/budgetextract/internal/tui"
)

// NewReviewCmd creates the 'review' command, which loads a previously
// written extraction result and renders its diagnostics (error counts,
// sector rollups, sections observed) as a terminal table.
func NewReviewCmd() *cobra.Command {
	var sourcePDF string
	var plain, noColor, forceColor bool

	cmd := &cobra.Command{
		Use:     "review <result.json>",
		Short:   "Render diagnostics for a prior extraction run",
		Args:    cobra.ExactArgs(1),
		Example: `  budgetextract review result.json --source Adamawa_2025_budget.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resultPath := args[0]

			raw, err := os.ReadFile(resultPath)
			if err != nil {
				return logging.UnreadableInputError(resultPath, err)
			}

			var result schema.ExtractionResult
			if err := json.Unmarshal(raw, &result); err != nil {
				return logging.DeveloperError("failed to parse extraction result", "", err)
			}

			var pages []string
			if sourcePDF != "" {
				doc, err := ingest.LoadDocument(cmd.Context(), ingest.Options{}, sourcePDF)
				if err != nil {
					return err
				}
				pages = doc.Pages
			}

			report := reviewreport.Build(result, pages)
			styled := tui.DetectOutputMode(forceColor, noColor, plain) != tui.OutputModePlain

			if styled {
				cmd.Printf("%s  errors: %s\n", tui.RenderStatus(result.Status), tui.FormatCount(len(result.Errors)))
			} else {
				cmd.Printf("status: %s  errors: %s\n", result.Status, tui.FormatCount(len(result.Errors)))
			}
			cmd.Println(report.RenderTable())

			if len(report.SectorTotals) > 0 {
				cmd.Println(styleIf(styled, tui.HeaderStyle, "Sector rollup"))
				sectors := make([]string, 0, len(report.SectorTotals))
				for sector := range report.SectorTotals {
					sectors = append(sectors, sector)
				}
				sort.Strings(sectors)
				for _, sector := range sectors {
					cmd.Printf("  %-36s %s\n",
						styleIf(styled, tui.LabelStyle, sector),
						styleIf(styled, tui.ValueStyle, tui.FormatNaira(report.SectorTotals[sector])))
				}
			}
			if report.RowsDroppedIncompleteAmounts > 0 {
				cmd.Printf("%s %s\n",
					styleIf(styled, tui.WarningStyle, "Rows dropped (incomplete amounts):"),
					tui.FormatCount(report.RowsDroppedIncompleteAmounts))
			}
			if report.IGRTotal > 0 {
				cmd.Printf("%s %s\n",
					styleIf(styled, tui.LabelStyle, "Independent (IGR) revenue:"),
					styleIf(styled, tui.ValueStyle, tui.FormatNaira(report.IGRTotal)))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePDF, "source", "", "original budget PDF, to report observed section headings")
	cmd.Flags().BoolVar(&plain, "plain", false, "plain text output without styling")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&forceColor, "force-color", false, "force colored output even without a TTY")

	return cmd
}

// styleIf renders s through style when styling is active, and verbatim
// otherwise.
func styleIf(styled bool, style interface{ Render(...string) string }, s string) string {
	if !styled {
		return s
	}
	return style.Render(s)
}
