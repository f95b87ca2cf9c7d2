package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/stateledger/budgetextract/internal/logging"
	"golang.org/x/sync/errgroup"
)

// NewBatchCmd creates the 'batch' command, which extracts several budget
// PDFs concurrently with a bounded worker pool. It is the only pipeline
// entry point where an in-flight extraction can be cancelled, by cancelling
// the command's context.
func NewBatchCmd() *cobra.Command {
	var inputDir, outputDir string
	var workers int

	cmd := &cobra.Command{
		Use:     "batch",
		Short:   "Extract structured tables from every budget PDF in a directory",
		Example: `  budgetextract batch --input-dir ./budgets --output-dir ./results --workers 4`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if inputDir == "" || outputDir == "" {
				return logging.InvalidArgumentError("--input-dir/--output-dir", fmt.Errorf("both are required"))
			}

			inputs, err := filepath.Glob(filepath.Join(inputDir, "*.pdf"))
			if err != nil {
				return logging.FileSystemError("glob", inputDir, err)
			}
			if len(inputs) == 0 {
				cmd.Printf("No PDFs found in %s\n", inputDir)
				return nil
			}

			ctx := cmd.Context()
			logger := logging.FromContext(ctx)
			auditLogger := logging.AuditLoggerFromContext(ctx)

			succeeded, failed := runBatch(ctx, inputs, outputDir, workers)

			entry := logging.NewAuditEntry("batch", logging.TraceIDFromContext(ctx)).
				WithParameters(map[string]string{"input_dir": inputDir, "output_dir": outputDir}).
				WithSuccess(succeeded, failed)
			auditLogger.Log(ctx, *entry)

			logger.Info().Int("succeeded", succeeded).Int("failed", failed).Msg("batch extraction complete")
			cmd.Printf("Batch complete: %d succeeded, %d failed\n", succeeded, failed)

			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed extraction", failed, len(inputs))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "input-dir", "", "directory of source budget PDFs (required)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory to write extracted result JSON files (required)")
	cmd.Flags().IntVar(&workers, "workers", 4, "maximum number of documents extracted concurrently")

	return cmd
}

// runBatch fans out extraction over inputs with at most workers concurrent
// documents in flight, cancelling the remaining work if ctx is cancelled.
func runBatch(ctx context.Context, inputs []string, outputDir string, workers int) (succeeded, failed int) {
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	var mu sync.Mutex
	logger := logging.FromContext(ctx)

	for _, input := range inputs {
		input := input
		g.Go(func() error {
			base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			output := filepath.Join(outputDir, base+".json")

			start := time.Now()
			_, err := runExtract(gctx, extractOptions{input: input, output: output})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error().Err(logging.BatchDocumentFailedError(input, err)).
					Str("input_path", input).
					Dur("elapsed", time.Since(start)).Msg("document failed extraction")
				failed++
				return nil
			}
			succeeded++
			return nil
		})
	}

	_ = g.Wait()

	return succeeded, failed
}
