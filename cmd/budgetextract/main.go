// Package main provides the budgetextract CLI tool for recovering structured
// tables from Nigerian state government budget PDFs.
package main

import (
	"fmt"
	"os"

	"github.com/stateledger/budgetextract/internal/cli"
	"github.com/stateledger/budgetextract/internal/logging"
	"github.com/stateledger/budgetextract/pkg/version"
)

// run executes the main application logic for the budgetextract program.
func run() error {
	// Initialize a minimal startup logger for early error reporting, before
	// the root command's PersistentPreRunE builds the configured logger.
	startupCfg := logging.LoggingConfig{
		Level:  "error",
		Format: "json",
		Output: "stderr",
	}
	startupLogger := logging.NewLogger(startupCfg)
	startupLogger = logging.ComponentLogger(startupLogger, "main")

	root := cli.NewRootCmd(version.Full())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		startupLogger.Error().Err(err).Msg("command execution failed")
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}
