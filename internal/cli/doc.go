// Package cli implements the Cobra-based command-line interface for the
// budget table extraction pipeline.
//
// The CLI provides the primary user interface with subcommands for:
//   - extract: Run the full pipeline over a single budget PDF
//   - batch: Run the pipeline over every PDF in a directory with a bounded worker pool
//   - review: Render diagnostics for a prior extraction run as a terminal table
//   - config: Manage persisted configuration (init, get, set, list, validate)
//
// # Usage Patterns
//
// Commands use RunE for proper error handling and cmd.Printf() for output.
//
// # Configuration
//
// CLI flags take precedence over environment variables and config file settings.
// Debug output can be enabled with the --debug flag.
package cli
