// Package tui holds the terminal-output helpers shared by the CLI
// commands: output-mode detection, the color palette and Lip Gloss styles,
// a table wrapper for diagnostics listings, and naira formatting for
// budget amounts.
//
// Commands detect the output mode first and fall back to plain text when
// stdout is not a capable terminal:
//
//	mode := tui.DetectOutputMode(forceColor, noColor, plain)
//	status := tui.RenderStatus("ok")
//	total := tui.FormatNaira(1_234_567.5)
//
// All exported functions are safe for concurrent use; the package keeps no
// mutable state beyond the style values themselves.
package tui
