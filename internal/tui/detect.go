package tui

import (
	"os"

	"golang.org/x/term"
)

// DefaultTerminalWidth is the fallback width when the terminal size cannot
// be determined, e.g. when stdout is redirected to a file.
const DefaultTerminalWidth = 80

// OutputMode is the rendering mode chosen for CLI output.
type OutputMode int

const (
	// OutputModePlain emits text with no ANSI styling.
	OutputModePlain OutputMode = iota

	// OutputModeStyled applies Lip Gloss styling without interactivity.
	// Suitable for CI environments and piped-but-forced-color output.
	OutputModeStyled

	// OutputModeInteractive enables the full Bubble Tea table view.
	OutputModeInteractive
)

// DetectOutputMode picks the output mode from explicit flags, the NO_COLOR
// convention, and terminal capability, in that precedence order. Explicit
// --plain/--no-color always win; --force-color yields styled output even
// without a TTY; a dumb or absent terminal falls back to plain; CI
// environments get styling but not interactivity.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	if plain || noColor {
		return OutputModePlain
	}

	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return OutputModePlain
	}

	if forceColor {
		return OutputModeStyled
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return OutputModePlain
	}

	if os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}

	if os.Getenv("CI") != "" {
		return OutputModeStyled
	}

	return OutputModeInteractive
}

// IsTTY reports whether stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the terminal width in columns, or
// DefaultTerminalWidth when it cannot be determined.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return width
}
