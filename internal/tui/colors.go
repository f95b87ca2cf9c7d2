package tui

import "github.com/charmbracelet/lipgloss"

// Extraction status colors. OK maps to a clean run, critical to a run with
// validation errors, warning to soft diagnostics (dropped rows, missing
// sections).
const (
	ColorOK       = lipgloss.Color("82")  // green
	ColorWarning  = lipgloss.Color("208") // orange
	ColorCritical = lipgloss.Color("196") // red
	ColorInfo     = lipgloss.Color("33")  // blue
)

// UI element colors.
const (
	ColorHeader     = lipgloss.Color("99")  // purple
	ColorLabel      = lipgloss.Color("245") // gray
	ColorValue      = lipgloss.Color("255") // near-white
	ColorBorder     = lipgloss.Color("238") // dark gray
	ColorHighlight  = lipgloss.Color("229") // pale yellow
	ColorMuted      = lipgloss.Color("240") // dim gray
	ColorSelectedBg = lipgloss.Color("57")  // indigo row highlight
)
