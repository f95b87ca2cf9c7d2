package tui

import "github.com/charmbracelet/lipgloss"

// Text styles shared across commands.
//
//nolint:gochecknoglobals // Global styles are the standard pattern for lipgloss.
var (
	// HeaderStyle formats section headings in review output.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader)

	// LabelStyle formats field labels (error codes, section names).
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorLabel)

	// ValueStyle formats data values (amounts, counts).
	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorValue)
)

// Status styles.
//
//nolint:gochecknoglobals // Global styles are the standard pattern for lipgloss.
var (
	// OKStyle marks a clean extraction run.
	OKStyle = lipgloss.NewStyle().
		Foreground(ColorOK).
		Bold(true)

	// WarningStyle marks soft diagnostics that do not fail a run.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	// CriticalStyle marks a run that accumulated validation errors.
	CriticalStyle = lipgloss.NewStyle().
			Foreground(ColorCritical).
			Bold(true)
)

// Table styles for the diagnostics listings.
//
//nolint:gochecknoglobals // Global styles are the standard pattern for lipgloss.
var (
	// TableHeaderStyle formats column headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true)

	// TableSelectedStyle highlights the selected row.
	TableSelectedStyle = lipgloss.NewStyle().
				Background(ColorSelectedBg).
				Foreground(ColorHighlight)
)
