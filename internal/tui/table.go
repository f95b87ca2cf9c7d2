package tui

import "github.com/charmbracelet/bubbles/table"

// DefaultTableStyles starts from table.DefaultStyles and applies the
// package's header and selection styles.
func DefaultTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	return s
}

// NewTable builds a focused table.Model with the given columns, rows, and
// visible height, styled with DefaultTableStyles.
func NewTable(columns []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	t.SetStyles(DefaultTableStyles())
	return t
}
