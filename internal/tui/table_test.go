package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
)

func TestNewTableRendersRows(t *testing.T) {
	columns := []table.Column{
		{Title: "Code", Width: 30},
		{Title: "Count", Width: 8},
	}
	rows := []table.Row{
		{"duplicate_admin_unit", "2"},
		{"mda_reconciliation_failed", "1"},
	}

	tbl := NewTable(columns, rows, len(rows)+1)
	view := tbl.View()

	for _, want := range []string{"Code", "Count", "duplicate_admin_unit"} {
		if !strings.Contains(view, want) {
			t.Errorf("table view missing %q:\n%s", want, view)
		}
	}
}

func TestNewTableEmptyRows(t *testing.T) {
	columns := []table.Column{{Title: "Code", Width: 20}}

	tbl := NewTable(columns, nil, 1)
	if view := tbl.View(); !strings.Contains(view, "Code") {
		t.Errorf("empty table should still render its header, got:\n%s", view)
	}
}
