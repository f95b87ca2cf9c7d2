package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Extraction run statuses, matching the status field of a serialized
// extraction result.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Status icons.
const (
	IconOK       = "✓"
	IconWarning  = "⚠"
	IconCritical = "✗"
	IconPending  = "○"
)

// RenderStatus renders a styled icon-and-label indicator for an extraction
// run status, matched case-insensitively. "ok", "failed" and "warning" map
// to the green, red and orange themes; anything else is shown muted. The
// label is always lowercased.
func RenderStatus(status string) string {
	var icon string
	var color lipgloss.Color

	switch strings.ToLower(status) {
	case StatusOK:
		icon = IconOK
		color = ColorOK
	case StatusFailed:
		icon = IconCritical
		color = ColorCritical
	case "warning":
		icon = IconWarning
		color = ColorWarning
	default:
		icon = IconPending
		color = ColorMuted
	}

	style := lipgloss.NewStyle().Foreground(color).Bold(true)
	return style.Render(fmt.Sprintf("%s %s", icon, strings.ToLower(status)))
}

// FormatNaira formats a budget amount with the naira sign, thousands
// separators, and two decimal places. NaN and infinities render as ₦0.00.
// Negative amounts carry the minus sign before the currency sign.
func FormatNaira(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "₦0.00"
	}

	formatted := fmt.Sprintf("%.2f", amount)

	negative := strings.HasPrefix(formatted, "-")
	if negative {
		formatted = formatted[1:]
	}

	dot := strings.IndexByte(formatted, '.')
	intPart, fracPart := formatted[:dot], formatted[dot:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	result := "₦" + b.String() + fracPart
	if negative {
		result = "-" + result
	}
	return result
}

// FormatCount renders an integer count with thousands separators, for row
// and error tallies in review output.
func FormatCount(n int) string {
	s := fmt.Sprintf("%d", n)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}
