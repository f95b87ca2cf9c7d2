// Package summaryextract implements the budget summary extractor. It
// walks the first ~50 pages for the summary heading, infers the winning
// header's labels, and picks totals out of the matched lines.
//
// The year- and column-count-specific fallbacks below (NN-prefix stripping,
// the four-column index-3 special case, the Recurrent-Revenue substitution)
// are deliberate, document-tuned heuristics kept as-is and pinned by
// table-driven tests rather than derived from first principles. See
// DESIGN.md Open Question 1.
package summaryextract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/stateledger/budgetextract/internal/headers"
	"github.com/stateledger/budgetextract/internal/lexprim"
	"github.com/stateledger/budgetextract/internal/schema"
)

const maxScanPages = 50

var (
	summaryHeadingRe   = regexp.MustCompile(`approved budget summary|budget summary`)
	yyyyApprovedRe     = regexp.MustCompile(`(\d{4})\s*approved`)
	leadingCodeRe      = regexp.MustCompile(`^\s*\d{1,3}\s*-`)
	totalRevenueRe     = regexp.MustCompile(`total revenue`)
	totalExpenditureRe = regexp.MustCompile(`total expenditure`)
	recurrentExpRe     = regexp.MustCompile(`recurrent expenditure`)
	capitalExpRe       = regexp.MustCompile(`capital expenditure`)
	recurrentRevRe     = regexp.MustCompile(`recurrent revenue`)
)

// Extract walks pages[0:min(50,len)] and returns the budget totals for
// targetYear, along with whether a summary table was found at all.
func Extract(pages [][]string, targetYear string) (schema.BudgetTotals, bool) {
	limit := len(pages)
	if limit > maxScanPages {
		limit = maxScanPages
	}

	var bestPage int = -1
	var bestLabels []string
	var bestHeadingText string
	var bestHeadingLine string

	for p := 0; p < limit; p++ {
		lines := pages[p]
		for i, raw := range lines {
			lower := strings.ToLower(raw)
			if !summaryHeadingRe.MatchString(lower) {
				continue
			}
			window := []string{raw}
			for j := i + 1; j < len(lines) && j <= i+5; j++ {
				window = append(window, lines[j])
			}
			labels := headers.InferLabels(window)
			labels = append(labels, inferYYYYApprovedOnly(window)...)
			labels = dedupe(labels)
			if len(labels) > len(bestLabels) {
				bestLabels = labels
				bestPage = p
				bestHeadingText = strings.TrimSpace(raw)
				bestHeadingLine = raw
			}
		}
	}

	if bestPage < 0 {
		return schema.BudgetTotals{}, false
	}

	targetIdx, hasTarget := headers.TargetColumnIndex(bestLabels, targetYear)

	pageNum := bestPage + 1
	totals := schema.BudgetTotals{
		BudgetSummaryText: schema.Of(bestHeadingText, pageNum, bestHeadingLine),
	}
	var haveRecurrentRevenue bool
	var recurrentRevenueVal float64
	var haveTotalRevenue bool

	for _, raw := range pages[bestPage] {
		lower := strings.ToLower(raw)
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		switch {
		case totalRevenueRe.MatchString(lower):
			if v, ok := pickAmount(trimmed, targetIdx, hasTarget, targetYear); ok {
				totals.RevenueTotal = schema.Of(v, pageNum, trimmed)
				haveTotalRevenue = true
			}
		case totalExpenditureRe.MatchString(lower):
			if v, ok := pickAmount(trimmed, targetIdx, hasTarget, targetYear); ok {
				totals.TotalBudget = schema.Of(v, pageNum, trimmed)
			}
		case recurrentExpRe.MatchString(lower):
			if v, ok := pickAmount(trimmed, targetIdx, hasTarget, targetYear); ok {
				totals.RecurrentExpenditureTotal = schema.Of(v, pageNum, trimmed)
			}
		case capitalExpRe.MatchString(lower):
			if v, ok := pickAmount(trimmed, targetIdx, hasTarget, targetYear); ok {
				totals.CapitalExpenditureTotal = schema.Of(v, pageNum, trimmed)
			}
		case recurrentRevRe.MatchString(lower):
			if v, ok := pickAmount(trimmed, targetIdx, hasTarget, targetYear); ok {
				haveRecurrentRevenue = true
				recurrentRevenueVal = v
			}
		}
	}

	if !haveTotalRevenue && haveRecurrentRevenue {
		totals.RevenueTotal = schema.Of(recurrentRevenueVal, pageNum, bestHeadingLine)
	}

	return totals, true
}

// pickAmount locates the numeric tokens on the line, drops a leading "NN -"
// code token if present, and selects the target column using the same rule
// as elsewhere, plus the two summary-specific special cases.
func pickAmount(line string, targetIdx int, hasTarget bool, targetYear string) (float64, bool) {
	working := line
	if leadingCodeRe.MatchString(working) {
		working = leadingCodeRe.ReplaceAllString(working, "")
	}
	tokens := lexprim.NumericTokenRe.FindAllString(working, -1)
	if len(tokens) == 0 {
		return 0, false
	}

	idx := 1
	if hasTarget {
		idx = targetIdx
	}
	if len(tokens) == 4 {
		if isLaterYearOfTwoYearSummary(targetYear) {
			idx = 3
		} else {
			idx = 1
		}
	}
	if idx < 0 || idx >= len(tokens) {
		idx = len(tokens) - 1
	}
	return lexprim.ParseAmount(tokens[idx])
}

// isLaterYearOfTwoYearSummary treats a target year >= 2025 as the later
// year of a two-year summary table. See the package doc comment and
// DESIGN.md Open Question 1.
func isLaterYearOfTwoYearSummary(targetYear string) bool {
	y, err := strconv.Atoi(targetYear)
	if err != nil {
		return false
	}
	return y >= 2025
}

func inferYYYYApprovedOnly(lines []string) []string {
	text := strings.ToLower(strings.Join(lines, " "))
	var out []string
	for _, m := range yyyyApprovedRe.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1]+"_approved_budget")
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
