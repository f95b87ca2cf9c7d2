// Package economic implements the economic classification extractor,
// emitting revenue and expenditure rows keyed by a short hierarchical code,
// with same-code conflict detection and prefix-hierarchy reconciliation
// support.
//
// Section tracking deliberately uses a "last section" fallback across page
// boundaries: when a page's header re-appears without an intervening
// section heading, the previously active section stays in effect rather
// than resetting to neither. This is a conscious trade against the safer
// alternative of resetting context at every page boundary.
package economic

import (
	"regexp"
	"strings"

	"github.com/stateledger/budgetextract/internal/headers"
	"github.com/stateledger/budgetextract/internal/lexprim"
	"github.com/stateledger/budgetextract/internal/schema"
)

const tolerance = 1.0

var (
	revenueHeadingRe     = regexp.MustCompile(`revenue by economic classification`)
	expenditureHeadingRe = regexp.MustCompile(`expenditure by economic classification`)
	codeHeaderRe         = regexp.MustCompile(`code\s+economic`)
	rowRe                = regexp.MustCompile(`^(\d{1,8})\s+(.+)$`)
)

// Section is which half of the economic-classification table is active.
type Section int

const (
	SectionNone Section = iota
	SectionRevenue
	SectionExpenditure
)

// State threads across pages: the last-active section and the current
// header context, carried by the coordinator between ExtractPage calls.
type State struct {
	LastSection Section
	labels      []string
	targetIdx   int
	hasHeader   bool
}

// Result accumulates one document's economic rows and conflicts.
type Result struct {
	Revenue     []schema.RevenueRow
	Expenditure []schema.EconomicExpenditureRow
	Conflicts   []schema.EconomicConflict
}

func NewResult() *Result { return &Result{} }

// ExtractPage walks one page, mutating st and res. targetYear selects the
// amount column via the shared header-inference rule.
func ExtractPage(st *State, res *Result, lines []string, page int, targetYear string) {
	section := st.LastSection
	st.hasHeader = false

	for i, raw := range lines {
		lower := strings.ToLower(raw)
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		switch {
		case revenueHeadingRe.MatchString(lower):
			section = SectionRevenue
			continue
		case expenditureHeadingRe.MatchString(lower):
			section = SectionExpenditure
			continue
		case codeHeaderRe.MatchString(lower):
			cluster := gatherCluster(lines, i)
			labels := headers.InferLabels(cluster)
			idx, ok := headers.TargetColumnIndex(labels, targetYear)
			st.labels = labels
			st.targetIdx = idx
			st.hasHeader = ok
			continue
		}

		if !st.hasHeader || section == SectionNone {
			continue
		}

		m := rowRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		code := m[1]
		rest := m[2]
		cols := lexprim.SplitColumns(rest)
		if len(cols) < 2 {
			continue
		}
		desc := cols[0]
		if !lexprim.HasAlpha(desc) {
			continue
		}
		if st.targetIdx < 0 || st.targetIdx+1 >= len(cols) {
			continue
		}
		amountFragment := cols[st.targetIdx+1]
		amt, ok := lexprim.ParseAmount(amountFragment)
		if !ok {
			continue
		}

		switch section {
		case SectionRevenue:
			appendOrConflictRevenue(res, schema.RevenueRow{
				Code: code, Category: desc, Amount: schema.Of(amt, page, trimmed),
				Classification: schema.ClassificationEconomic, Page: page, LineText: trimmed,
			})
		case SectionExpenditure:
			appendOrConflictExpenditure(res, schema.EconomicExpenditureRow{
				Code: code, Category: desc, Amount: schema.Of(amt, page, trimmed),
				Classification: schema.ClassificationEconomic, Page: page, LineText: trimmed,
			})
		}
	}

	st.LastSection = section
}

func appendOrConflictRevenue(res *Result, row schema.RevenueRow) {
	for i := range res.Revenue {
		if res.Revenue[i].Code == row.Code {
			existing, _ := res.Revenue[i].Amount.Get()
			incoming, _ := row.Amount.Get()
			if absDiff(existing, incoming) > tolerance {
				res.Conflicts = append(res.Conflicts, schema.EconomicConflict{
					TableType: "revenue", Code: row.Code, FirstAmount: existing, SecondAmount: incoming,
				})
			}
			return
		}
	}
	res.Revenue = append(res.Revenue, row)
}

func appendOrConflictExpenditure(res *Result, row schema.EconomicExpenditureRow) {
	for i := range res.Expenditure {
		if res.Expenditure[i].Code == row.Code {
			existing, _ := res.Expenditure[i].Amount.Get()
			incoming, _ := row.Amount.Get()
			if absDiff(existing, incoming) > tolerance {
				res.Conflicts = append(res.Conflicts, schema.EconomicConflict{
					TableType: "expenditure", Code: row.Code, FirstAmount: existing, SecondAmount: incoming,
				})
			}
			return
		}
	}
	res.Expenditure = append(res.Expenditure, row)
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

func gatherCluster(lines []string, headerIdx int) []string {
	cluster := []string{lines[headerIdx]}
	for j := headerIdx + 1; j < len(lines) && j <= headerIdx+2; j++ {
		cluster = append(cluster, lines[j])
	}
	return cluster
}
