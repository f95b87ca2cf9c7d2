// Package reviewreport builds the operator-facing diagnostics summary for
// a finished ExtractionResult: error counts and deduplicated
// messages by code, a sector rollup derived from function codes, and an
// internally-generated-revenue (IGR) counter. None of this gates or
// redirects extraction — it is read-only aggregation over the result the
// coordinator already produced.
package reviewreport

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stateledger/budgetextract/internal/schema"
	"github.com/stateledger/budgetextract/internal/tui"
)

// sectionVocabulary is the supplementary, larger set of section headings
// this package scans for purely to log which of the document's expected
// sections were observed during a run. Extraction itself is driven solely
// by each extractor's own heading regex; this list never gates it.
var sectionVocabulary = map[string]*regexp.Regexp{
	"administrative": regexp.MustCompile(`(?i)administrative unit`),
	"economic":       regexp.MustCompile(`(?i)economic classification`),
	"programme":      regexp.MustCompile(`(?i)programme code and programme description`),
	"receipts":       regexp.MustCompile(`(?i)receipt description`),
	"functional":     regexp.MustCompile(`(?i)functional classification`),
	"summary":        regexp.MustCompile(`(?i)budget summary`),
	"law":            regexp.MustCompile(`(?i)appropriation law`),
	"assumptions":    regexp.MustCompile(`(?i)budget assumptions`),
}

// sectorByFunctionPrefix maps a 2-digit COFOG-like function-code prefix to
// a named sector bucket.
var sectorByFunctionPrefix = map[string]string{
	"70": "general_public_services",
	"71": "defence",
	"72": "public_order_and_safety",
	"73": "economic_affairs",
	"74": "environmental_protection",
	"75": "housing_and_community_amenities",
	"76": "health",
	"77": "recreation_culture_and_religion",
	"78": "education",
	"79": "social_protection",
}

// sectorKeywords is the fallback used when a row carries no function code.
var sectorKeywords = map[string]string{
	"education": "education",
	"health":    "health",
	"agricult":  "economic_affairs",
	"works":     "economic_affairs",
	"water":     "housing_and_community_amenities",
	"security":  "public_order_and_safety",
}

// Report is the aggregated diagnostics for one ExtractionResult.
type Report struct {
	ErrorCounts      map[string]int
	ErrorMessages    map[string][]string
	SectionsObserved map[string]bool
	SectorTotals     map[string]float64
	IGRTotal         float64

	// RowsDroppedIncompleteAmounts counts leading-code candidate lines on
	// administrative-table pages that produced neither a unit nor a parent
	// row — typically leaf rows dropped for a null amount column. It is a
	// soft, heuristic counter for operators, never a validation error.
	RowsDroppedIncompleteAmounts int
}

var (
	adminHeaderHintRe = regexp.MustCompile(`(?i)code.*(administrative unit|admin description)`)
	leadingCodeRe     = regexp.MustCompile(`^\s*\d{6,}`)
	parentCodeLineRe  = regexp.MustCompile(`^\s*\d{6,}0{4,}\s`)
)

// Build aggregates result's error list and rows, and scans pages for the
// supplementary section vocabulary.
func Build(result schema.ExtractionResult, pages []string) Report {
	r := Report{
		ErrorCounts:      make(map[string]int),
		ErrorMessages:    make(map[string][]string),
		SectionsObserved: make(map[string]bool),
		SectorTotals:     make(map[string]float64),
	}

	for _, e := range result.Errors {
		r.ErrorCounts[e.Code]++
		if !containsString(r.ErrorMessages[e.Code], e.Message) {
			r.ErrorMessages[e.Code] = append(r.ErrorMessages[e.Code], e.Message)
		}
	}

	candidates := 0
	for _, page := range pages {
		lower := strings.ToLower(page)
		for name, re := range sectionVocabulary {
			if re.MatchString(lower) {
				r.SectionsObserved[name] = true
			}
		}
		if adminHeaderHintRe.MatchString(page) {
			for _, line := range strings.Split(page, "\n") {
				if leadingCodeRe.MatchString(line) && !parentCodeLineRe.MatchString(line) {
					candidates++
				}
			}
		}
	}
	if dropped := candidates - len(result.AdministrativeUnits); dropped > 0 {
		r.RowsDroppedIncompleteAmounts = dropped
	}

	for _, row := range result.FunctionalRows {
		sector := sectorFor(row.Code, row.Category)
		amt, ok := row.Amount.Get()
		if !ok {
			continue
		}
		r.SectorTotals[sector] += amt
	}

	for _, row := range result.RevenueBreakdown {
		if strings.Contains(strings.ToLower(row.Category), "independent") {
			if amt, ok := row.Amount.Get(); ok {
				r.IGRTotal += amt
			}
		}
	}

	return r
}

func sectorFor(functionCode, category string) string {
	if len(functionCode) >= 2 {
		if sector, ok := sectorByFunctionPrefix[functionCode[:2]]; ok {
			return sector
		}
	}
	lower := strings.ToLower(category)
	for kw, sector := range sectorKeywords {
		if strings.Contains(lower, kw) {
			return sector
		}
	}
	return "unclassified"
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// RenderTable renders the error-count summary as a terminal table using
// this codebase's shared table-styling wrapper.
func (r Report) RenderTable() string {
	columns := []table.Column{
		{Title: "Code", Width: 32},
		{Title: "Count", Width: 8},
	}

	codes := make([]string, 0, len(r.ErrorCounts))
	for code := range r.ErrorCounts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := make([]table.Row, 0, len(codes))
	for _, code := range codes {
		rows = append(rows, table.Row{code, strconv.Itoa(r.ErrorCounts[code])})
	}

	height := len(rows) + 1
	if height < 1 {
		height = 1
	}
	t := tui.NewTable(columns, rows, height)
	return t.View()
}
