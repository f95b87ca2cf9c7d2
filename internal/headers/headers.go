// Package headers infers ordered period labels from a cluster of header
// lines and selects the target-year column among them. It is shared by the
// administrative-unit, economic, programme, receipts, functional, and
// summary extractors.
package headers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/stateledger/budgetextract/internal/schema"
)

var (
	budgetStatusRe = regexp.MustCompile(`(\d{4})\s*\(?(approved|proposed|revised|final|original)\)?\s*budget`)
	performanceRe  = regexp.MustCompile(`(\d{4})\s*performance`)
	januaryToRe    = regexp.MustCompile(`january\s*to\s*([a-z]+)`)
	climateRe      = regexp.MustCompile(`(\d{4})\s*climate\s*change\s*\(?(mitigation|adaptation)\)?\s*tagging`)
)

// labelMatch is a label candidate at a given offset within the normalized
// header text, used only to establish first-occurrence order before
// deduplication.
type labelMatch struct {
	offset int
	label  string
}

// revenueCanonicalOrder is the fixed preferred ordering applied when the
// canonical four-label revenue header is recognized.
var revenueCanonicalOrder = []string{
	"2024_approved_budget", "2024_final_budget", "2024_performance", "2025_approved_budget",
}

// InferLabels concatenates the given window of lines, lowercases and
// collapses whitespace, and returns the ordered, deduplicated list of
// period labels it recognizes.
func InferLabels(lines []string) []string {
	text := strings.Join(lines, " ")
	text = strings.ToLower(text)
	text = strings.Join(strings.Fields(text), " ")

	var matches []labelMatch
	for _, m := range budgetStatusRe.FindAllStringSubmatchIndex(text, -1) {
		year := text[m[2]:m[3]]
		status := text[m[4]:m[5]]
		matches = append(matches, labelMatch{offset: m[0], label: year + "_" + status + "_budget"})
	}
	for _, m := range performanceRe.FindAllStringSubmatchIndex(text, -1) {
		year := text[m[2]:m[3]]
		matches = append(matches, labelMatch{offset: m[0], label: year + "_performance"})
	}
	for _, m := range januaryToRe.FindAllStringSubmatchIndex(text, -1) {
		month := text[m[2]:m[3]]
		matches = append(matches, labelMatch{offset: m[0], label: "january_to_" + month})
	}
	for _, m := range climateRe.FindAllStringSubmatchIndex(text, -1) {
		year := text[m[2]:m[3]]
		kind := text[m[4]:m[5]]
		matches = append(matches, labelMatch{offset: m[0], label: year + "_climate_" + kind})
	}

	sortByOffsetStable(matches)

	seen := make(map[string]bool, len(matches))
	labels := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m.label] {
			continue
		}
		seen[m.label] = true
		labels = append(labels, m.label)
	}

	if isCanonicalRevenueHeader(labels) {
		return append([]string(nil), revenueCanonicalOrder...)
	}
	return labels
}

func isCanonicalRevenueHeader(labels []string) bool {
	if len(labels) != len(revenueCanonicalOrder) {
		return false
	}
	want := make(map[string]bool, len(revenueCanonicalOrder))
	for _, l := range revenueCanonicalOrder {
		want[l] = true
	}
	for _, l := range labels {
		if !want[l] {
			return false
		}
	}
	return true
}

// sortByOffsetStable performs a stable insertion sort on offset. The
// input is at most a handful of header tokens per page.
func sortByOffsetStable(matches []labelMatch) {
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j-1].offset > matches[j].offset; j-- {
			matches[j-1], matches[j] = matches[j], matches[j-1]
		}
	}
}

// TargetColumnIndex chooses the first index of a label whose prefix equals
// "Y_" and whose suffix contains "approved"; else whose suffix contains
// "proposed"; else any "Y_*_budget"; else -1, false.
func TargetColumnIndex(labels []string, targetYear string) (int, bool) {
	prefix := targetYear + "_"
	for i, l := range labels {
		if strings.HasPrefix(l, prefix) && strings.Contains(l, "approved") {
			return i, true
		}
	}
	for i, l := range labels {
		if strings.HasPrefix(l, prefix) && strings.Contains(l, "proposed") {
			return i, true
		}
	}
	for i, l := range labels {
		if strings.HasPrefix(l, prefix) && strings.HasSuffix(l, "_budget") {
			return i, true
		}
	}
	return -1, false
}

// BuildAmountItems pairs a row's numeric fragments with the header's labels,
// synthesizing amount_N for any column beyond the labeled set. Every
// populated amount carries the source row's provenance.
func BuildAmountItems(amounts []float64, ok []bool, labels []string, page int, lineText string) []schema.AmountItem {
	items := make([]schema.AmountItem, len(amounts))
	for i := range amounts {
		label := schema.SyntheticLabel(i + 1).String()
		if i < len(labels) {
			label = labels[i]
		}
		items[i] = schema.AmountItem{Label: label}
		if ok[i] {
			items[i].Amount = schema.Of(amounts[i], page, lineText)
		} else {
			items[i].Amount = schema.Null[float64](schema.MissingAmount)
		}
	}
	return items
}

var yearTokenRe = regexp.MustCompile(`20\d{2}`)

// YearToken extracts the first four-digit year-looking token (20xx) from s.
func YearToken(s string) (string, bool) {
	m := yearTokenRe.FindString(s)
	if m == "" {
		return "", false
	}
	return m, true
}

// ParseYear is a convenience wrapper turning a year token into an int.
func ParseYear(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
