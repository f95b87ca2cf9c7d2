// Package receipts implements the receipts extractor: receipt rows
// reconstructed from up to three physical lines, from which administrative,
// economic, and fund codes are extracted by regex with positional
// constraints (economic precedes fund).
package receipts

import (
	"regexp"
	"strings"

	"github.com/stateledger/budgetextract/internal/headers"
	"github.com/stateledger/budgetextract/internal/lexprim"
	"github.com/stateledger/budgetextract/internal/schema"
)

var (
	sectionHeadingRe = regexp.MustCompile(`receipt description`)
	totalLineRe      = regexp.MustCompile(`(?i)^total`)
	adminTokenRe     = regexp.MustCompile(`^\d{10,14}$`)
	economicTokenRe  = regexp.MustCompile(`^\d{6,8}$`)
	fundTokenRe      = regexp.MustCompile(`^\d{2,6}$`)
	anyDigitRe       = regexp.MustCompile(`\d`)
	headerVocabRe    = regexp.MustCompile(`budget|performance|january`)
)

type State struct {
	labels    []string
	targetIdx int
	hasHeader bool
	inSection bool
	buffer    []string
}

type Result struct {
	Rows []schema.ReceiptRow
}

func NewResult() *Result { return &Result{} }

func ExtractPage(st *State, res *Result, lines []string, page int, targetYear string) {
	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		lower := strings.ToLower(trimmed)

		if sectionHeadingRe.MatchString(lower) {
			st.inSection = true
			cluster := []string{raw}
			for j := i + 1; j < len(lines) && j <= i+5; j++ {
				cluster = append(cluster, lines[j])
			}
			labels := headers.InferLabels(cluster)
			idx, ok := headers.TargetColumnIndex(labels, targetYear)
			st.labels = labels
			st.targetIdx = idx
			st.hasHeader = ok
			st.buffer = nil
			continue
		}

		if !st.inSection {
			continue
		}
		if trimmed == "" || totalLineRe.MatchString(trimmed) {
			st.buffer = nil
			continue
		}
		// Header-cluster lines sit between the section heading and the
		// first row; they must not leak into a reconstructed description.
		if headerVocabRe.MatchString(lower) {
			continue
		}

		st.buffer = append(st.buffer, trimmed)
		if len(st.buffer) > 3 {
			st.buffer = st.buffer[len(st.buffer)-3:]
		}

		row, ok := tryBuildRow(st, page)
		if ok {
			res.Rows = append(res.Rows, row)
			st.buffer = nil
		}
	}
}

// tryBuildRow reassembles the buffered lines into one row. Codes are
// matched against whole whitespace-delimited tokens so a 6-8-digit
// economic code is never found inside the longer administrative code, and
// the fund code can never be a digit group inside a comma-grouped amount.
// The economic code must precede the fund code.
func tryBuildRow(st *State, page int) (schema.ReceiptRow, bool) {
	joined := strings.Join(st.buffer, " ")
	tokens := strings.Fields(joined)

	adminIdx, econIdx, fundIdx := -1, -1, -1
	for i, tok := range tokens {
		switch {
		case adminIdx < 0 && econIdx < 0 && adminTokenRe.MatchString(tok):
			adminIdx = i
		case econIdx < 0 && economicTokenRe.MatchString(tok):
			econIdx = i
		case econIdx >= 0 && fundIdx < 0 && fundTokenRe.MatchString(tok):
			fundIdx = i
		}
	}
	if econIdx < 0 {
		return schema.ReceiptRow{}, false
	}

	descEnd := econIdx
	if adminIdx >= 0 && adminIdx < descEnd {
		descEnd = adminIdx
	}
	descTokens := tokens[:descEnd]
	description := strings.TrimSpace(strings.Join(descTokens, " "))
	if description == "" || !lexprim.HasAlpha(description) || anyDigitRe.MatchString(description) {
		return schema.ReceiptRow{}, false
	}

	amountStart := econIdx + 1
	if fundIdx >= 0 {
		amountStart = fundIdx + 1
	}
	amounts := make([]float64, 0, len(tokens)-amountStart)
	oks := make([]bool, 0, len(tokens)-amountStart)
	for _, tok := range tokens[amountStart:] {
		v, ok := lexprim.ParseAmount(tok)
		if !ok {
			continue
		}
		amounts = append(amounts, v)
		oks = append(oks, true)
	}
	if len(amounts) == 0 {
		return schema.ReceiptRow{}, false
	}

	row := schema.ReceiptRow{
		Description:  description,
		EconomicCode: schema.Of(tokens[econIdx], page, joined),
		Amounts:      headers.BuildAmountItems(amounts, oks, st.labels, page, joined),
		Page:         page,
		LineText:     joined,
	}
	if adminIdx >= 0 {
		row.AdminCode = schema.Of(tokens[adminIdx], page, joined)
	} else {
		row.AdminCode = schema.Null[string](schema.NotExtracted)
	}
	if fundIdx >= 0 {
		row.FundCode = schema.Of(tokens[fundIdx], page, joined)
	} else {
		row.FundCode = schema.Null[string](schema.NotExtracted)
	}
	return row, true
}

func NewState() *State { return &State{} }
