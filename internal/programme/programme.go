// Package programme implements the programme-and-project extractor,
// a line-by-line state machine that carries sector/objective and
// program code/description across continuation lines until a fully coded
// project row is observed.
package programme

import (
	"regexp"
	"strings"

	"github.com/stateledger/budgetextract/internal/headers"
	"github.com/stateledger/budgetextract/internal/lexprim"
	"github.com/stateledger/budgetextract/internal/schema"
)

var (
	headerHintRe  = regexp.MustCompile(`programme code and programme description`)
	projectHintRe = regexp.MustCompile(`project description`)
	programCodeRe = regexp.MustCompile(`^(\d{11,14})\s*-?\s*(.*)$`)
	sectorObjRe   = regexp.MustCompile(`sector|objective`)
	anyDigitRe    = regexp.MustCompile(`\d`)
)

// State carries the in-progress program context across lines and pages.
type State struct {
	currentProgramCode string
	currentProgramDesc string
	projectBuffer      []string
	labels             []string
	targetIdx          int
	hasFundColumn      bool
	currentSector      string
	currentObjective   string
	headerSeen         bool
}

// Result accumulates emitted programme rows for one document.
type Result struct {
	Rows []schema.ProgrammeRow
}

func NewResult() *Result { return &Result{} }

// ExtractPage walks one page's lines.
func ExtractPage(st *State, res *Result, lines []string, page int, targetYear string) {
	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)

		if headerHintRe.MatchString(lower) && projectHintRe.MatchString(lower) {
			cluster := []string{raw}
			for j := i + 1; j < len(lines) && j <= i+2; j++ {
				cluster = append(cluster, lines[j])
			}
			labels := headers.InferLabels(cluster)
			idx, _ := headers.TargetColumnIndex(labels, targetYear)
			st.labels = labels
			st.targetIdx = idx
			st.hasFundColumn = strings.Contains(lower, "fund")
			st.headerSeen = true
			continue
		}

		if !st.headerSeen {
			continue
		}

		if isShortSectorObjectiveLabel(trimmed) {
			lowerTrim := strings.ToLower(trimmed)
			if strings.Contains(lowerTrim, "sector") {
				st.currentSector = trimLabel(trimmed)
			} else {
				st.currentObjective = trimLabel(trimmed)
			}
			continue
		}

		economicIdx, hasEconomic := findEconomicColumn(trimmed)

		if m := programCodeRe.FindStringSubmatch(trimmed); m != nil && !hasEconomic {
			st.currentProgramCode = m[1]
			st.currentProgramDesc = m[2]
			st.projectBuffer = nil
			continue
		}

		if !hasEconomic {
			cols := lexprim.SplitColumns(raw)
			switch {
			case len(cols) >= 2:
				if st.currentProgramDesc != "" {
					st.currentProgramDesc += " " + cols[0]
				}
				st.projectBuffer = append(st.projectBuffer, cols[1])
			case len(cols) == 1:
				// A lone fragment's column is decided by indentation: the
				// program-description column is flush left, the
				// project-description column is not.
				if strings.HasPrefix(raw, "  ") {
					st.projectBuffer = append(st.projectBuffer, cols[0])
				} else if st.currentProgramDesc != "" {
					st.currentProgramDesc += " " + cols[0]
				}
			}
			continue
		}

		// A combined line carries the program columns ahead of the
		// economic column; reset program state from them before building.
		head := strings.TrimSpace(trimmed[:economicIdx])
		if pm := programCodeRe.FindStringSubmatch(head); pm != nil {
			st.currentProgramCode = pm[1]
			st.projectBuffer = nil
			headCols := lexprim.SplitColumns(pm[2])
			if len(headCols) > 0 {
				st.currentProgramDesc = headCols[0]
				st.projectBuffer = append(st.projectBuffer, headCols[1:]...)
			} else {
				st.currentProgramDesc = ""
			}
			head = ""
		}

		row, ok := buildRow(st, trimmed, economicIdx, head, page)
		if ok {
			res.Rows = append(res.Rows, row)
		}
		// Emitted or not, the program state is cleared so the next header
		// row must reset it.
		st.currentProgramCode = ""
		st.currentProgramDesc = ""
		st.projectBuffer = nil
	}
}

// economicColumnRe matches an 8-digit code followed by " - description".
var economicColumnRe = regexp.MustCompile(`(\d{8})\s*-\s*([^0-9]+?)\s{2,}`)

func findEconomicColumn(line string) (int, bool) {
	loc := economicColumnRe.FindStringIndex(line)
	if loc == nil {
		return 0, false
	}
	return loc[0], true
}

func buildRow(st *State, line string, economicIdx int, head string, page int) (schema.ProgrammeRow, bool) {
	if st.currentProgramCode == "" || strings.TrimSpace(st.currentProgramDesc) == "" {
		return schema.ProgrammeRow{}, false
	}

	projectDesc := head
	if len(st.projectBuffer) > 0 {
		projectDesc = strings.TrimSpace(strings.Join(st.projectBuffer, " ") + " " + projectDesc)
	}
	if projectDesc == "" {
		return schema.ProgrammeRow{}, false
	}

	rest := line[economicIdx:]
	cols := lexprim.SplitColumns(rest)
	// cols[0] = "DDDDDDDD - description" (economic), cols[1] = function,
	// cols[2] = fund (optional), cols[3] = location, remainder = amounts.
	if len(cols) < 3 {
		return schema.ProgrammeRow{}, false
	}
	economicCode, _, ok := lexprim.SplitCodeDesc(cols[0], 8, 8)
	if !ok {
		return schema.ProgrammeRow{}, false
	}
	functionCode, _, ok := lexprim.SplitCodeDesc(cols[1], 5, 5)
	if !ok {
		return schema.ProgrammeRow{}, false
	}

	idx := 2
	var fundField schema.Field[string]
	var fundingSource schema.Field[string]
	if st.hasFundColumn {
		if idx >= len(cols) {
			return schema.ProgrammeRow{}, false
		}
		fundCode, _, fok := lexprim.SplitCodeDesc(cols[idx], 2, 8)
		if !fok {
			return schema.ProgrammeRow{}, false
		}
		fundField = schema.Of(fundCode, page, line)
		fundingSource = schema.Of(cols[idx], page, line)
		idx++
	} else {
		fundField = schema.Null[string](schema.NotExtracted)
		fundingSource = schema.Null[string](schema.NotExtracted)
	}

	if idx >= len(cols) {
		return schema.ProgrammeRow{}, false
	}
	locationCode, _, ok := lexprim.SplitCodeDesc(cols[idx], 8, 8)
	if !ok {
		return schema.ProgrammeRow{}, false
	}
	idx++

	amountCols := cols[idx:]
	amounts := make([]float64, len(amountCols))
	oks := make([]bool, len(amountCols))
	for i, c := range amountCols {
		v, ok := lexprim.ParseAmount(c)
		amounts[i] = v
		oks[i] = ok
		if !ok {
			return schema.ProgrammeRow{}, false
		}
	}

	var labels []string
	var selected schema.Field[float64]
	if len(amountCols) == len(st.labels) {
		labels = st.labels
		if st.targetIdx >= 0 && st.targetIdx < len(amounts) {
			selected = schema.Of(amounts[st.targetIdx], page, line)
		} else {
			selected = schema.Null[float64](schema.NotExtracted)
		}
	} else {
		selected = schema.Null[float64](schema.NotExtracted)
	}

	row := schema.ProgrammeRow{
		Sector:         st.currentSector,
		Objective:      st.currentObjective,
		ProgrammeCode:  st.currentProgramCode,
		ProgrammeDesc:  strings.TrimSpace(st.currentProgramDesc),
		ProjectDesc:    projectDesc,
		EconomicCode:   economicCode,
		FunctionCode:   functionCode,
		FundCode:       fundField,
		LocationCode:   locationCode,
		Amounts:        headers.BuildAmountItems(amounts, oks, labels, page, line),
		SelectedAmount: selected,
		FundingSource:  fundingSource,
		Page:           page,
		LineText:       line,
	}
	return row, true
}

func isShortSectorObjectiveLabel(s string) bool {
	if anyDigitRe.MatchString(s) {
		return false
	}
	if !sectorObjRe.MatchString(strings.ToLower(s)) {
		return false
	}
	if len(s) > 60 {
		return false
	}
	if len(strings.Fields(s)) > 6 {
		return false
	}
	return true
}

func trimLabel(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(s, "-.: ")
}
