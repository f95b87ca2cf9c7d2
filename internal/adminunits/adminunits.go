// Package adminunits implements the administrative-unit extractor:
// a line-by-line state machine that recognizes MDA-coded and revenue-coded
// tables, separates parent rows from leaf units, and records parent/child
// links. The parent/child forest is kept as maps owned by the caller, not
// as pointers between entities.
package adminunits

import (
	"regexp"
	"strings"

	"github.com/stateledger/budgetextract/internal/headers"
	"github.com/stateledger/budgetextract/internal/lexprim"
	"github.com/stateledger/budgetextract/internal/schema"
)

var (
	headerLineRe       = regexp.MustCompile(`code`)
	adminHeaderHintsRe = regexp.MustCompile(`administrative unit|admin description`)
	leadingCodeRe      = regexp.MustCompile(`^\s*(\d{6,})(.*)$`)
	parentCodeRe       = regexp.MustCompile(`^\d{6,}0{4,}$`)
)

// headerContextKeywords are the economic-column phrases that mark a line as
// part of a header cluster; tableTypeFor inspects the same vocabulary.
var headerContextKeywords = []string{
	"personnel", "overhead", "total recurrent", "capital", "total expenditure",
	"recurrent", "development", "other",
	"federation account", "independent revenue", "aids and grants",
	"fund receipts", "total revenue", "igr",
}

// isHeaderContextLine reports whether line belongs to a header cluster: it
// must not start with an administrative code and must mention one of the
// economic-column phrases.
func isHeaderContextLine(line string) bool {
	if leadingCodeRe.MatchString(line) {
		return false
	}
	lower := strings.ToLower(line)
	for _, kw := range headerContextKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// context is the per-page header state: absent, or present with an
// inferred label set and table type.
type context struct {
	active    bool
	labels    []string
	tableType schema.TableType
}

// Result is the accumulated output of one page's walk.
type Result struct {
	Units   []schema.AdministrativeUnit
	Parents map[string]schema.ParentRow // code -> parent row
}

func newResult() *Result {
	return &Result{Parents: make(map[string]schema.ParentRow)}
}

// tableTypeFor derives a table_type from the observed header labels'
// semantic signature.
func tableTypeFor(clusterText string) (schema.TableType, bool) {
	lower := strings.ToLower(clusterText)
	switch {
	case strings.Contains(lower, "personnel") && strings.Contains(lower, "overhead") &&
		strings.Contains(lower, "total recurrent") && strings.Contains(lower, "capital") &&
		strings.Contains(lower, "total expenditure"):
		return schema.ExpenditureMDA, true
	case strings.Contains(lower, "personnel expenditure") && strings.Contains(lower, "capital expenditure") &&
		strings.Contains(lower, "total expenditure"):
		// Some documents phrase the same five-column table without the
		// overhead / total recurrent headings.
		return schema.ExpenditureMDA, true
	case strings.Contains(lower, "recurrent") && strings.Contains(lower, "development") &&
		strings.Contains(lower, "other"):
		return schema.ExpenditureAdmin, true
	case strings.Contains(lower, "federation account") && strings.Contains(lower, "independent revenue") &&
		strings.Contains(lower, "aids and grants") && strings.Contains(lower, "fund receipts") &&
		strings.Contains(lower, "total revenue"):
		return schema.RevenueMDA, true
	default:
		return "", false
	}
}

func labelsForTableType(tt schema.TableType) []string {
	switch tt {
	case schema.ExpenditureMDA:
		return []string{"personnel", "overhead", "total_recurrent", "capital", "total_expenditure"}
	case schema.ExpenditureAdmin:
		return []string{"recurrent", "development", "other"}
	case schema.RevenueMDA:
		return []string{
			"federation_account_revenues", "independent_revenue", "aids_and_grants",
			"capital_development_fund_receipts", "total_revenue",
		}
	default:
		return nil
	}
}

// ExtractPage walks one page's lines and appends units/parents into res.
// lines is the page's full line slice, used to look back one line when
// a header is recognized.
func ExtractPage(res *Result, lines []string, page int) {
	ctx := context{}
	seen := make(map[[2]string]bool)
	for _, u := range res.Units {
		seen[[2]string{string(u.TableType), mustGet(u.UnitCode)}] = true
	}

	for i, raw := range lines {
		line := raw
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		lower := strings.ToLower(line)
		if !ctx.active && headerLineRe.MatchString(lower) && adminHeaderHintsRe.MatchString(lower) {
			cluster := gatherHeaderCluster(lines, i)
			if tt, ok := tableTypeFor(strings.Join(cluster, " ")); ok {
				ctx = context{active: true, labels: labelsForTableType(tt), tableType: tt}
			}
			continue
		}

		if !ctx.active {
			continue
		}

		if lexprim.IsDigitsOnly(trimmed) {
			continue
		}

		m := leadingCodeRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		code := m[1]
		rest := m[2]

		cols := lexprim.SplitColumns(rest)
		if parentCodeRe.MatchString(code) {
			name := ""
			if len(cols) > 0 {
				name = cols[0]
			}
			res.Parents[code] = schema.ParentRow{
				Code:      code,
				Name:      schema.Of(name, page, trimmed),
				Page:      page,
				LineText:  trimmed,
				TableType: ctx.tableType,
			}
			continue
		}

		if len(cols) < 2 {
			continue
		}
		name := cols[0]
		amountCols := cols[1:]
		if !lexprim.HasAlpha(name) && len(cols) > 1 {
			// name column empty or numeric: the name lives in the second
			// column instead.
			name = cols[1]
			amountCols = cols[2:]
		}

		amounts := make([]float64, len(amountCols))
		oks := make([]bool, len(amountCols))
		allOk := len(amountCols) > 0
		for idx, c := range amountCols {
			v, ok := lexprim.ParseAmount(c)
			amounts[idx] = v
			oks[idx] = ok
			if !ok {
				allOk = false
			}
		}
		if !allOk {
			// Any null amount discards the whole row: a layout artifact,
			// not an error, even when other columns parsed.
			continue
		}

		key := [2]string{string(ctx.tableType), code}
		if seen[key] {
			continue
		}
		seen[key] = true

		unit := schema.AdministrativeUnit{
			UnitCode:  schema.Of(code, page, trimmed),
			UnitName:  schema.Of(name, page, trimmed),
			Amounts:   headers.BuildAmountItems(amounts, oks, ctx.labels, page, trimmed),
			Page:      page,
			LineText:  trimmed,
			TableType: ctx.tableType,
		}
		attachParent(&unit, res.Parents)
		res.Units = append(res.Units, unit)
	}
}

// attachParent finds the longest-matching stripped-right-zero parent code
// prefix for the leaf's code, or records parent_not_found.
func attachParent(unit *schema.AdministrativeUnit, parents map[string]schema.ParentRow) {
	code, _ := unit.UnitCode.Get()
	var best string
	for pCode := range parents {
		prefix := strings.TrimRight(pCode, "0")
		if prefix == "" {
			continue
		}
		if strings.HasPrefix(code, prefix) && len(prefix) > len(best) {
			best = prefix
			unit.ParentCode = schema.Of(pCode, unit.Page, unit.LineText)
			if p, ok := parents[pCode]; ok {
				unit.ParentName = p.Name
			}
		}
	}
	if unit.ParentCode.IsNull() {
		unit.ParentCode = schema.Null[string](schema.ParentNotFound)
		unit.ParentName = schema.Null[string](schema.ParentNotFound)
	}
}

func gatherHeaderCluster(lines []string, headerIdx int) []string {
	var cluster []string
	if headerIdx > 0 && isHeaderContextLine(lines[headerIdx-1]) {
		cluster = append(cluster, lines[headerIdx-1])
	}
	cluster = append(cluster, lines[headerIdx])
	for j := headerIdx + 1; j < len(lines) && j <= headerIdx+2; j++ {
		if isHeaderContextLine(lines[j]) {
			cluster = append(cluster, lines[j])
		}
	}
	return cluster
}

func mustGet(f schema.Field[string]) string {
	v, _ := f.Get()
	return v
}

// NewResult exposes newResult for callers outside the package (the
// coordinator owns one Result per document run).
func NewResult() *Result {
	return newResult()
}
