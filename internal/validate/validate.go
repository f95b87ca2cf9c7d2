// Package validate implements the post-extraction validator: a pure
// function that inspects an already-assembled ExtractionResult and emits
// ValidationError values for semantic violations. It never mutates rows —
// a failed check is reported, not repaired.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/stateledger/budgetextract/internal/schema"
)

const tolerance = 1.0

// Input bundles everything the validator needs beyond the assembled
// result: the two page counts for the page-count-consistency check, the
// economic-classification conflicts already detected during extraction,
// and the input file name for the metadata cross-check.
type Input struct {
	Result         schema.ExtractionResult
	Conflicts      []schema.EconomicConflict
	PdfPageCount   int
	ExtractedPages int
	FileName       string
}

// Run evaluates every check and returns the accumulated error list.
func Run(in Input) []schema.ValidationError {
	var errs []schema.ValidationError

	errs = append(errs, checkPageCount(in.PdfPageCount, in.ExtractedPages)...)
	errs = append(errs, checkDuplicateAdminUnits(in.Result.AdministrativeUnits)...)
	errs = append(errs, checkMDAReconciliation(in.Result.ExpenditureMDA)...)
	errs = append(errs, checkEconomicAmounts(in.Result.ExpenditureEconomic)...)
	errs = append(errs, checkEconomicDuplicates(in.Result.ExpenditureEconomic)...)
	errs = append(errs, conflictErrors(in.Conflicts)...)
	errs = append(errs, checkEconomicHierarchy(in.Result)...)
	errs = append(errs, checkProgrammeAmounts(in.Result.ProgrammeProjects)...)
	errs = append(errs, checkBudgetTotalsComponents(in.Result.BudgetTotals)...)
	errs = append(errs, checkGlobalReconciliation(in.Result)...)
	errs = append(errs, checkMetadataConsistency(in.Result.Metadata, in.FileName)...)

	return errs
}

func checkPageCount(pdfPages, extractedPages int) []schema.ValidationError {
	if abs(pdfPages-extractedPages) > 2 {
		return []schema.ValidationError{{
			Code:    "page_count_mismatch",
			Message: fmt.Sprintf("pdf reports %d pages, extracted %d pages", pdfPages, extractedPages),
		}}
	}
	return nil
}

func checkDuplicateAdminUnits(units []schema.AdministrativeUnit) []schema.ValidationError {
	seen := make(map[string]bool)
	var errs []schema.ValidationError
	for _, u := range units {
		code, ok := u.UnitCode.Get()
		if !ok {
			continue
		}
		key := string(u.TableType) + "|" + code
		if seen[key] {
			errs = append(errs, schema.ValidationError{
				Code:    "duplicate_admin_unit",
				Message: fmt.Sprintf("duplicate administrative unit code %q in table %s", code, u.TableType),
			})
			continue
		}
		seen[key] = true
	}
	return errs
}

func checkMDAReconciliation(groups []schema.ExpenditureMDAGroup) []schema.ValidationError {
	var errs []schema.ValidationError
	for _, g := range groups {
		childTotals := make(map[string]float64)
		for _, unit := range g.Units {
			for _, item := range unit.Amounts {
				amt, ok := item.Amount.Get()
				if !ok {
					continue
				}
				childTotals[item.Label] += amt
			}
		}
		for _, item := range g.Parent.Amounts {
			parentAmt, ok := item.Amount.Get()
			if !ok {
				continue
			}
			if math.Abs(parentAmt-childTotals[item.Label]) > tolerance {
				errs = append(errs, schema.ValidationError{
					Code: "mda_reconciliation_failed",
					Message: fmt.Sprintf(
						"parent %s label %s: parent=%.2f children=%.2f",
						g.Parent.Code, item.Label, parentAmt, childTotals[item.Label],
					),
				})
			}
		}
	}
	return errs
}

func checkEconomicAmounts(rows []schema.EconomicExpenditureRow) []schema.ValidationError {
	var errs []schema.ValidationError
	for _, r := range rows {
		if r.Amount.IsNull() {
			errs = append(errs, schema.ValidationError{
				Code:    "economic_amount_missing",
				Message: fmt.Sprintf("economic row %s has no amount", r.Code),
			})
		}
	}
	return errs
}

func checkEconomicDuplicates(rows []schema.EconomicExpenditureRow) []schema.ValidationError {
	seen := make(map[string]bool)
	var errs []schema.ValidationError
	for _, r := range rows {
		if seen[r.Code] {
			errs = append(errs, schema.ValidationError{
				Code:    "economic_duplicate_code",
				Message: fmt.Sprintf("duplicate economic code %q", r.Code),
			})
			continue
		}
		seen[r.Code] = true
	}
	return errs
}

func conflictErrors(conflicts []schema.EconomicConflict) []schema.ValidationError {
	errs := make([]schema.ValidationError, 0, len(conflicts))
	for _, c := range conflicts {
		errs = append(errs, schema.ValidationError{
			Code: "economic_conflicting_code",
			Message: fmt.Sprintf(
				"code %q in %s: conflicting amounts %.2f and %.2f",
				c.Code, c.TableType, c.FirstAmount, c.SecondAmount,
			),
		})
	}
	return errs
}

// checkEconomicHierarchy reconciles short parent codes against their direct
// children: for every code of length <= 2 with at least two children of
// equal minimal extension length, the parent amount must equal the
// children's sum within tolerance.
func checkEconomicHierarchy(result schema.ExtractionResult) []schema.ValidationError {
	var errs []schema.ValidationError

	revAmounts := make(map[string]float64)
	var revCodes []string
	for _, r := range result.RevenueBreakdown {
		if amt, ok := r.Amount.Get(); ok {
			if _, exists := revAmounts[r.Code]; !exists {
				revCodes = append(revCodes, r.Code)
			}
			revAmounts[r.Code] = amt
		}
	}
	errs = append(errs, hierarchyErrors(revAmounts, revCodes, "revenue")...)

	expAmounts := make(map[string]float64)
	var expCodes []string
	for _, r := range result.ExpenditureEconomic {
		if amt, ok := r.Amount.Get(); ok {
			if _, exists := expAmounts[r.Code]; !exists {
				expCodes = append(expCodes, r.Code)
			}
			expAmounts[r.Code] = amt
		}
	}
	errs = append(errs, hierarchyErrors(expAmounts, expCodes, "expenditure")...)

	return errs
}

func hierarchyErrors(amounts map[string]float64, codes []string, section string) []schema.ValidationError {
	sort.Strings(codes)
	var errs []schema.ValidationError

	for _, parent := range codes {
		if len(parent) > 2 {
			continue
		}

		minExt := 0
		for _, c := range codes {
			if c == parent || !strings.HasPrefix(c, parent) {
				continue
			}
			ext := len(c) - len(parent)
			if minExt == 0 || ext < minExt {
				minExt = ext
			}
		}
		if minExt == 0 {
			continue
		}

		var childSum float64
		childCount := 0
		for _, c := range codes {
			if c != parent && strings.HasPrefix(c, parent) && len(c)-len(parent) == minExt {
				childSum += amounts[c]
				childCount++
			}
		}
		if childCount < 2 {
			continue
		}

		if math.Abs(amounts[parent]-childSum) > tolerance {
			errs = append(errs, schema.ValidationError{
				Code: "economic_reconciliation_failed",
				Message: fmt.Sprintf(
					"%s code %s: parent=%.2f direct children sum=%.2f",
					section, parent, amounts[parent], childSum,
				),
			})
		}
	}

	return errs
}

func checkProgrammeAmounts(rows []schema.ProgrammeRow) []schema.ValidationError {
	var errs []schema.ValidationError
	for _, r := range rows {
		for _, item := range r.Amounts {
			if item.Amount.IsNull() {
				errs = append(errs, schema.ValidationError{
					Code:    "programme_amount_missing",
					Message: fmt.Sprintf("programme %s missing amount for %s", r.ProgrammeCode, item.Label),
				})
			}
		}
	}
	return errs
}

func checkBudgetTotalsComponents(totals schema.BudgetTotals) []schema.ValidationError {
	total, okTotal := totals.TotalBudget.Get()
	capital, okCapital := totals.CapitalExpenditureTotal.Get()
	recurrent, okRecurrent := totals.RecurrentExpenditureTotal.Get()
	if !okTotal || !okCapital || !okRecurrent {
		return nil
	}
	if math.Abs(total-(capital+recurrent)) > tolerance {
		return []schema.ValidationError{{
			Code:    "budget_totals_mismatch",
			Message: fmt.Sprintf("total=%.2f capital+recurrent=%.2f", total, capital+recurrent),
		}}
	}
	return nil
}

func checkGlobalReconciliation(result schema.ExtractionResult) []schema.ValidationError {
	var errs []schema.ValidationError

	total, okTotal := result.BudgetTotals.TotalBudget.Get()
	if !okTotal {
		return errs
	}

	if leafSum, ok := leafSumExpenditure(result.ExpenditureEconomic); ok {
		if math.Abs(total-leafSum) > tolerance {
			errs = append(errs, schema.ValidationError{
				Code:    "global_expenditure_mismatch",
				Message: fmt.Sprintf("total_budget=%.2f leaf expenditure sum=%.2f", total, leafSum),
			})
		}
	}

	if sum, ok := sumMDATotals(result.ExpenditureMDA); ok {
		if math.Abs(total-sum) > tolerance {
			errs = append(errs, schema.ValidationError{
				Code:    "global_mda_mismatch",
				Message: fmt.Sprintf("total_budget=%.2f sum of MDA totals=%.2f", total, sum),
			})
		}
	}

	if sum, ok := sumProgrammeAmounts(result.ProgrammeProjects); ok {
		if math.Abs(total-sum) > tolerance {
			errs = append(errs, schema.ValidationError{
				Code:    "global_programme_mismatch",
				Message: fmt.Sprintf("total_budget=%.2f sum of programme amounts=%.2f", total, sum),
			})
		}
	}

	if revTotal, ok := result.BudgetTotals.RevenueTotal.Get(); ok {
		if sum, allPresent := sumRevenue(result.RevenueBreakdown); allPresent {
			if math.Abs(revTotal-sum) > tolerance {
				errs = append(errs, schema.ValidationError{
					Code:    "global_revenue_mismatch",
					Message: fmt.Sprintf("revenue_total=%.2f sum of revenue rows=%.2f", revTotal, sum),
				})
			}
		}
	}

	return errs
}

// leafSumExpenditure implements the leaf-sum rule: from the
// set of codes with amounts, sum only those not strictly extended by
// another code in the same set.
func leafSumExpenditure(rows []schema.EconomicExpenditureRow) (float64, bool) {
	amounts := make(map[string]float64)
	codes := make([]string, 0, len(rows))
	for _, r := range rows {
		amt, ok := r.Amount.Get()
		if !ok {
			return 0, false
		}
		if _, exists := amounts[r.Code]; !exists {
			codes = append(codes, r.Code)
		}
		amounts[r.Code] = amt
	}
	if len(codes) == 0 {
		return 0, false
	}

	sort.Strings(codes)
	var sum float64
	for _, c := range codes {
		if isLeaf(c, codes) {
			sum += amounts[c]
		}
	}
	return sum, true
}

func isLeaf(code string, codes []string) bool {
	for _, other := range codes {
		if other != code && strings.HasPrefix(other, code) && len(other) > len(code) {
			return false
		}
	}
	return true
}

func sumMDATotals(groups []schema.ExpenditureMDAGroup) (float64, bool) {
	var sum float64
	for _, g := range groups {
		total, ok := totalExpenditureAmount(g.Parent.Amounts)
		if !ok {
			return 0, false
		}
		sum += total
	}
	return sum, len(groups) > 0
}

func totalExpenditureAmount(items []schema.AmountItem) (float64, bool) {
	for _, item := range items {
		if item.Label == "total_expenditure" {
			return item.Amount.Get()
		}
	}
	return 0, false
}

func sumProgrammeAmounts(rows []schema.ProgrammeRow) (float64, bool) {
	var sum float64
	for _, r := range rows {
		amt, ok := r.SelectedAmount.Get()
		if !ok {
			return 0, false
		}
		sum += amt
	}
	return sum, len(rows) > 0
}

func sumRevenue(rows []schema.RevenueRow) (float64, bool) {
	var sum float64
	for _, r := range rows {
		amt, ok := r.Amount.Get()
		if !ok {
			return 0, false
		}
		sum += amt
	}
	return sum, len(rows) > 0
}

var fileNameYearRe = regexp.MustCompile(`20\d{2}`)

func checkMetadataConsistency(meta schema.Metadata, fileName string) []schema.ValidationError {
	var errs []schema.ValidationError

	if extractedYear, ok := meta.BudgetYear.Get(); ok && meta.BudgetYear.Reason != schema.FromFilename {
		if fileYear := fileNameYearRe.FindString(fileName); fileYear != "" && fileYear != extractedYear {
			errs = append(errs, schema.ValidationError{
				Code:    "metadata_year_mismatch",
				Message: fmt.Sprintf("file name year %q does not match extracted year %q", fileYear, extractedYear),
			})
		}
	}

	if stateName, ok := meta.StateName.Get(); ok {
		lowerName := strings.ToLower(stateName)
		lowerFile := strings.ToLower(fileName)
		if !strings.Contains(lowerFile, lowerName) && !strings.Contains(lowerName, firstToken(lowerFile)) {
			errs = append(errs, schema.ValidationError{
				Code:    "metadata_state_mismatch",
				Message: fmt.Sprintf("file name %q does not contain extracted state name %q", fileName, stateName),
			})
		}
	}

	return errs
}

func firstToken(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool { return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') })
	for i, r := range s {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			return s[:i]
		}
	}
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
