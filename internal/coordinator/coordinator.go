// Package coordinator assembles one document's full extraction pipeline:
// it runs every table extractor over the paginated text in the
// fixed order their dependencies imply, threads per-extractor state across
// pages, builds the expenditure_mda parent/child view, runs the validator,
// and returns the finished ExtractionResult.
package coordinator

import (
	"sort"
	"strings"

	"github.com/stateledger/budgetextract/internal/adminunits"
	"github.com/stateledger/budgetextract/internal/economic"
	"github.com/stateledger/budgetextract/internal/functional"
	"github.com/stateledger/budgetextract/internal/headers"
	"github.com/stateledger/budgetextract/internal/metadata"
	"github.com/stateledger/budgetextract/internal/programme"
	"github.com/stateledger/budgetextract/internal/receipts"
	"github.com/stateledger/budgetextract/internal/schema"
	"github.com/stateledger/budgetextract/internal/summaryextract"
	"github.com/stateledger/budgetextract/internal/validate"
)

// Run executes the full pipeline over pages (already split on the form-feed
// page separator) and returns the assembled result. pdfPageCount is the pdfinfo-reported
// page count used by the validator's page-count check; fileName is the
// original input file name used for the year/state cross-check.
func Run(pages []string, fileName string, pdfPageCount int) schema.ExtractionResult {
	pageLines := make([][]string, len(pages))
	for i, p := range pages {
		pageLines[i] = strings.Split(p, "\n")
	}

	meta := metadata.Scan(pages, fileName)

	// The target year comes from the file name alone; metadata's
	// budget_year prefers the first page and may disagree with it (a title
	// referencing the prior year's performance column must not shift every
	// downstream column selection).
	targetYear, _ := headers.YearToken(fileName)

	adminRes := adminunits.NewResult()
	economicState, economicRes := &economic.State{}, economic.NewResult()
	programmeState, programmeRes := &programme.State{}, programme.NewResult()
	receiptsState, receiptsRes := receipts.NewState(), receipts.NewResult()
	functionalState, functionalRes := &functional.State{}, functional.NewResult()

	for i, lines := range pageLines {
		page := i + 1
		adminunits.ExtractPage(adminRes, lines, page)
		economic.ExtractPage(economicState, economicRes, lines, page, targetYear)
		programme.ExtractPage(programmeState, programmeRes, lines, page, targetYear)
		receipts.ExtractPage(receiptsState, receiptsRes, lines, page, targetYear)
		functional.ExtractPage(functionalState, functionalRes, lines, page, targetYear)
	}

	budgetTotals, _ := summaryextract.Extract(pageLines, targetYear)

	mdaGroups := buildExpenditureMDAGroups(adminRes)

	result := schema.ExtractionResult{
		Metadata:            meta,
		BudgetTotals:        budgetTotals,
		RevenueBreakdown:    append([]schema.RevenueRow{}, economicRes.Revenue...),
		ExpenditureEconomic: append([]schema.EconomicExpenditureRow{}, economicRes.Expenditure...),
		ExpenditureMDA:      mdaGroups,
		AdministrativeUnits: append([]schema.AdministrativeUnit{}, adminRes.Units...),
		ProgrammeProjects:   append([]schema.ProgrammeRow{}, programmeRes.Rows...),
		Receipts:            append([]schema.ReceiptRow{}, receiptsRes.Rows...),
		FunctionalRows:      append([]schema.FunctionalRow{}, functionalRes.Rows...),
		AppropriationLaw:    schema.Null[string](schema.NotExtracted),
		Assumptions:         schema.Null[string](schema.NotExtracted),
	}

	result.Errors = append([]schema.ValidationError{}, validate.Run(validate.Input{
		Result:         result,
		Conflicts:      economicRes.Conflicts,
		PdfPageCount:   pdfPageCount,
		ExtractedPages: len(pages),
		FileName:       fileName,
	})...)

	if len(result.Errors) > 0 {
		result.Status = "failed"
	} else {
		result.Status = "ok"
	}

	return result
}

// buildExpenditureMDAGroups groups leaf administrative units under the
// expenditure_mda table type by their attached parent code, synthesizing a
// parent row when a referenced parent code was never observed as its own
// header-context row.
func buildExpenditureMDAGroups(adminRes *adminunits.Result) []schema.ExpenditureMDAGroup {
	byCode := make(map[string]*schema.ExpenditureMDAGroup)
	var order []string

	for _, unit := range adminRes.Units {
		if unit.TableType != schema.ExpenditureMDA {
			continue
		}
		code, ok := unit.ParentCode.Get()
		if !ok {
			continue
		}
		g, exists := byCode[code]
		if !exists {
			parent, found := adminRes.Parents[code]
			if !found {
				parent = schema.ParentRow{
					Code:      code,
					Name:      schema.Null[string](schema.ParentNotFound),
					TableType: schema.ExpenditureMDA,
				}
			}
			g = &schema.ExpenditureMDAGroup{Parent: parent}
			byCode[code] = g
			order = append(order, code)
		}
		g.Units = append(g.Units, unit)
	}

	sort.Strings(order)
	groups := make([]schema.ExpenditureMDAGroup, 0, len(order))
	for _, code := range order {
		groups = append(groups, *byCode[code])
	}
	return groups
}
