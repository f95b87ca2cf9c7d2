package schema

// TableType distinguishes the three administrative-unit table shapes.
type TableType string

const (
	ExpenditureMDA   TableType = "expenditure_mda"
	RevenueMDA       TableType = "revenue_mda"
	ExpenditureAdmin TableType = "expenditure_admin"
)

// Classification distinguishes how an economic-classification row reached
// the output.
type Classification string

const (
	ClassificationEconomic Classification = "economic"
	ClassificationReceipt  Classification = "receipt"
)

// AmountItem pairs a stable label with its parsed value.
type AmountItem struct {
	Label  string         `json:"label"`
	Amount Field[float64] `json:"amount"`
}

// AdministrativeUnit is a leaf MDA or sub-unit row.
type AdministrativeUnit struct {
	ParentCode Field[string] `json:"parent_code"`
	ParentName Field[string] `json:"parent_name"`
	UnitCode   Field[string] `json:"unit_code"`
	UnitName   Field[string] `json:"unit_name"`
	Amounts    []AmountItem  `json:"amounts"`
	Page       int           `json:"page"`
	LineText   string        `json:"line_text"`
	TableType  TableType     `json:"table_type"`
}

// ParentRow is a code-aggregating row (code ends in >=4 zeros, or is
// otherwise declared a parent by the code-prefix rule).
type ParentRow struct {
	Code      string        `json:"code"`
	Name      Field[string] `json:"name"`
	Amounts   []AmountItem  `json:"amounts"`
	Page      int           `json:"page"`
	LineText  string        `json:"line_text"`
	TableType TableType     `json:"table_type"`
}

// RevenueRow is an accepted row from the revenue section of the economic
// classification table.
type RevenueRow struct {
	Code           string         `json:"code"`
	Category       string         `json:"category"`
	Subcategory    Field[string]  `json:"subcategory"`
	Amount         Field[float64] `json:"amount"`
	Classification Classification `json:"classification"`
	AdminCode      Field[string]  `json:"admin_code"`
	FundCode       Field[string]  `json:"fund_code"`
	Page           int            `json:"page"`
	LineText       string         `json:"line_text"`
}

// EconomicExpenditureRow is an accepted row from the expenditure section of
// the economic classification table.
type EconomicExpenditureRow struct {
	Code           string         `json:"code"`
	Category       string         `json:"category"`
	Subcategory    Field[string]  `json:"subcategory"`
	Amount         Field[float64] `json:"amount"`
	Classification Classification `json:"classification"`
	AdminCode      Field[string]  `json:"admin_code"`
	FundCode       Field[string]  `json:"fund_code"`
	Page           int            `json:"page"`
	LineText       string         `json:"line_text"`
}

// EconomicConflict records two accepted rows sharing a code whose amounts
// disagree by more than the reconciliation tolerance.
type EconomicConflict struct {
	TableType    string  `json:"table_type"`
	Code         string  `json:"code"`
	FirstAmount  float64 `json:"first_amount"`
	SecondAmount float64 `json:"second_amount"`
}

// ProgrammeRow is a fully coded programme/project line item.
type ProgrammeRow struct {
	Sector         string         `json:"sector"`
	Objective      string         `json:"objective"`
	ProgrammeCode  string         `json:"programme_code"`
	ProgrammeDesc  string         `json:"programme_desc"`
	ProjectDesc    string         `json:"project_desc"`
	EconomicCode   string         `json:"economic_code"`
	FunctionCode   string         `json:"function_code"`
	FundCode       Field[string]  `json:"fund_code"`
	LocationCode   string         `json:"location_code"`
	Amounts        []AmountItem   `json:"amounts"`
	SelectedAmount Field[float64] `json:"selected_amount"`
	FundingSource  Field[string]  `json:"funding_source"`
	Page           int            `json:"page"`
	LineText       string         `json:"line_text"`
}

// ReceiptRow is a reconstructed multi-line receipt entry.
type ReceiptRow struct {
	Description  string        `json:"description"`
	AdminCode    Field[string] `json:"admin_code"`
	EconomicCode Field[string] `json:"economic_code"`
	FundCode     Field[string] `json:"fund_code"`
	Amounts      []AmountItem  `json:"amounts"`
	Page         int           `json:"page"`
	LineText     string        `json:"line_text"`
}

// FunctionalRow is a row from the functional classification table.
type FunctionalRow struct {
	Code     string         `json:"code"`
	Category string         `json:"category"`
	Amounts  []AmountItem   `json:"amounts"`
	Amount   Field[float64] `json:"amount"`
	Page     int            `json:"page"`
	LineText string         `json:"line_text"`
}

// BudgetTotals is the top-level summary table's output.
type BudgetTotals struct {
	TotalBudget               Field[float64] `json:"total_budget"`
	CapitalExpenditureTotal   Field[float64] `json:"capital_expenditure_total"`
	RecurrentExpenditureTotal Field[float64] `json:"recurrent_expenditure_total"`
	RevenueTotal              Field[float64] `json:"revenue_total"`
	FinancingTotal            Field[float64] `json:"financing_total"`
	BudgetSummaryText         Field[string]  `json:"budget_summary_text"`
}

// Metadata is the one-shot, first-page document metadata scan.
type Metadata struct {
	Title      Field[string] `json:"title"`
	StateName  Field[string] `json:"state_name"`
	StateCode  Field[string] `json:"state_code"`
	Currency   Field[string] `json:"currency"`
	BudgetYear Field[string] `json:"budget_year"`
}

// ValidationError is a reported semantic violation.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ExpenditureMDAGroup associates a parent row with its attached
// administrative units, owned by the coordinator.
type ExpenditureMDAGroup struct {
	Parent ParentRow            `json:"parent"`
	Units  []AdministrativeUnit `json:"units"`
}

// ExtractionResult is the top-level output of one document's pipeline run.
type ExtractionResult struct {
	Status              string                   `json:"status"`
	Errors              []ValidationError        `json:"errors"`
	Metadata            Metadata                 `json:"metadata"`
	BudgetTotals        BudgetTotals             `json:"budget_totals"`
	RevenueBreakdown    []RevenueRow             `json:"revenue_breakdown"`
	ExpenditureEconomic []EconomicExpenditureRow `json:"expenditure_economic"`
	ExpenditureMDA      []ExpenditureMDAGroup    `json:"expenditure_mda"`
	AdministrativeUnits []AdministrativeUnit     `json:"administrative_units"`
	ProgrammeProjects   []ProgrammeRow           `json:"programme_projects"`
	Receipts            []ReceiptRow             `json:"receipts"`
	FunctionalRows      []FunctionalRow          `json:"functional_rows"`
	AppropriationLaw    Field[string]            `json:"appropriation_law"`
	Assumptions         Field[string]            `json:"assumptions"`
}
