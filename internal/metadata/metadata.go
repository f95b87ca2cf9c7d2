// Package metadata implements the one-shot document metadata scan:
// title, state name, state code, currency, and budget year, read from the
// first page of the document and, for the year only, the input file name.
package metadata

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/stateledger/budgetextract/internal/schema"
)

var yearRe = regexp.MustCompile(`20\d{2}`)

var titleRe = regexp.MustCompile(`(?i)(approved|revised|proposed)\s+budget`)

// stateNames is the closed list of Nigerian state names recognized on the
// first page, paired with their two-letter state code.
var stateNames = map[string]string{
	"abia": "AB", "adamawa": "AD", "akwa ibom": "AK", "anambra": "AN",
	"bauchi": "BA", "bayelsa": "BY", "benue": "BE", "borno": "BO",
	"cross river": "CR", "delta": "DE", "ebonyi": "EB", "edo": "ED",
	"ekiti": "EK", "enugu": "EN", "gombe": "GO", "imo": "IM",
	"jigawa": "JI", "kaduna": "KD", "kano": "KN", "katsina": "KT",
	"kebbi": "KE", "kogi": "KG", "kwara": "KW", "lagos": "LA",
	"nasarawa": "NA", "niger": "NI", "ogun": "OG", "ondo": "ON",
	"osun": "OS", "oyo": "OY", "plateau": "PL", "rivers": "RI",
	"sokoto": "SO", "taraba": "TA", "yobe": "YO", "zamfara": "ZA",
}

// currencySymbols maps a currency symbol or code observed on the first page
// to its ISO code.
var currencySymbols = map[string]string{
	"₦":     "NGN",
	"ngn":   "NGN",
	"naira": "NGN",
}

// Scan reads pages (the already-paginated document) and fileName and
// produces the one-shot document metadata. Only BudgetYear falls back to a
// file-name-derived value; every other field left unrecognized on the page
// scan stays null with reason NotExtracted.
func Scan(pages []string, fileName string) schema.Metadata {
	var firstPage string
	if len(pages) > 0 {
		firstPage = pages[0]
	}

	return schema.Metadata{
		Title:      scanTitle(firstPage),
		StateName:  scanStateName(firstPage),
		StateCode:  scanStateCode(firstPage),
		Currency:   scanCurrency(firstPage),
		BudgetYear: scanBudgetYear(firstPage, fileName),
	}
}

func scanTitle(page string) schema.Field[string] {
	for _, line := range splitLines(page) {
		if titleRe.MatchString(line) {
			return schema.Of(strings.TrimSpace(line), 1, line)
		}
	}
	return schema.Null[string](schema.NotExtracted)
}

func scanStateName(page string) schema.Field[string] {
	lower := strings.ToLower(page)
	for name := range stateNames {
		if strings.Contains(lower, name+" state") {
			return schema.Of(titleCase(name), 1, name+" state")
		}
	}
	return schema.Null[string](schema.NotExtracted)
}

func scanStateCode(page string) schema.Field[string] {
	lower := strings.ToLower(page)
	for name, code := range stateNames {
		if strings.Contains(lower, name+" state") {
			return schema.Of(code, 1, name+" state")
		}
	}
	return schema.Null[string](schema.NotExtracted)
}

func scanCurrency(page string) schema.Field[string] {
	lower := strings.ToLower(page)
	for symbol, code := range currencySymbols {
		if strings.Contains(lower, symbol) {
			return schema.Of(code, 1, symbol)
		}
	}
	return schema.Null[string](schema.NotExtracted)
}

func scanBudgetYear(page, fileName string) schema.Field[string] {
	if m := yearRe.FindString(page); m != "" {
		return schema.Of(m, 1, m)
	}
	if m := yearRe.FindString(fileName); m != "" {
		return schema.FromFile(m)
	}
	return schema.Null[string](schema.NotExtracted)
}

func splitLines(page string) []string {
	return strings.Split(page, "\n")
}

func titleCase(lower string) string {
	// A cases.Caser carries internal state, so build one per call rather
	// than sharing across concurrent batch workers.
	return cases.Title(language.Und).String(lower)
}
