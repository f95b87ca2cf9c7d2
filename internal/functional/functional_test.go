package functional_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateledger/budgetextract/internal/functional"
)

func TestFunctionalRowExtraction(t *testing.T) {
	lines := []string{
		"Functional Classification",
		"2025 Approved Budget",
		"701  General Public Services   12,000,000",
	}
	st := &functional.State{}
	res := functional.NewResult()
	functional.ExtractPage(st, res, lines, 1, "2025")

	require.Len(t, res.Rows, 1)
	assert.Equal(t, "701", res.Rows[0].Code)
	amt, ok := res.Rows[0].Amount.Get()
	require.True(t, ok)
	assert.InDelta(t, 12000000.0, amt, 0.001)
}

func TestFunctionalFallbackLabelInjection(t *testing.T) {
	lines := []string{
		"Functional Classification",
		"Approved",
		"751  Health   9,000,000",
	}
	st := &functional.State{}
	res := functional.NewResult()
	functional.ExtractPage(st, res, lines, 1, "2025")

	require.Len(t, res.Rows, 1)
	_, ok := res.Rows[0].Amount.Get()
	assert.True(t, ok)
}
