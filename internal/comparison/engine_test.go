package comparison

import (
	"testing"

	"fjacquet/lease-audit/internal/auditerror"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"
	"fjacquet/lease-audit/internal/violation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func li(n int, description, amount string, category models.Category) models.LineItem {
	return models.LineItem{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		LineNumber:  n,
	}
}

func sampleLease() *models.LeaseTerms {
	lease := models.EmptyLeaseTerms("sample lease")
	lease.CAMRules = []models.ClauseItem{models.NewClauseItem("CAM excludes capital improvements", "Article 7")}
	lease.DisallowedFees = []models.ClauseItem{models.NewClauseItem("administrative fee", "Section 4.2")}
	lease.UtilitiesDetails = []models.ClauseItem{models.NewTypedClauseItem("water", "Tenant pays water", "")}
	return lease
}

func sampleItems() []models.LineItem {
	return []models.LineItem{
		li(1, "Base Rent", "1000.00", models.CategoryRent),
		li(2, "CAM - landscaping", "150.00", models.CategoryCAM),
		li(3, "Utility Admin Fee - March", "50.00", models.CategoryUtilities),
		li(4, "Property Management Fee", "90.00", models.CategoryOther),
		li(5, "Roof Replacement", "400.00", models.CategoryCAM),
		li(6, "base rent ", "1000.00", models.CategoryRent),
		li(7, "Water", "60.25", models.CategoryUtilities),
	}
}

func newEngine() *Engine {
	return NewEngine(nil, nil, logging.NewMockLogger())
}

func TestEngine_Compare(t *testing.T) {
	report, err := newEngine().Compare(sampleLease(), sampleItems())
	require.NoError(t, err)

	reasons := make([]string, 0, len(report.Mismatches))
	for _, m := range report.Mismatches {
		reasons = append(reasons, m.Reason)
	}
	assert.Equal(t, []string{
		"Utility Admin Fee / Markup",
		"Capital Improvement Charge",
		"Duplicate Charge",
	}, reasons)

	assert.Len(t, report.AllowedCharges, 4)
	assert.Len(t, report.DisallowedCharges, 2)
	assert.Equal(t, 1, report.DuplicateCount())
	assert.Len(t, report.Overcharges, len(report.Mismatches))

	total := decimal.RequireFromString("2750.25")
	assert.True(t, total.Equal(report.Summary.TotalInvoiceAmount), report.Summary.TotalInvoiceAmount.String())
	assert.Equal(t, 7, report.Summary.NumberOfItems)
	assert.Equal(t, len(report.Mismatches), report.Summary.NumberOfMismatches)
}

func TestEngine_MismatchDetails(t *testing.T) {
	report, err := newEngine().Compare(sampleLease(), sampleItems())
	require.NoError(t, err)

	utility, ok := report.ViolationFor(3)
	require.True(t, ok)
	assert.Equal(t, "Utility Admin Fee / Markup", utility.Reason)
	// no cited utility clause, so the first cited clause anywhere is used
	assert.Equal(t, "Article 7", utility.ClauseReference)
	assert.Equal(t, models.ActionRequestJustification, utility.SuggestedAction)
	assert.Equal(t, models.ViolationKindRule, utility.Kind)

	// 90 / 2750.25 is 3.27%, under the cap, and the lease does not ban management fees
	_, flagged := report.ViolationFor(4)
	assert.False(t, flagged)

	roof, ok := report.ViolationFor(5)
	require.True(t, ok)
	assert.Equal(t, "Capital Improvement Charge", roof.Reason)
	assert.Equal(t, "Article 7", roof.ClauseReference)

	dup, ok := report.ViolationFor(6)
	require.True(t, ok)
	assert.True(t, dup.IsDuplicate())
	assert.Equal(t, models.ExplanationDuplicateCharge, dup.Explanation)
	assert.Equal(t, models.ActionRemoveDuplicate, dup.SuggestedAction)
	assert.Empty(t, dup.ClauseReference)

	for _, d := range report.DisallowedCharges {
		assert.NotEqual(t, models.ReasonDuplicateCharge, d.Reason)
	}
}

func TestEngine_Conservation(t *testing.T) {
	inputs := [][]models.LineItem{
		sampleItems(),
		{li(1, "Base Rent", "1000", models.CategoryRent), li(2, "Base Rent", "1000", models.CategoryRent)},
		{li(1, "Legal fee - refinancing", "0", models.CategoryOther)},
		{li(1, "Water", "10.10", models.CategoryUtilities), li(2, "Sewer", "20.20", models.CategoryUtilities)},
	}

	for _, items := range inputs {
		report, err := newEngine().Compare(sampleLease(), items)
		require.NoError(t, err)

		s := report.Summary
		assert.True(t, s.TotalAllowed.Add(s.TotalOvercharge).Equal(s.TotalInvoiceAmount))
		assert.True(t, s.TotalOvercharge.Equal(report.TotalOvercharge))
		assert.Equal(t, len(items),
			len(report.AllowedCharges)+len(report.DisallowedCharges)+report.DuplicateCount())

		allowed := models.TotalAmount(report.AllowedCharges)
		assert.True(t, allowed.Equal(s.TotalAllowed), "allowed %s vs %s", allowed, s.TotalAllowed)
	}
}

func TestEngine_Determinism(t *testing.T) {
	engine := newEngine()
	first, err := engine.Compare(sampleLease(), sampleItems())
	require.NoError(t, err)
	second, err := engine.Compare(sampleLease(), sampleItems())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEngine_DuplicatePrecedence(t *testing.T) {
	items := []models.LineItem{
		li(1, "Roof Replacement", "500", models.CategoryOther),
		li(2, "ROOF REPLACEMENT", "500", models.CategoryOther),
	}
	report, err := newEngine().Compare(sampleLease(), items)
	require.NoError(t, err)

	require.Len(t, report.Mismatches, 2)
	assert.Equal(t, "Capital Improvement Charge", report.Mismatches[0].Reason)
	assert.Equal(t, models.ReasonDuplicateCharge, report.Mismatches[1].Reason)
}

func TestEngine_Scenarios(t *testing.T) {
	t.Run("duplicate base rent", func(t *testing.T) {
		items := []models.LineItem{
			li(1, "Base Rent", "1000", models.CategoryRent),
			li(2, "Base Rent", "1000", models.CategoryRent),
		}
		report, err := newEngine().Compare(sampleLease(), items)
		require.NoError(t, err)

		require.Len(t, report.Mismatches, 1)
		assert.Equal(t, 2, report.Mismatches[0].Item.LineNumber)
		assert.Equal(t, models.ReasonDuplicateCharge, report.Mismatches[0].Reason)
		assert.True(t, decimal.NewFromInt(1000).Equal(report.TotalOvercharge))
		assert.True(t, decimal.NewFromInt(50).Equal(report.Summary.OverchargePercentage))
	})

	t.Run("management fee over five percent", func(t *testing.T) {
		items := []models.LineItem{
			li(1, "Base Rent", "940", models.CategoryRent),
			li(2, "Property Management Fee", "60", models.CategoryOther),
		}
		report, err := newEngine().Compare(models.EmptyLeaseTerms(""), items)
		require.NoError(t, err)

		require.Len(t, report.Mismatches, 1)
		assert.Equal(t, "Management Fee Over 5% (6.0%)", report.Mismatches[0].Reason)
		assert.Contains(t, report.Mismatches[0].Explanation, "6.0%")
	})

	t.Run("empty items", func(t *testing.T) {
		report, err := newEngine().Compare(sampleLease(), nil)
		require.NoError(t, err)
		assert.Equal(t, models.NewEmptyReport(), report)
		assert.Empty(t, report.Mismatches)
		assert.NotNil(t, report.AllowedCharges)
		assert.True(t, report.Summary.TotalInvoiceAmount.IsZero())
		assert.Equal(t, 0, report.Summary.NumberOfItems)
	})

	t.Run("nil lease", func(t *testing.T) {
		report, err := newEngine().Compare(nil, sampleItems())
		require.NoError(t, err)
		assert.Equal(t, models.NewEmptyReport(), report)
	})

	t.Run("zero invoice total", func(t *testing.T) {
		report, err := newEngine().Compare(sampleLease(), []models.LineItem{li(1, "Base Rent", "0", models.CategoryRent)})
		require.NoError(t, err)
		assert.True(t, report.Summary.OverchargePercentage.IsZero())
	})
}

func TestEngine_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		items []models.LineItem
	}{
		{"negative amount", []models.LineItem{li(1, "Credit", "-5", models.CategoryOther)}},
		{"unknown category", []models.LineItem{li(1, "Parking", "5", "Parking")}},
		{"zero line number", []models.LineItem{li(0, "Parking", "5", models.CategoryOther)}},
		{"duplicate line number", []models.LineItem{
			li(1, "Base Rent", "5", models.CategoryRent),
			li(1, "Water", "5", models.CategoryUtilities),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := newEngine().Compare(sampleLease(), tt.items)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, auditerror.IsInvalidInput(err), err.Error())
		})
	}
}

func TestEngine_CategorizesMissingCategory(t *testing.T) {
	items := []models.LineItem{li(1, "Parking lot roof structural repair", "100", "")}
	original := items[0]

	report, err := newEngine().Compare(sampleLease(), items)
	require.NoError(t, err)
	assert.Equal(t, original, items[0], "caller's items must not be modified")

	require.Len(t, report.Mismatches, 1)
	assert.Equal(t, models.CategoryOther, report.Mismatches[0].Item.Category)
}

type stubChecker struct{ calls int }

func (s *stubChecker) Check(models.LineItem, *models.LeaseTerms, decimal.Decimal) violation.Verdict {
	s.calls++
	return violation.NotViolating
}

func TestEngine_CheckerNotRunForDuplicates(t *testing.T) {
	checker := &stubChecker{}
	engine := NewEngine(checker, nil, logging.NewMockLogger())

	items := []models.LineItem{
		li(1, "Base Rent", "1", models.CategoryRent),
		li(2, "Base Rent", "1", models.CategoryRent),
		li(3, "Water", "1", models.CategoryUtilities),
	}
	_, err := engine.Compare(models.EmptyLeaseTerms(""), items)
	require.NoError(t, err)
	assert.Equal(t, 2, checker.calls)
}
