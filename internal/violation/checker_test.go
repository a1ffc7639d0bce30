package violation

import (
	"testing"

	"fjacquet/lease-audit/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(description string, amount int64, category models.Category) models.LineItem {
	return models.LineItem{
		Description: description,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		LineNumber:  1,
	}
}

func leaseWithDisallowed(fees ...models.ClauseItem) *models.LeaseTerms {
	lease := models.EmptyLeaseTerms("")
	lease.DisallowedFees = fees
	return lease
}

var thousand = decimal.NewFromInt(1000)

func TestChecker_Rules(t *testing.T) {
	tests := []struct {
		name         string
		item         models.LineItem
		lease        *models.LeaseTerms
		total        decimal.Decimal
		expectReason string
		expectRule   string
	}{
		{
			name:         "utility markup",
			item:         item("Utility Surcharge", 25, models.CategoryUtilities),
			expectReason: "Utility Admin Fee / Markup",
			expectRule:   RuleUtilityMarkup,
		},
		{
			name:         "legal fee unrelated to tenant",
			item:         item("Attorney fees - refinancing", 400, models.CategoryOther),
			expectReason: "Legal Fees Unrelated to Tenant",
			expectRule:   RuleUnrelatedLegalFee,
		},
		{
			name:         "roof replacement",
			item:         item("Roof Replacement", 5000, models.CategoryOther),
			expectReason: "Capital Improvement Charge",
			expectRule:   RuleCapitalImprovement,
		},
		{
			name:         "management fee over cap",
			item:         item("Property Management Fee", 60, models.CategoryOther),
			total:        thousand,
			expectReason: "Management Fee Over 5% (6.0%)",
			expectRule:   RuleManagementFee,
		},
		{
			name: "management fee half rounds to even",
			item: models.LineItem{Description: "Property Management Fee", Amount: decimal.RequireFromString("62.50"),
				Category: models.CategoryOther, LineNumber: 1},
			total:        thousand,
			expectReason: "Management Fee Over 5% (6.2%)",
			expectRule:   RuleManagementFee,
		},
		{
			name: "management fee half rounds up to even",
			item: models.LineItem{Description: "Property Management Fee", Amount: decimal.RequireFromString("63.50"),
				Category: models.CategoryOther, LineNumber: 1},
			total:        thousand,
			expectReason: "Management Fee Over 5% (6.4%)",
			expectRule:   RuleManagementFee,
		},
		{
			name:         "management fee disallowed by lease",
			item:         item("Mgmt fee", 10, models.CategoryOther),
			lease:        leaseWithDisallowed(models.NewClauseItem("Management fees", "Section 9")),
			total:        thousand,
			expectReason: "Management Fee Not Allowed",
			expectRule:   RuleManagementFee,
		},
		{
			name:         "explicit disallowed wording",
			item:         item("Marketing contribution", 75, models.CategoryOther),
			lease:        leaseWithDisallowed(models.NewClauseItem("marketing fund contributions", "Section 4.2")),
			total:        thousand,
			expectReason: "Disallowed Fee: marketing fund contributions",
			expectRule:   RuleDisallowedFee,
		},
		{
			name:         "non-CAM item in CAM",
			item:         item("Parking lot upgrade", 900, models.CategoryCAM),
			total:        thousand,
			expectReason: "Non-CAM Item in CAM Charges",
			expectRule:   RuleMiscategorizedCAM,
		},
	}

	checker := NewChecker(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := checker.Check(tt.item, tt.lease, tt.total)
			require.True(t, verdict.Violating)
			assert.Equal(t, tt.expectReason, verdict.Reason)
			assert.Equal(t, tt.expectRule, verdict.Rule)
			assert.NotEmpty(t, verdict.Explanation)
		})
	}
}

func TestChecker_NotViolating(t *testing.T) {
	tests := []struct {
		name string
		item models.LineItem
	}{
		{"base rent", item("Base Rent", 1000, models.CategoryRent)},
		{"tenant-related legal fee", item("Legal fees - tenant eviction", 300, models.CategoryOther)},
		{"collection attorney", item("Attorney collection costs", 200, models.CategoryOther)},
		{"cam maintenance", item("CAM - landscaping", 150, models.CategoryCAM)},
		{"management fee under cap", item("Management Fee", 40, models.CategoryOther)},
		{"upgrade outside CAM", item("Signage upgrade", 100, models.CategoryOther)},
	}

	checker := NewChecker(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := checker.Check(tt.item, models.EmptyLeaseTerms(""), thousand)
			assert.False(t, verdict.Violating)
			assert.Equal(t, NotViolating, verdict)
		})
	}
}

func TestChecker_RuleOrdering(t *testing.T) {
	checker := NewChecker(nil)

	t.Run("utility markup before disallowed fee scan", func(t *testing.T) {
		lease := leaseWithDisallowed(models.NewClauseItem("administrative fee", "Section 4.2"))
		verdict := checker.Check(item("Utility Admin Fee - March", 50, models.CategoryUtilities), lease, thousand)
		assert.Equal(t, "Utility Admin Fee / Markup", verdict.Reason)
		assert.Equal(t, "Section 4.2", verdict.ClauseReference)
	})

	t.Run("utility markup before non-CAM", func(t *testing.T) {
		verdict := checker.Check(item("Utility markup on roof upgrade", 80, models.CategoryCAM), nil, thousand)
		assert.Equal(t, RuleUtilityMarkup, verdict.Rule)
	})

	t.Run("capital improvement before non-CAM", func(t *testing.T) {
		verdict := checker.Check(item("Structural renovation", 80, models.CategoryCAM), nil, thousand)
		assert.Equal(t, RuleCapitalImprovement, verdict.Rule)
	})

	t.Run("management fee falls through to disallowed scan", func(t *testing.T) {
		lease := leaseWithDisallowed(models.NewClauseItem("leasing commissions and fees", ""))
		verdict := checker.Check(item("Management fees", 10, models.CategoryOther), lease, thousand)
		assert.Equal(t, RuleDisallowedFee, verdict.Rule)
		assert.Equal(t, "Disallowed Fee: leasing commissions and fees", verdict.Reason)
	})

	t.Run("management fee disallowed with zero total", func(t *testing.T) {
		lease := leaseWithDisallowed(models.NewClauseItem("property management fees", "Section 9"))
		verdict := checker.Check(item("Property management", 0, models.CategoryOther), lease, decimal.Zero)
		assert.Equal(t, "Management Fee Not Allowed", verdict.Reason)
	})

	t.Run("rule order is stable", func(t *testing.T) {
		assert.Equal(t, []string{
			RuleUtilityMarkup, RuleUnrelatedLegalFee, RuleCapitalImprovement,
			RuleManagementFee, RuleDisallowedFee, RuleMiscategorizedCAM,
		}, Rules())
	})
}

func TestChecker_Explanations(t *testing.T) {
	checker := NewChecker(nil)

	t.Run("percentage interpolated", func(t *testing.T) {
		verdict := checker.Check(item("Property Management Fee", 60, models.CategoryOther), nil, thousand)
		assert.Equal(t, "Management fees exceeding 5% of total charges are typically excessive. "+
			"This charge represents 6.0% of the total invoice, which exceeds the standard 5% cap.", verdict.Explanation)
		assert.False(t, verdict.HasCitation())
	})

	t.Run("clause reference appended", func(t *testing.T) {
		lease := models.EmptyLeaseTerms("")
		lease.UtilitiesDetails = []models.ClauseItem{models.NewTypedClauseItem("electric", "Separately metered", "Section 6.1")}
		verdict := checker.Check(item("Utility processing fee", 15, models.CategoryUtilities), lease, thousand)
		assert.Equal(t, "Section 6.1", verdict.ClauseReference)
		assert.Contains(t, verdict.Explanation, "landlords cannot add markups. (See Section 6.1)")
	})

	t.Run("disallowed wording quoted in full and reason truncated", func(t *testing.T) {
		wording := "any administrative, marketing or promotional charge levied by the landlord without consent"
		lease := leaseWithDisallowed(models.NewClauseItem(wording, ""))
		lease.CAMRules = []models.ClauseItem{models.NewClauseItem("CAM pro rata", "Article 7")}

		verdict := checker.Check(item("Promotional charge", 20, models.CategoryOther), lease, thousand)
		require.True(t, verdict.Violating)
		assert.Equal(t, "Disallowed Fee: "+wording[:50], verdict.Reason)
		assert.Contains(t, verdict.Explanation, "'"+wording+"'")
		assert.Equal(t, "Article 7", verdict.ClauseReference)
	})

	t.Run("disallowed entry's own reference preferred", func(t *testing.T) {
		lease := leaseWithDisallowed(
			models.NewClauseItem("parking", ""),
			models.NewClauseItem("signage fees", "Section 11"),
		)
		verdict := checker.Check(item("Signage Fees Q2", 20, models.CategoryOther), lease, thousand)
		assert.Equal(t, "Disallowed Fee: signage fees", verdict.Reason)
		assert.Equal(t, "Section 11", verdict.ClauseReference)
	})
}

type recordingFinder struct {
	calls []string
	ref   string
}

func (r *recordingFinder) Find(_ *models.LeaseTerms, term string, _ *models.Category) string {
	r.calls = append(r.calls, term)
	return r.ref
}

func TestChecker_ClauseLookupTerms(t *testing.T) {
	finder := &recordingFinder{}
	checker := NewChecker(finder)

	checker.Check(item("Admin fee", 5, models.CategoryOther), nil, thousand)
	assert.Equal(t, []string{"utility", "disallowed"}, finder.calls)

	finder.calls, finder.ref = nil, "Section 1"
	verdict := checker.Check(item("Admin fee", 5, models.CategoryOther), nil, thousand)
	assert.Equal(t, []string{"utility"}, finder.calls)
	assert.Equal(t, "Section 1", verdict.ClauseReference)

	finder.calls = nil
	checker.Check(item("Base Rent", 1000, models.CategoryRent), nil, thousand)
	assert.Empty(t, finder.calls)
}
