package clause

import (
	"testing"

	"fjacquet/lease-audit/internal/models"

	"github.com/stretchr/testify/assert"
)

func fullLease() *models.LeaseTerms {
	lease := models.EmptyLeaseTerms("")
	lease.CAMRules = []models.ClauseItem{
		models.NewClauseItem("CAM is billed monthly", ""),
		models.NewClauseItem("CAM excludes capital repairs", "Article 7"),
	}
	lease.DisallowedFees = []models.ClauseItem{
		models.NewClauseItem("legal fees unrelated to tenant default", models.NoCitation),
		models.NewClauseItem("administrative fee", "Section 4.2"),
	}
	lease.AllowedFees = []models.ClauseItem{
		models.NewClauseItem("late fee of 5%", "Section 3.4"),
	}
	lease.UtilitiesDetails = []models.ClauseItem{
		models.NewTypedClauseItem("water", "Tenant pays water", "Section 6.1"),
	}
	lease.TaxesDetails = []models.ClauseItem{
		models.NewTypedClauseItem("property tax", "Pro rata share", "Section 5"),
	}
	lease.EscalationCapsDetails = []models.ClauseItem{
		models.NewTypedClauseItem("annual", "3%", "Section 2.3"),
	}
	return lease
}

func TestLocator_Find(t *testing.T) {
	cam := models.CategoryCAM
	utilities := models.CategoryUtilities
	tax := models.CategoryTax

	tests := []struct {
		name     string
		term     string
		category *models.Category
		expected string
	}{
		{"disallowed wording match", "administrative", nil, "Section 4.2"},
		{"case-insensitive wording match", "ADMINISTRATIVE FEE", nil, "Section 4.2"},
		{"uncited disallowed match is skipped", "legal", nil, "Article 7"},
		{"allowed wording match", "late fee", nil, "Section 3.4"},
		{"cam by category", "capital", &cam, "Article 7"},
		{"cam by term", "common area", nil, "Article 7"},
		{"utility by term", "utility", nil, "Section 6.1"},
		{"utility by category", "electric", &utilities, "Section 6.1"},
		{"tax by term", "tax", nil, "Section 5"},
		{"tax by category", "assessment", &tax, "Section 5"},
		{"escalation by term", "escalation", nil, "Section 2.3"},
		{"fallback to first cited anywhere", "management", nil, "Article 7"},
	}

	locator := NewLocator()
	lease := fullLease()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, locator.Find(lease, tt.term, tt.category))
		})
	}
}

func TestLocator_FallbackOrder(t *testing.T) {
	lease := models.EmptyLeaseTerms("")
	lease.TaxesDetails = []models.ClauseItem{models.NewTypedClauseItem("tax", "x", "Section 9")}
	lease.AllowedFees = []models.ClauseItem{models.NewClauseItem("parking", "Section 8")}

	assert.Equal(t, "Section 8", NewLocator().Find(lease, "management", nil))
}

func TestLocator_CategoryStepFallsThroughWhenUncited(t *testing.T) {
	lease := models.EmptyLeaseTerms("")
	lease.CAMRules = []models.ClauseItem{models.NewClauseItem("CAM billed monthly", "")}
	lease.UtilitiesDetails = []models.ClauseItem{models.NewTypedClauseItem("water", "x", "Section 6")}

	cam := models.CategoryCAM
	assert.Equal(t, "Section 6", NewLocator().Find(lease, "cam", &cam))
}

func TestLocator_NeverReturnsSentinel(t *testing.T) {
	uncited := models.EmptyLeaseTerms("")
	uncited.CAMRules = []models.ClauseItem{models.NewClauseItem("CAM", models.NoCitation)}
	uncited.DisallowedFees = []models.ClauseItem{models.NewClauseItem("see lease document", "")}
	uncited.UtilitiesDetails = []models.ClauseItem{models.NewTypedClauseItem("gas", "x", "  ")}

	locator := NewLocator()
	cam := models.CategoryCAM
	for _, lease := range []*models.LeaseTerms{nil, models.EmptyLeaseTerms(""), uncited, fullLease()} {
		for _, term := range []string{"", "utility", "cam", "tax", "cap", "disallowed", "see lease document"} {
			for _, category := range []*models.Category{nil, &cam} {
				got := locator.Find(lease, term, category)
				assert.NotEqual(t, models.NoCitation, got)
				if lease == nil || lease == uncited || lease.IsEmpty() {
					assert.Empty(t, got)
				}
			}
		}
	}
}
