// Package clause finds the lease clause to cite when an invoice charge is flagged.
package clause

import (
	"strings"

	"fjacquet/lease-audit/internal/models"
)

// Locator searches a lease for the most relevant clause reference. It holds no state and
// never mutates the lease.
type Locator struct{}

// NewLocator returns a Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Find returns the reference of the most relevant clause for searchTerm, or "" when the
// lease has no cited clause that applies. category may be nil. The display sentinel for a
// missing citation is never returned.
func (l *Locator) Find(lease *models.LeaseTerms, searchTerm string, category *models.Category) string {
	if lease == nil {
		return ""
	}
	term := strings.ToLower(searchTerm)

	if ref := firstWordingMatch(lease.DisallowedFees, term); ref != "" {
		return ref
	}
	if ref := firstWordingMatch(lease.AllowedFees, term); ref != "" {
		return ref
	}

	if is(category, models.CategoryCAM) || strings.Contains(term, "cam") || strings.Contains(term, "common area") {
		if ref := firstReference(lease.CAMRules); ref != "" {
			return ref
		}
	}
	if strings.Contains(term, "utility") || is(category, models.CategoryUtilities) {
		if ref := firstReference(lease.UtilitiesDetails); ref != "" {
			return ref
		}
	}
	if strings.Contains(term, "tax") || is(category, models.CategoryTax) {
		if ref := firstReference(lease.TaxesDetails); ref != "" {
			return ref
		}
	}
	if strings.Contains(term, "escalation") || strings.Contains(term, "cap") {
		if ref := firstReference(lease.EscalationCapsDetails); ref != "" {
			return ref
		}
	}

	for _, items := range [][]models.ClauseItem{
		lease.CAMRules,
		lease.DisallowedFees,
		lease.AllowedFees,
		lease.UtilitiesDetails,
		lease.TaxesDetails,
		lease.EscalationCapsDetails,
	} {
		if ref := firstReference(items); ref != "" {
			return ref
		}
	}
	return ""
}

// firstWordingMatch returns the reference of the first cited item whose wording contains
// term. term must already be lower-cased.
func firstWordingMatch(items []models.ClauseItem, term string) string {
	for _, item := range items {
		if item.HasReference() && strings.Contains(strings.ToLower(item.ExactWording()), term) {
			return item.Reference()
		}
	}
	return ""
}

func firstReference(items []models.ClauseItem) string {
	for _, item := range items {
		if item.HasReference() {
			return item.Reference()
		}
	}
	return ""
}

func is(category *models.Category, want models.Category) bool {
	return category != nil && *category == want
}
