// Package violation decides whether a single invoice charge breaks the lease or a
// general leasing-fairness rule.
package violation

import (
	"strings"

	"fjacquet/lease-audit/internal/clause"
	"fjacquet/lease-audit/internal/models"

	"github.com/shopspring/decimal"
)

// ClauseFinder looks up the clause to cite for a flagged charge.
type ClauseFinder interface {
	Find(lease *models.LeaseTerms, searchTerm string, category *models.Category) string
}

// Checker evaluates the ordered rule chain. It is stateless and safe for concurrent use.
type Checker struct {
	locator ClauseFinder
}

// NewChecker creates a Checker citing clauses through locator. A nil locator uses
// clause.NewLocator.
func NewChecker(locator ClauseFinder) *Checker {
	if locator == nil {
		locator = clause.NewLocator()
	}
	return &Checker{locator: locator}
}

// Check runs the rules in order against item and returns the verdict of the first one
// that applies, or NotViolating. totalInvoice is the sum of all invoice amounts and is
// used for percentage-based rules.
func (c *Checker) Check(item models.LineItem, lease *models.LeaseTerms, totalInvoice decimal.Decimal) Verdict {
	if lease == nil {
		lease = models.EmptyLeaseTerms("")
	}
	in := input{
		item:         item,
		description:  strings.ToLower(item.Description),
		lease:        lease,
		totalInvoice: totalInvoice,
	}
	for _, r := range chain {
		if verdict, ok := r.evaluate(c, in); ok {
			return verdict
		}
	}
	return NotViolating
}
