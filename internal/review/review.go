// Package review builds the line-by-line view used to walk through an audit with the
// landlord. Like the report renderer it only rearranges the comparison result.
package review

import (
	"fjacquet/lease-audit/internal/models"
	"fjacquet/lease-audit/internal/report"

	"github.com/shopspring/decimal"
)

// Status of one invoice line in the view.
type Status string

const (
	StatusAllowed   Status = report.StatusAllowed
	StatusDuplicate Status = report.StatusDuplicate
	StatusViolation Status = report.StatusViolation
)

// CitationState tells whether a lease clause backs an entry.
type CitationState string

const (
	CitationCited CitationState = "cited"
	CitationNone  CitationState = "none"
)

// Citation is a clause reference together with its state. Text holds the display
// sentinel when State is CitationNone.
type Citation struct {
	State CitationState
	Text  string
}

func citation(ref string) Citation {
	if ref == "" {
		return Citation{State: CitationNone, Text: models.NoCitation}
	}
	return Citation{State: CitationCited, Text: ref}
}

// Entry is one invoice line. Reason, Explanation and SuggestedAction are empty for
// allowed lines.
type Entry struct {
	LineNumber      int
	Description     string
	Amount          decimal.Decimal
	Category        models.Category
	Status          Status
	Reason          string
	Explanation     string
	SuggestedAction string
	Citation        Citation
}

// Flagged reports whether the line needs attention.
func (e Entry) Flagged() bool { return e.Status != StatusAllowed }

// Term is one lease provision.
type Term struct {
	Section  string
	Type     string
	Wording  string
	Citation Citation
}

// View is everything the review screen shows. Currency only affects rendering and may
// be set by the caller after Build.
type View struct {
	Terms    []Term
	Entries  []Entry
	Summary  models.Summary
	Currency string
}

// Flagged returns the entries needing attention, in invoice order.
func (v View) Flagged() []Entry {
	flagged := make([]Entry, 0, len(v.Entries))
	for _, e := range v.Entries {
		if e.Flagged() {
			flagged = append(flagged, e)
		}
	}
	return flagged
}

// Build assembles the view. Items keep their order; nil inputs are treated as empty.
func Build(lease *models.LeaseTerms, items []models.LineItem, result *models.ComparisonReport) View {
	if lease == nil {
		lease = models.EmptyLeaseTerms("")
	}
	if result == nil {
		result = models.NewEmptyReport()
	}

	view := View{
		Terms:   []Term{},
		Entries: make([]Entry, 0, len(items)),
		Summary: result.Summary,
	}
	for _, section := range report.LeaseSections(lease) {
		for _, c := range section.Items {
			view.Terms = append(view.Terms, Term{
				Section:  section.Title,
				Type:     c.Type(),
				Wording:  c.ExactWording(),
				Citation: citation(c.Reference()),
			})
		}
	}

	for _, item := range items {
		entry := Entry{
			LineNumber:  item.LineNumber,
			Description: item.Description,
			Amount:      item.Amount,
			Category:    item.Category,
			Status:      StatusAllowed,
			Citation:    citation(""),
		}
		if v, ok := result.ViolationFor(item.LineNumber); ok {
			entry.Status = StatusViolation
			if v.IsDuplicate() {
				entry.Status = StatusDuplicate
			}
			entry.Reason = v.Reason
			entry.Explanation = v.Explanation
			entry.SuggestedAction = v.SuggestedAction
			entry.Citation = citation(v.ClauseReference)
		}
		view.Entries = append(view.Entries, entry)
	}
	return view
}
