package models

import "github.com/shopspring/decimal"

// ViolationKind tells a duplicate line apart from a rule violation.
type ViolationKind string

const (
	ViolationKindDuplicate ViolationKind = "duplicate"
	ViolationKindRule      ViolationKind = "rule"
)

// Reasons and suggested actions that are fixed regardless of lease content.
const (
	ReasonDuplicateCharge      = "Duplicate Charge"
	ExplanationDuplicateCharge = "Duplicate charge detected. This item appears multiple times in the invoice."
	ActionRemoveDuplicate      = "Review with landlord - remove duplicate"
	ActionRequestJustification = "Review with landlord - request removal or justification"
)

// Violation is one flagged invoice line.
type Violation struct {
	Item            LineItem      `json:"item" yaml:"item"`
	Reason          string        `json:"reason" yaml:"reason"`
	Explanation     string        `json:"explanation" yaml:"explanation"`
	ClauseReference string        `json:"clause_reference,omitempty" yaml:"clause_reference,omitempty"`
	SuggestedAction string        `json:"suggested_action" yaml:"suggested_action"`
	Kind            ViolationKind `json:"kind" yaml:"kind"`
}

// HasCitation reports whether the violation points at a real lease clause.
func (v Violation) HasCitation() bool { return v.ClauseReference != "" }

// Citation returns the clause reference for display, or NoCitation when absent.
func (v Violation) Citation() string {
	if v.ClauseReference == "" {
		return NoCitation
	}
	return v.ClauseReference
}

// IsDuplicate reports whether the line was flagged as a repeated charge.
func (v Violation) IsDuplicate() bool { return v.Kind == ViolationKindDuplicate }

// Overcharge is the lightweight view of a flagged amount.
type Overcharge struct {
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Reason      string          `json:"reason" yaml:"reason"`
}

// DisallowedCharge is a line that failed a rule check.
type DisallowedCharge struct {
	Item   LineItem `json:"item" yaml:"item"`
	Reason string   `json:"reason" yaml:"reason"`
}

// Summary aggregates a comparison run.
type Summary struct {
	TotalInvoiceAmount   decimal.Decimal `json:"total_invoice_amount" yaml:"total_invoice_amount"`
	TotalOvercharge      decimal.Decimal `json:"total_overcharge" yaml:"total_overcharge"`
	TotalAllowed         decimal.Decimal `json:"total_allowed" yaml:"total_allowed"`
	NumberOfItems        int             `json:"number_of_items" yaml:"number_of_items"`
	NumberOfMismatches   int             `json:"number_of_mismatches" yaml:"number_of_mismatches"`
	OverchargePercentage decimal.Decimal `json:"overcharge_percentage" yaml:"overcharge_percentage"`
}

// ComparisonReport is the result of comparing one invoice against one lease.
type ComparisonReport struct {
	Mismatches        []Violation        `json:"mismatches" yaml:"mismatches"`
	Overcharges       []Overcharge       `json:"overcharges" yaml:"overcharges"`
	TotalOvercharge   decimal.Decimal    `json:"total_overcharge" yaml:"total_overcharge"`
	AllowedCharges    []LineItem         `json:"allowed_charges" yaml:"allowed_charges"`
	DisallowedCharges []DisallowedCharge `json:"disallowed_charges" yaml:"disallowed_charges"`
	Summary           Summary            `json:"summary" yaml:"summary"`
}

// NewEmptyReport returns a report with zero totals and empty, non-nil lists.
func NewEmptyReport() *ComparisonReport {
	return &ComparisonReport{
		Mismatches:        []Violation{},
		Overcharges:       []Overcharge{},
		TotalOvercharge:   decimal.Zero,
		AllowedCharges:    []LineItem{},
		DisallowedCharges: []DisallowedCharge{},
		Summary: Summary{
			TotalInvoiceAmount:   decimal.Zero,
			TotalOvercharge:      decimal.Zero,
			TotalAllowed:         decimal.Zero,
			OverchargePercentage: decimal.Zero,
		},
	}
}

// DuplicateCount returns how many mismatches are repeated charges.
func (r *ComparisonReport) DuplicateCount() int {
	count := 0
	for _, m := range r.Mismatches {
		if m.IsDuplicate() {
			count++
		}
	}
	return count
}

// ViolationFor returns the mismatch recorded for a line number, if any.
func (r *ComparisonReport) ViolationFor(lineNumber int) (Violation, bool) {
	for _, m := range r.Mismatches {
		if m.Item.LineNumber == lineNumber {
			return m, true
		}
	}
	return Violation{}, false
}
