package report

import (
	"encoding/xml"
	"time"

	"fjacquet/lease-audit/internal/currencyutils"
	"fjacquet/lease-audit/internal/models"
	"fjacquet/lease-audit/internal/textutils"

	"github.com/shopspring/decimal"
)

// Lease section titles, in display order.
const (
	SectionCAM            = "CAM Rules"
	SectionTaxes          = "Taxes"
	SectionUtilities      = "Utilities"
	SectionEscalationCaps = "Escalation Caps"
	SectionAllowedFees    = "Allowed Fees"
	SectionDisallowedFees = "Disallowed Fees"
)

// Line statuses shown in the invoice table.
const (
	StatusAllowed   = "allowed"
	StatusDuplicate = "duplicate"
	StatusViolation = "violation"
)

// Metadata identifies one generated report.
type Metadata struct {
	RunID       string    `json:"run_id" yaml:"run_id" xml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at" xml:"generated_at"`
	Currency    string    `json:"currency" yaml:"currency" xml:"currency"`
}

// SummaryRow is the summary block with amounts already formatted.
type SummaryRow struct {
	TotalInvoiceAmount   string `json:"total_invoice_amount" yaml:"total_invoice_amount" xml:"total_invoice_amount"`
	TotalOvercharge      string `json:"total_overcharge" yaml:"total_overcharge" xml:"total_overcharge"`
	TotalAllowed         string `json:"total_allowed" yaml:"total_allowed" xml:"total_allowed"`
	NumberOfItems        int    `json:"number_of_items" yaml:"number_of_items" xml:"number_of_items"`
	NumberOfMismatches   int    `json:"number_of_mismatches" yaml:"number_of_mismatches" xml:"number_of_mismatches"`
	NumberOfDuplicates   int    `json:"number_of_duplicates" yaml:"number_of_duplicates" xml:"number_of_duplicates"`
	OverchargePercentage string `json:"overcharge_percentage" yaml:"overcharge_percentage" xml:"overcharge_percentage"`
}

// ClauseRow is one lease provision with its citation.
type ClauseRow struct {
	Section  string `csv:"section" xml:"section,attr"`
	Type     string `csv:"type" xml:"type,attr,omitempty"`
	Wording  string `csv:"exact_wording" xml:"exact_wording"`
	Citation string `csv:"clause_reference" xml:"clause_reference"`
	Cited    bool   `csv:"cited" xml:"cited,attr"`
}

// ItemRow is one invoice line in the items table.
type ItemRow struct {
	LineNumber  int    `csv:"line_number" xml:"line_number,attr"`
	Description string `csv:"description" xml:"description"`
	Amount      string `csv:"amount" xml:"amount"`
	Category    string `csv:"category" xml:"category"`
	Status      string `csv:"status" xml:"status,attr"`
}

// ViolationRow is one flagged line with everything needed to act on it.
type ViolationRow struct {
	LineNumber      int    `csv:"line_number" xml:"line_number,attr"`
	Description     string `csv:"description" xml:"description"`
	Amount          string `csv:"amount" xml:"amount"`
	Kind            string `csv:"kind" xml:"kind,attr"`
	Reason          string `csv:"reason" xml:"reason"`
	Explanation     string `csv:"explanation" xml:"explanation"`
	Citation        string `csv:"clause_reference" xml:"clause_reference"`
	Cited           bool   `csv:"cited" xml:"cited,attr"`
	SuggestedAction string `csv:"suggested_action" xml:"suggested_action"`
}

// Document is the presentation model shared by every output format. Building it does no
// auditing; it only formats the lease, the items and the comparison report.
type Document struct {
	XMLName    xml.Name       `json:"-" yaml:"-" xml:"lease_audit_report"`
	Metadata   Metadata       `xml:"metadata"`
	Summary    SummaryRow     `xml:"summary"`
	Clauses    []ClauseRow    `xml:"lease_terms>clause"`
	Items      []ItemRow      `xml:"line_items>item"`
	Violations []ViolationRow `xml:"violations>violation"`
}

// BuildDocument formats lease, items and report. Nil inputs are treated as empty.
func BuildDocument(lease *models.LeaseTerms, items []models.LineItem, report *models.ComparisonReport, meta Metadata) *Document {
	if lease == nil {
		lease = models.EmptyLeaseTerms("")
	}
	if report == nil {
		report = models.NewEmptyReport()
	}
	doc := &Document{
		Metadata: meta,
		Summary: SummaryRow{
			TotalInvoiceAmount:   money(report.Summary.TotalInvoiceAmount),
			TotalOvercharge:      money(report.Summary.TotalOvercharge),
			TotalAllowed:         money(report.Summary.TotalAllowed),
			NumberOfItems:        report.Summary.NumberOfItems,
			NumberOfMismatches:   report.Summary.NumberOfMismatches,
			NumberOfDuplicates:   report.DuplicateCount(),
			OverchargePercentage: currencyutils.FormatPercent(report.Summary.OverchargePercentage, 1),
		},
		Clauses:    []ClauseRow{},
		Items:      []ItemRow{},
		Violations: []ViolationRow{},
	}

	for _, section := range LeaseSections(lease) {
		for _, c := range section.Items {
			doc.Clauses = append(doc.Clauses, ClauseRow{
				Section:  section.Title,
				Type:     c.Type(),
				Wording:  c.ExactWording(),
				Citation: c.Citation(),
				Cited:    c.HasReference(),
			})
		}
	}

	for _, item := range items {
		status := StatusAllowed
		if v, ok := report.ViolationFor(item.LineNumber); ok {
			status = StatusViolation
			if v.IsDuplicate() {
				status = StatusDuplicate
			}
		}
		doc.Items = append(doc.Items, ItemRow{
			LineNumber:  item.LineNumber,
			Description: item.Description,
			Amount:      money(item.Amount),
			Category:    item.Category.String(),
			Status:      status,
		})
	}

	for _, v := range report.Mismatches {
		doc.Violations = append(doc.Violations, ViolationRow{
			LineNumber:      v.Item.LineNumber,
			Description:     v.Item.Description,
			Amount:          money(v.Item.Amount),
			Kind:            string(v.Kind),
			Reason:          v.Reason,
			Explanation:     v.Explanation,
			Citation:        v.Citation(),
			Cited:           v.HasCitation(),
			SuggestedAction: v.SuggestedAction,
		})
	}
	return doc
}

// Section is a titled group of lease provisions.
type Section struct {
	Title string
	Items []models.ClauseItem
}

// LeaseSections returns the lease provisions grouped by section, in display order.
func LeaseSections(lease *models.LeaseTerms) []Section {
	return []Section{
		{SectionCAM, lease.CAMRules},
		{SectionTaxes, lease.TaxesDetails},
		{SectionUtilities, lease.UtilitiesDetails},
		{SectionEscalationCaps, lease.EscalationCapsDetails},
		{SectionAllowedFees, lease.AllowedFees},
		{SectionDisallowedFees, lease.DisallowedFees},
	}
}

// ShortDescription cuts a description for table cells.
func ShortDescription(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}
	return textutils.TruncateEllipsis(s, maxChars)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
