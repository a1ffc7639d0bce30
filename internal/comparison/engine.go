// Package comparison compares an invoice against a lease and builds the audit report.
package comparison

import (
	"fjacquet/lease-audit/internal/auditerror"
	"fjacquet/lease-audit/internal/categorizer"
	"fjacquet/lease-audit/internal/currencyutils"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"
	"fjacquet/lease-audit/internal/violation"

	"github.com/shopspring/decimal"
)

// ViolationChecker decides whether a single line item violates the lease.
type ViolationChecker interface {
	Check(item models.LineItem, lease *models.LeaseTerms, totalInvoice decimal.Decimal) violation.Verdict
}

// Engine runs duplicate detection and the violation checker over every line item.
// It keeps no state between calls: Compare is a pure function of its inputs.
type Engine struct {
	checker     ViolationChecker
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// NewEngine creates an Engine. A nil checker uses violation.NewChecker(nil) and a nil
// categorizer uses categorizer.NewCategorizer.
func NewEngine(checker ViolationChecker, cat *categorizer.Categorizer, logger logging.Logger) *Engine {
	logger = logging.OrDefault(logger)
	if checker == nil {
		checker = violation.NewChecker(nil)
	}
	if cat == nil {
		cat = categorizer.NewCategorizer(logger)
	}
	return &Engine{checker: checker, categorizer: cat, logger: logger}
}

// Compare checks every item against lease and returns the report. A nil lease or an
// empty item list yields an empty report. Items without a category are categorized
// first; any other invariant violation returns an *auditerror.InvalidInputError.
func (e *Engine) Compare(lease *models.LeaseTerms, items []models.LineItem) (*models.ComparisonReport, error) {
	report := models.NewEmptyReport()
	if lease == nil || len(items) == 0 {
		return report, nil
	}

	prepared, err := e.prepare(items)
	if err != nil {
		return nil, err
	}

	totalInvoice := models.TotalAmount(prepared)
	seen := make(map[string]struct{}, len(prepared))

	for _, item := range prepared {
		key := item.NormalizedDescription()
		if _, dup := seen[key]; dup {
			e.logger.Debug("Duplicate charge",
				logging.F(logging.FieldLineNumber, item.LineNumber),
				logging.F(logging.FieldDescription, item.Description))
			report.Mismatches = append(report.Mismatches, models.Violation{
				Item:            item,
				Reason:          models.ReasonDuplicateCharge,
				Explanation:     models.ExplanationDuplicateCharge,
				SuggestedAction: models.ActionRemoveDuplicate,
				Kind:            models.ViolationKindDuplicate,
			})
			report.Overcharges = append(report.Overcharges, models.Overcharge{
				Description: item.Description,
				Amount:      item.Amount,
				Reason:      models.ReasonDuplicateCharge,
			})
			report.TotalOvercharge = report.TotalOvercharge.Add(item.Amount)
			continue
		}
		seen[key] = struct{}{}

		verdict := e.checker.Check(item, lease, totalInvoice)
		if !verdict.Violating {
			report.AllowedCharges = append(report.AllowedCharges, item)
			continue
		}

		e.logger.Debug("Charge flagged",
			logging.F(logging.FieldLineNumber, item.LineNumber),
			logging.F(logging.FieldRule, verdict.Rule),
			logging.F(logging.FieldReason, verdict.Reason))
		report.Mismatches = append(report.Mismatches, models.Violation{
			Item:            item,
			Reason:          verdict.Reason,
			Explanation:     verdict.Explanation,
			ClauseReference: verdict.ClauseReference,
			SuggestedAction: models.ActionRequestJustification,
			Kind:            models.ViolationKindRule,
		})
		report.Overcharges = append(report.Overcharges, models.Overcharge{
			Description: item.Description,
			Amount:      item.Amount,
			Reason:      verdict.Reason,
		})
		report.DisallowedCharges = append(report.DisallowedCharges, models.DisallowedCharge{
			Item:   item,
			Reason: verdict.Reason,
		})
		report.TotalOvercharge = report.TotalOvercharge.Add(item.Amount)
	}

	report.Summary = models.Summary{
		TotalInvoiceAmount:   totalInvoice,
		TotalOvercharge:      report.TotalOvercharge,
		TotalAllowed:         totalInvoice.Sub(report.TotalOvercharge),
		NumberOfItems:        len(prepared),
		NumberOfMismatches:   len(report.Mismatches),
		OverchargePercentage: currencyutils.Percentage(report.TotalOvercharge, totalInvoice),
	}

	e.logger.Info("Comparison complete",
		logging.F(logging.FieldCount, len(prepared)),
		logging.F("mismatches", len(report.Mismatches)),
		logging.F("total_overcharge", report.TotalOvercharge.StringFixed(2)))
	return report, nil
}

// prepare copies the items, fills in missing categories and validates the result
// without touching the caller's slice.
func (e *Engine) prepare(items []models.LineItem) ([]models.LineItem, error) {
	prepared := make([]models.LineItem, len(items))
	seenLines := make(map[int]struct{}, len(items))

	for i, item := range items {
		if item.Category == "" {
			item.Category = e.categorizer.Categorize(item.Description)
		}
		if err := item.Validate(); err != nil {
			return nil, &auditerror.InvalidInputError{Err: err}
		}
		if _, dup := seenLines[item.LineNumber]; dup {
			return nil, &auditerror.InvalidInputError{
				LineNumber: item.LineNumber,
				Field:      "line_number",
				Reason:     "line number is used more than once",
			}
		}
		seenLines[item.LineNumber] = struct{}{}
		prepared[i] = item
	}
	return prepared, nil
}
