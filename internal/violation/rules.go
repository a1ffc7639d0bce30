package violation

import (
	"fmt"
	"strings"

	"fjacquet/lease-audit/internal/currencyutils"
	"fjacquet/lease-audit/internal/models"
	"fjacquet/lease-audit/internal/textutils"

	"github.com/shopspring/decimal"
)

// Rule names, in evaluation order.
const (
	RuleUtilityMarkup      = "utility_markup"
	RuleUnrelatedLegalFee  = "unrelated_legal_fee"
	RuleCapitalImprovement = "capital_improvement"
	RuleManagementFee      = "management_fee"
	RuleDisallowedFee      = "disallowed_fee"
	RuleMiscategorizedCAM  = "miscategorized_cam"
)

var (
	utilityMarkupKeywords = []string{
		"utility admin", "admin fee", "utility markup", "utility surcharge",
		"utility processing", "utility handling", "utility service fee",
	}

	legalKeywords        = []string{"legal fee", "attorney", "lawyer", "legal cost", "litigation"}
	tenantActionKeywords = []string{"eviction", "collection", "tenant", "default", "breach"}

	capitalKeywords = []string{
		"roof", "capital improvement", "capital expenditure", "renovation",
		"remodeling", "structural", "building improvement", "facility upgrade",
		"hvac replacement", "plumbing replacement", "electrical upgrade",
	}

	managementKeywords   = []string{"management fee", "property management", "management charge", "mgmt fee"}
	camExclusionKeywords = []string{"capital", "improvement", "roof", "structural", "renovation", "upgrade"}

	managementFeeCap = decimal.NewFromInt(5)
)

const (
	explanationUtilityMarkup = "Utility markups and administrative fees are typically not allowed unless " +
		"explicitly stated in the lease. These are pass-through charges and landlords cannot add markups."

	explanationLegalFee = "Legal fees that are not related to tenant actions (like eviction or collection) " +
		"are typically not chargeable to tenants. General legal fees for landlord operations should not be passed through."

	explanationCapital = "Capital improvements and major repairs (like roof replacement, HVAC systems, " +
		"structural work) are typically the landlord's responsibility and should not be charged to tenants. " +
		"These are long-term investments that benefit the property owner."

	explanationManagementOver = "Management fees exceeding 5%% of total charges are typically excessive. " +
		"This charge represents %s%% of the total invoice, which exceeds the standard 5%% cap."

	explanationManagementNotAllowed = "Management fees are explicitly disallowed per the lease terms."

	explanationDisallowed = "This fee type is explicitly disallowed per the lease terms: '%s'"

	explanationNonCAM = "This charge appears to be a capital improvement or non-CAM item " +
		"incorrectly categorized as CAM. CAM should only include common area maintenance, not capital improvements."
)

// input is what every rule sees.
type input struct {
	item         models.LineItem
	description  string // lower-cased
	lease        *models.LeaseTerms
	totalInvoice decimal.Decimal
}

// rule is one entry of the ordered chain. evaluate returns ok=false when the rule does
// not apply, letting the next rule run.
type rule struct {
	name     string
	evaluate func(c *Checker, in input) (Verdict, bool)
}

// chain is the fixed evaluation order; the first rule that applies decides the verdict.
var chain = []rule{
	{RuleUtilityMarkup, utilityMarkup},
	{RuleUnrelatedLegalFee, unrelatedLegalFee},
	{RuleCapitalImprovement, capitalImprovement},
	{RuleManagementFee, managementFee},
	{RuleDisallowedFee, disallowedFee},
	{RuleMiscategorizedCAM, miscategorizedCAM},
}

// Rules returns the rule names in evaluation order.
func Rules() []string {
	names := make([]string, len(chain))
	for i, r := range chain {
		names[i] = r.name
	}
	return names
}

func utilityMarkup(c *Checker, in input) (Verdict, bool) {
	if !textutils.ContainsAny(in.description, utilityMarkupKeywords...) {
		return NotViolating, false
	}
	ref := c.locator.Find(in.lease, "utility", models.CategoryUtilities.Ptr())
	if ref == "" {
		ref = c.locator.Find(in.lease, "disallowed", nil)
	}
	return violating(RuleUtilityMarkup, "Utility Admin Fee / Markup", explanationUtilityMarkup, ref), true
}

func unrelatedLegalFee(c *Checker, in input) (Verdict, bool) {
	if !textutils.ContainsAny(in.description, legalKeywords...) ||
		textutils.ContainsAny(in.description, tenantActionKeywords...) {
		return NotViolating, false
	}
	ref := c.locator.Find(in.lease, "legal", nil)
	return violating(RuleUnrelatedLegalFee, "Legal Fees Unrelated to Tenant", explanationLegalFee, ref), true
}

func capitalImprovement(c *Checker, in input) (Verdict, bool) {
	if !textutils.ContainsAny(in.description, capitalKeywords...) {
		return NotViolating, false
	}
	ref := c.locator.Find(in.lease, "capital", models.CategoryCAM.Ptr())
	return violating(RuleCapitalImprovement, "Capital Improvement Charge", explanationCapital, ref), true
}

func managementFee(c *Checker, in input) (Verdict, bool) {
	if !textutils.ContainsAny(in.description, managementKeywords...) {
		return NotViolating, false
	}

	if in.totalInvoice.IsPositive() {
		pct := currencyutils.Percentage(in.item.Amount, in.totalInvoice)
		if pct.GreaterThan(managementFeeCap) {
			shown := pct.StringFixedBank(1)
			ref := c.locator.Find(in.lease, "management", nil)
			return violating(RuleManagementFee,
				fmt.Sprintf("Management Fee Over 5%% (%s%%)", shown),
				fmt.Sprintf(explanationManagementOver, shown),
				ref), true
		}
	}

	for _, fee := range in.lease.DisallowedFees {
		if strings.Contains(strings.ToLower(fee.ExactWording()), "management") {
			return violating(RuleManagementFee, "Management Fee Not Allowed",
				explanationManagementNotAllowed, fee.Reference()), true
		}
	}
	return NotViolating, false
}

func disallowedFee(c *Checker, in input) (Verdict, bool) {
	for _, fee := range in.lease.DisallowedFees {
		wording := fee.ExactWording()
		if !matchesDisallowed(in.description, wording) {
			continue
		}
		ref := fee.Reference()
		if ref == "" {
			ref = c.locator.Find(in.lease, "disallowed", nil)
		}
		reason := "Disallowed Fee: " + textutils.Truncate(wording, models.MaxReasonWordingChars)
		return violating(RuleDisallowedFee, reason, fmt.Sprintf(explanationDisallowed, wording), ref), true
	}
	return NotViolating, false
}

// matchesDisallowed reports whether the whole wording, or any of its words longer than
// three characters, occurs in the lower-cased description.
func matchesDisallowed(description, wording string) bool {
	lower := strings.ToLower(wording)
	if lower == "" {
		return false
	}
	if strings.Contains(description, lower) {
		return true
	}
	for _, word := range textutils.SignificantWords(lower, 3) {
		if strings.Contains(description, word) {
			return true
		}
	}
	return false
}

func miscategorizedCAM(c *Checker, in input) (Verdict, bool) {
	if in.item.Category != models.CategoryCAM ||
		!textutils.ContainsAny(in.description, camExclusionKeywords...) {
		return NotViolating, false
	}
	ref := c.locator.Find(in.lease, "cam", models.CategoryCAM.Ptr())
	return violating(RuleMiscategorizedCAM, "Non-CAM Item in CAM Charges", explanationNonCAM, ref), true
}
