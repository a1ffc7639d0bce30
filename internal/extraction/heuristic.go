package extraction

import (
	"context"
	"regexp"
	"strings"

	"fjacquet/lease-audit/internal/categorizer"
	"fjacquet/lease-audit/internal/currencyutils"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"
	"fjacquet/lease-audit/internal/textutils"

	"github.com/shopspring/decimal"
)

const (
	maxCAMWordingChars     = 200
	maxUtilityWordingChars = 100
	minCAMWordingChars     = 10
)

var (
	camPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bcam\b[:\s]+([^.]+)`),
		regexp.MustCompile(`(?i)common\s+area\s+maintenance[:\s]+([^.]+)`),
		regexp.MustCompile(`(?i)common\s+area\s+charges[:\s]+([^.]+)`),
	}

	// type in group 1 (empty means "tax"), value in group 3
	taxPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(property\s+tax(?:es)?|real\s+estate\s+tax(?:es)?)[:\s]+()([0-9][0-9,]*\.?\d*%?)`),
		regexp.MustCompile(`(?i)\b()tax(es)?\s+([0-9][0-9,]*\.?\d*%?)`),
	}

	utilityPattern = regexp.MustCompile(`(?i)\b(electricity|electric|water|gas|sewer|trash)[:\s]+([^.\n]+)`)

	escalationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)escalation\s+cap[:\s]+([0-9][0-9,]*\.?\d*%?)`),
		regexp.MustCompile(`(?i)annual\s+increase\s+cap[:\s]+([0-9][0-9,]*\.?\d*%?)`),
		regexp.MustCompile(`(?i)maximum\s+increase[:\s]+([0-9][0-9,]*\.?\d*%?)`),
	}

	allowedFeePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\ballowed\s+fees?[:\s]+([^.\n]+)`),
		regexp.MustCompile(`(?i)\bpermitted\s+charges?[:\s]+([^.\n]+)`),
	}

	disallowedFeePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bdisallowed\s+fees?[:\s]+([^.\n]+)`),
		regexp.MustCompile(`(?i)\bprohibited\s+charges?[:\s]+([^.\n]+)`),
		regexp.MustCompile(`(?i)\bnot\s+allowed[:\s]+([^.\n]+)`),
	}

	invoiceAmountPattern = regexp.MustCompile(`\$?(\d[\d,]*(?:\.\d{1,2})?)`)
	decimalAmountPattern = regexp.MustCompile(`\d+\.\d{2}`)
	nonAmountChars       = regexp.MustCompile(`[^\d.]`)

	summaryLinePrefixes = []string{"total", "subtotal", "sub-total", "balance", "amount due", "grand total"}
)

// HeuristicExtractor extracts lease terms and line items with regular expressions. It
// never fails on text input; unrecognised text yields empty results.
type HeuristicExtractor struct {
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// NewHeuristicExtractor creates a HeuristicExtractor. A nil categorizer uses
// categorizer.NewCategorizer.
func NewHeuristicExtractor(cat *categorizer.Categorizer, logger logging.Logger) *HeuristicExtractor {
	logger = logging.OrDefault(logger)
	if cat == nil {
		cat = categorizer.NewCategorizer(logger)
	}
	return &HeuristicExtractor{categorizer: cat, logger: logger}
}

// Name returns the name of this extractor.
func (e *HeuristicExtractor) Name() string {
	return "heuristic"
}

// ExtractLease applies the lease patterns to text. Clause references are taken from a
// section marker on the matched line, or else from the closest preceding heading line.
func (e *HeuristicExtractor) ExtractLease(_ context.Context, text string) (*models.LeaseTerms, error) {
	lease := models.EmptyLeaseTerms(text)
	doc := newDocument(text)

	for _, re := range camPatterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			wording := strings.TrimSpace(text[m[2]:m[3]])
			if len([]rune(wording)) <= minCAMWordingChars {
				continue
			}
			item := models.NewClauseItem(textutils.Truncate(wording, maxCAMWordingChars), doc.referenceAt(m[0]))
			lease.CAMRules = appendUnique(lease.CAMRules, item)
		}
	}

	for _, re := range taxPatterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			typ := typeLabel(text[m[2]:m[3]])
			if typ == "" {
				typ = "tax"
			}
			item := models.NewTypedClauseItem(typ, text[m[6]:m[7]], doc.referenceAt(m[0]))
			lease.TaxesDetails = upsertTyped(lease.TaxesDetails, item)
		}
	}

	for _, m := range utilityPattern.FindAllStringSubmatchIndex(text, -1) {
		details := textutils.Truncate(strings.TrimSpace(text[m[4]:m[5]]), maxUtilityWordingChars)
		item := models.NewTypedClauseItem(typeLabel(text[m[2]:m[3]]), details, doc.referenceAt(m[0]))
		lease.UtilitiesDetails = upsertTyped(lease.UtilitiesDetails, item)
	}

	for _, re := range escalationPatterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			item := models.NewTypedClauseItem("annual", text[m[2]:m[3]], doc.referenceAt(m[0]))
			lease.EscalationCapsDetails = upsertTyped(lease.EscalationCapsDetails, item)
		}
	}

	lease.AllowedFees = e.feeList(doc, text, allowedFeePatterns)
	lease.DisallowedFees = e.feeList(doc, text, disallowedFeePatterns)

	e.logger.Info("Extracted lease terms",
		logging.F(logging.FieldStrategy, e.Name()),
		logging.F(logging.FieldCount, lease.ClauseCount()))
	return lease, nil
}

func (e *HeuristicExtractor) feeList(doc *document, text string, patterns []*regexp.Regexp) []models.ClauseItem {
	fees := []models.ClauseItem{}
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			ref := doc.referenceAt(m[0])
			for _, fee := range textutils.SplitList(text[m[2]:m[3]]) {
				fees = appendUnique(fees, models.NewClauseItem(fee, ref))
			}
		}
	}
	return fees
}

// ExtractLineItems reads one charge per line: the description is the text before the
// first amount and the amount is the last one on the line. When no line qualifies, a
// second pass takes the last decimal token of each line as its amount.
func (e *HeuristicExtractor) ExtractLineItems(_ context.Context, text string) ([]models.LineItem, error) {
	lines := strings.Split(text, "\n")
	items := []models.LineItem{}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		matches := invoiceAmountPattern.FindAllStringSubmatchIndex(line, -1)
		if len(matches) == 0 {
			continue
		}
		description := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(line[:matches[0][0]]), ":-"))
		last := matches[len(matches)-1]
		amount, err := currencyutils.ParseAmount(strings.ReplaceAll(line[last[2]:last[3]], ",", ""))
		if err != nil || !amount.IsPositive() || len([]rune(description)) <= 2 || isSummaryLine(description) {
			continue
		}
		items = append(items, e.newItem(description, amount))
	}

	if len(items) == 0 {
		for _, line := range lines {
			if !decimalAmountPattern.MatchString(line) {
				continue
			}
			parts := strings.Fields(line)
			if len(parts) < 2 {
				continue
			}
			for i := len(parts) - 1; i > 0; i-- {
				amountStr := nonAmountChars.ReplaceAllString(parts[i], "")
				if !strings.Contains(amountStr, ".") {
					continue
				}
				amount, err := currencyutils.ParseAmount(amountStr)
				description := strings.Join(parts[:i], " ")
				if err == nil && !amount.IsNegative() && !isSummaryLine(description) {
					items = append(items, e.newItem(description, amount))
				}
				break
			}
		}
	}

	models.Renumber(items)
	e.logger.Info("Extracted invoice line items",
		logging.F(logging.FieldStrategy, e.Name()),
		logging.F(logging.FieldCount, len(items)))
	return items, nil
}

func (e *HeuristicExtractor) newItem(description string, amount decimal.Decimal) models.LineItem {
	return e.categorizer.CategorizeItem(models.LineItem{Description: description, Amount: amount})
}

func isSummaryLine(description string) bool {
	lower := strings.ToLower(description)
	for _, prefix := range summaryLinePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func typeLabel(s string) string {
	return strings.ToLower(textutils.NormalizeSpace(s))
}

// appendUnique appends item unless an item with the same wording is already present.
func appendUnique(items []models.ClauseItem, item models.ClauseItem) []models.ClauseItem {
	if item.ExactWording() == "" {
		return items
	}
	for _, existing := range items {
		if strings.EqualFold(existing.ExactWording(), item.ExactWording()) {
			return items
		}
	}
	return append(items, item)
}

// upsertTyped replaces the entry of the same type in place, or appends a new one, so
// that each type label appears once.
func upsertTyped(items []models.ClauseItem, item models.ClauseItem) []models.ClauseItem {
	for i, existing := range items {
		if existing.Type() == item.Type() {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

// document indexes the lines of a text so a match offset can be mapped to the section
// it belongs to.
type document struct {
	lineStarts []int
	lines      []string
}

func newDocument(text string) *document {
	d := &document{lines: strings.Split(text, "\n")}
	offset := 0
	for _, line := range d.lines {
		d.lineStarts = append(d.lineStarts, offset)
		offset += len(line) + 1
	}
	return d
}

func (d *document) lineIndex(offset int) int {
	idx := 0
	for i, start := range d.lineStarts {
		if start > offset {
			break
		}
		idx = i
	}
	return idx
}

// referenceAt returns the clause reference on the line containing offset, or the
// reference of the nearest preceding heading line, or "".
func (d *document) referenceAt(offset int) string {
	idx := d.lineIndex(offset)
	if ref := textutils.ExtractClauseReference(d.lines[idx]); ref != "" {
		return ref
	}
	for i := idx - 1; i >= 0; i-- {
		line := strings.TrimSpace(d.lines[i])
		ref := textutils.ExtractClauseReference(line)
		if ref != "" && strings.HasPrefix(strings.ToLower(line), strings.ToLower(ref)) {
			return ref
		}
	}
	return ""
}
