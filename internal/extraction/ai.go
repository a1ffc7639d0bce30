package extraction

import (
	"context"
	"encoding/json"
	"fmt"

	"fjacquet/lease-audit/internal/auditerror"
	"fjacquet/lease-audit/internal/categorizer"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"
	"fjacquet/lease-audit/internal/textutils"

	"github.com/shopspring/decimal"
)

// DefaultMaxInputChars bounds how much document text is sent to the model.
const DefaultMaxInputChars = 12000

const truncationMarker = "\n[... text truncated ...]"

const (
	leaseSystemPrompt = "You are an expert at extracting structured information from lease documents. " +
		"Extract all relevant fields accurately."
	invoiceSystemPrompt = "You are an expert at extracting structured line items from invoices. " +
		"Extract all charges accurately with their amounts and categories."

	leasePromptTemplate = `Extract the following key information from this lease document:

1. CAM Rules: Extract all Common Area Maintenance (CAM) rules, charges, allocation methods, and provisions
2. Taxes: Extract all tax-related information including property taxes, real estate taxes, tax rates, and tax responsibilities
3. Utilities: Extract utility-related information including electricity, water, gas, sewer, trash, and any utility charges or responsibilities
4. Escalation Caps: Extract any escalation caps, annual increase limits, maximum increase percentages, or rent increase restrictions
5. Allowed Fees: Extract all fees and charges that are explicitly allowed, permitted, or authorized in the lease
6. Disallowed Fees: Extract all fees and charges that are explicitly disallowed, prohibited, or not allowed in the lease

For every entry quote the lease text verbatim in exact_wording and give the section, article,
clause or paragraph it comes from in clause_reference. Use an empty string when no reference is
visible. If a category has no information, return an empty array.

Respond with a single JSON object matching this JSON schema:
%s

Lease Document Text:
%s`

	invoicePromptTemplate = `Extract all line items from this invoice document. For each line item, extract:
1. Description: The full description of the charge or service
2. Amount: The monetary amount (as a number, not including currency symbols)
3. Category: Categorize each item as one of: CAM (Common Area Maintenance), Tax, Utilities, Rent, Insurance, or Other

Do not include subtotal, total or balance lines.

Respond with a single JSON object matching this JSON schema:
%s

Invoice Document Text:
%s`
)

type aiClause struct {
	ExactWording    string `json:"exact_wording"`
	ClauseReference string `json:"clause_reference"`
	Type            string `json:"type"`
}

type aiLeaseResponse struct {
	CAMRules       []aiClause `json:"cam_rules"`
	Taxes          []aiClause `json:"taxes"`
	Utilities      []aiClause `json:"utilities"`
	EscalationCaps []aiClause `json:"escalation_caps"`
	AllowedFees    []aiClause `json:"allowed_fees"`
	DisallowedFees []aiClause `json:"disallowed_fees"`
}

type aiLineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

type aiInvoiceResponse struct {
	LineItems []aiLineItem `json:"line_items"`
}

// AIExtractor extracts lease terms and line items by prompting a language model and
// validating its JSON answer against a schema.
type AIExtractor struct {
	client        AIClient
	categorizer   *categorizer.Categorizer
	maxInputChars int
	logger        logging.Logger
}

// NewAIExtractor creates an AIExtractor. A non-positive maxInputChars uses
// DefaultMaxInputChars.
func NewAIExtractor(client AIClient, cat *categorizer.Categorizer, maxInputChars int, logger logging.Logger) *AIExtractor {
	logger = logging.OrDefault(logger)
	if cat == nil {
		cat = categorizer.NewCategorizer(logger)
	}
	if maxInputChars <= 0 {
		maxInputChars = DefaultMaxInputChars
	}
	return &AIExtractor{client: client, categorizer: cat, maxInputChars: maxInputChars, logger: logger}
}

// Name returns the name of this extractor.
func (e *AIExtractor) Name() string {
	return "ai"
}

// ExtractLease asks the model for the lease provisions. Empty references are stored as
// absent and RawText keeps the full, untruncated text.
func (e *AIExtractor) ExtractLease(ctx context.Context, text string) (*models.LeaseTerms, error) {
	var resp aiLeaseResponse
	if err := e.generate(ctx, DocumentLease, leaseSystemPrompt, leasePromptTemplate, LeaseSchemaName, LeaseSchema(), text, &resp); err != nil {
		return nil, err
	}

	lease := models.EmptyLeaseTerms(text)
	lease.CAMRules = toClauseItems(resp.CAMRules, false)
	lease.TaxesDetails = toClauseItems(resp.Taxes, true)
	lease.UtilitiesDetails = toClauseItems(resp.Utilities, true)
	lease.EscalationCapsDetails = toClauseItems(resp.EscalationCaps, true)
	lease.AllowedFees = toClauseItems(resp.AllowedFees, false)
	lease.DisallowedFees = toClauseItems(resp.DisallowedFees, false)

	e.logger.Info("Extracted lease terms",
		logging.F(logging.FieldStrategy, e.Name()),
		logging.F(logging.FieldModel, e.client.Name()),
		logging.F(logging.FieldCount, lease.ClauseCount()))
	return lease, nil
}

// ExtractLineItems asks the model for the invoice charges and numbers them 1..N.
func (e *AIExtractor) ExtractLineItems(ctx context.Context, text string) ([]models.LineItem, error) {
	var resp aiInvoiceResponse
	if err := e.generate(ctx, DocumentInvoice, invoiceSystemPrompt, invoicePromptTemplate, InvoiceSchemaName, InvoiceSchema(), text, &resp); err != nil {
		return nil, err
	}

	items := make([]models.LineItem, 0, len(resp.LineItems))
	for _, raw := range resp.LineItems {
		item := models.LineItem{
			Description: textutils.NormalizeSpace(raw.Description),
			Amount:      raw.Amount,
		}
		if c, err := models.ParseCategory(raw.Category); err == nil {
			item.Category = c
		}
		items = append(items, e.categorizer.CategorizeItem(item))
	}
	models.Renumber(items)
	if err := models.ValidateLineItems(items); err != nil {
		return nil, &auditerror.ExtractionError{Document: DocumentInvoice, Strategy: e.Name(), Err: err}
	}

	e.logger.Info("Extracted invoice line items",
		logging.F(logging.FieldStrategy, e.Name()),
		logging.F(logging.FieldModel, e.client.Name()),
		logging.F(logging.FieldCount, len(items)))
	return items, nil
}

func (e *AIExtractor) generate(ctx context.Context, document, systemPrompt, template, schemaName string,
	schema map[string]any, text string, out any) error {
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s schema: %w", schemaName, err)
	}
	input := textutils.TruncateWithMarker(text, e.maxInputChars, truncationMarker)
	prompt := fmt.Sprintf(template, schemaJSON, input)

	raw, err := e.client.GenerateJSON(ctx, systemPrompt, prompt)
	if err != nil {
		return &auditerror.ExtractionError{Document: document, Strategy: e.Name(), Err: err}
	}
	payload := []byte(StripCodeFence(string(raw)))
	if err := ValidateAgainstSchema(schemaName, schema, payload); err != nil {
		return &auditerror.ExtractionError{Document: document, Strategy: e.Name(), Err: err}
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &auditerror.ExtractionError{Document: document, Strategy: e.Name(), Err: err}
	}
	return nil
}

// toClauseItems converts model entries, dropping those without wording. Typed lists keep
// one entry per type, a later entry replacing an earlier one in place.
func toClauseItems(entries []aiClause, typed bool) []models.ClauseItem {
	items := []models.ClauseItem{}
	for _, entry := range entries {
		if textutils.NormalizeSpace(entry.ExactWording) == "" {
			continue
		}
		if !typed {
			items = append(items, models.NewClauseItem(entry.ExactWording, entry.ClauseReference))
			continue
		}
		typ := typeLabel(entry.Type)
		if typ == "" {
			typ = "general"
		}
		items = upsertTyped(items, models.NewTypedClauseItem(typ, entry.ExactWording, entry.ClauseReference))
	}
	return items
}
