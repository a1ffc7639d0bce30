// Package extraction turns lease and invoice text into structured terms and line items,
// either through a language model or through local heuristics.
package extraction

import (
	"context"

	"fjacquet/lease-audit/internal/models"
)

// Document kinds, used in logs and errors.
const (
	DocumentLease   = "lease"
	DocumentInvoice = "invoice"
)

// LeaseExtractor produces lease terms from lease document text. Implementations return
// a structurally valid LeaseTerms with non-nil lists.
type LeaseExtractor interface {
	ExtractLease(ctx context.Context, text string) (*models.LeaseTerms, error)
}

// InvoiceExtractor produces invoice line items numbered 1..N in extraction order.
type InvoiceExtractor interface {
	ExtractLineItems(ctx context.Context, text string) ([]models.LineItem, error)
}

// Extractor handles both document kinds.
type Extractor interface {
	LeaseExtractor
	InvoiceExtractor

	// Name returns the name of this extractor for logging and debugging purposes.
	Name() string
}
