package extraction

import (
	"context"

	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"
)

// FallbackExtractor tries a primary extractor and, when it fails, answers with the
// secondary one. Callers never see the primary's error.
type FallbackExtractor struct {
	primary   Extractor
	secondary Extractor
	logger    logging.Logger
}

// NewFallbackExtractor composes primary and secondary. secondary must not be nil.
func NewFallbackExtractor(primary, secondary Extractor, logger logging.Logger) *FallbackExtractor {
	return &FallbackExtractor{primary: primary, secondary: secondary, logger: logging.OrDefault(logger)}
}

// Name returns "<primary>+<secondary>".
func (e *FallbackExtractor) Name() string {
	if e.primary == nil {
		return e.secondary.Name()
	}
	return e.primary.Name() + "+" + e.secondary.Name()
}

// ExtractLease returns the primary result, or the secondary one on failure.
func (e *FallbackExtractor) ExtractLease(ctx context.Context, text string) (*models.LeaseTerms, error) {
	if e.primary != nil {
		lease, err := e.primary.ExtractLease(ctx, text)
		if err == nil {
			return lease.Normalize(), nil
		}
		e.warn(DocumentLease, err)
	}
	lease, err := e.secondary.ExtractLease(ctx, text)
	if err != nil {
		return nil, err
	}
	return lease.Normalize(), nil
}

// ExtractLineItems returns the primary result, or the secondary one on failure.
func (e *FallbackExtractor) ExtractLineItems(ctx context.Context, text string) ([]models.LineItem, error) {
	if e.primary != nil {
		items, err := e.primary.ExtractLineItems(ctx, text)
		if err == nil {
			return items, nil
		}
		e.warn(DocumentInvoice, err)
	}
	return e.secondary.ExtractLineItems(ctx, text)
}

func (e *FallbackExtractor) warn(document string, err error) {
	e.logger.WithError(err).Warn("Extraction failed, falling back",
		logging.F(logging.FieldDocument, document),
		logging.F(logging.FieldStrategy, e.primary.Name()),
		logging.F("fallback", e.secondary.Name()))
}
