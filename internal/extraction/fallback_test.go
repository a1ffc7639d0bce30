package extraction

import (
	"context"
	"errors"
	"testing"

	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackExtractor_UsesPrimaryWhenItSucceeds(t *testing.T) {
	logger := logging.NewMockLogger()
	primary := NewAIExtractor(NewMockAIClient(invoiceResponse), nil, 0, logger)
	extractor := NewFallbackExtractor(primary, NewHeuristicExtractor(nil, logger), logger)

	items, err := extractor.ExtractLineItems(context.Background(), "Signage 99.00")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Base Rent", items[0].Description)
	assert.False(t, logger.HasEntry("WARN", "Extraction failed, falling back"))
	assert.Equal(t, "ai+heuristic", extractor.Name())
}

func TestFallbackExtractor_FallsBackOnPrimaryError(t *testing.T) {
	logger := logging.NewMockLogger()
	failing := &MockAIClient{Err: errors.New("service unavailable")}
	extractor := NewFallbackExtractor(
		NewAIExtractor(failing, nil, 0, logger),
		NewHeuristicExtractor(nil, logger),
		logger,
	)

	items, err := extractor.ExtractLineItems(context.Background(), "Signage 99.00")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Signage", items[0].Description)

	lease, err := extractor.ExtractLease(context.Background(), sampleLeaseText)
	require.NoError(t, err)
	assert.Len(t, lease.DisallowedFees, 3)

	warnings := logger.GetEntriesByLevel("WARN")
	require.Len(t, warnings, 2)
	document, ok := warnings[0].FieldValue(logging.FieldDocument)
	require.True(t, ok)
	assert.Equal(t, DocumentInvoice, document)
	assert.EqualError(t, warnings[0].Error, `invoice extraction failed using ai: service unavailable`)
}

func TestFallbackExtractor_WithoutPrimary(t *testing.T) {
	extractor := NewFallbackExtractor(nil, NewHeuristicExtractor(nil, nil), logging.NewMockLogger())
	assert.Equal(t, "heuristic", extractor.Name())

	lease, err := extractor.ExtractLease(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, lease.IsEmpty())
}

func TestFallbackExtractor_InvalidItemsFallBack(t *testing.T) {
	logger := logging.NewMockLogger()
	blank := NewMockAIClient(`{"line_items": [{"description": "\u00a0", "amount": 10, "category": "Other"}]}`)
	extractor := NewFallbackExtractor(NewAIExtractor(blank, nil, 0, logger), NewHeuristicExtractor(nil, logger), logger)

	items, err := extractor.ExtractLineItems(context.Background(), "Signage 99.00")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Signage", items[0].Description)
	assert.NoError(t, models.ValidateLineItems(items))
	assert.True(t, logger.HasEntry("WARN", "Extraction failed, falling back"))
}
