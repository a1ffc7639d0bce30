package common

import (
	"context"
	"fmt"

	"fjacquet/lease-audit/internal/container"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"
)

// AuditResult is a compared lease and invoice.
type AuditResult struct {
	Lease  *models.LeaseTerms
	Items  []models.LineItem
	Report *models.ComparisonReport
}

// Audit loads both documents and compares them. Uncategorized items are categorized
// in place so reports show the category the engine used.
func Audit(ctx context.Context, c *container.Container, leasePath, invoicePath string) (*AuditResult, error) {
	lease, err := LoadLease(ctx, c, leasePath)
	if err != nil {
		return nil, err
	}
	items, err := LoadLineItems(ctx, c, invoicePath)
	if err != nil {
		return nil, err
	}

	cat := c.GetCategorizer()
	for i := range items {
		if items[i].Category == "" {
			items[i] = cat.CategorizeItem(items[i])
		}
	}

	report, err := c.GetEngine().Compare(lease, items)
	if err != nil {
		return nil, fmt.Errorf("failed to compare invoice with lease: %w", err)
	}

	c.GetLogger().Info("Audit completed",
		logging.F(logging.FieldCount, report.Summary.NumberOfItems),
		logging.F("flagged", report.Summary.NumberOfMismatches),
		logging.F("overcharge", report.Summary.TotalOvercharge.StringFixed(2)))
	return &AuditResult{Lease: lease, Items: items, Report: report}, nil
}
