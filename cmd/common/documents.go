// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"fjacquet/lease-audit/internal/auditerror"
	"fjacquet/lease-audit/internal/extraction"
	"fjacquet/lease-audit/internal/fileutils"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"
	"fjacquet/lease-audit/internal/store"
	"fjacquet/lease-audit/internal/textextract"
)

// Sources is what commands need to turn an input path into lease terms or line items.
// *container.Container satisfies it.
type Sources interface {
	GetLogger() logging.Logger
	GetTextExtractor() textextract.Extractor
	GetLeaseExtractor() extraction.LeaseExtractor
	GetInvoiceExtractor() extraction.InvoiceExtractor
	GetStore() *store.DocumentStore
}

// LoadLease returns lease terms from a saved terms file (.json, .yaml, .yml) or by
// extracting them from a lease document.
func LoadLease(ctx context.Context, src Sources, path string) (*models.LeaseTerms, error) {
	if path == "" {
		return nil, fmt.Errorf("lease file is required")
	}
	if store.IsLeaseFile(path) {
		return src.GetStore().LoadLease(path)
	}

	start := time.Now()
	text, err := extractText(src, path)
	if err != nil {
		return nil, err
	}
	lease, err := src.GetLeaseExtractor().ExtractLease(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract lease terms from %s: %w", path, err)
	}
	src.GetLogger().Info("Extracted lease terms",
		logging.F(logging.FieldInputFile, path),
		logging.F(logging.FieldCount, lease.ClauseCount()),
		logging.F(logging.FieldDuration, time.Since(start).String()))
	return lease, nil
}

// LoadLineItems returns invoice line items from a saved items file (.json, .yaml, .yml,
// .csv) or by extracting them from an invoice document.
func LoadLineItems(ctx context.Context, src Sources, path string) ([]models.LineItem, error) {
	if path == "" {
		return nil, fmt.Errorf("invoice file is required")
	}
	if store.IsItemsFile(path) {
		return src.GetStore().LoadLineItems(path)
	}

	start := time.Now()
	text, err := extractText(src, path)
	if err != nil {
		return nil, err
	}
	items, err := src.GetInvoiceExtractor().ExtractLineItems(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract line items from %s: %w", path, err)
	}
	src.GetLogger().Info("Extracted line items",
		logging.F(logging.FieldInputFile, path),
		logging.F(logging.FieldCount, len(items)),
		logging.F(logging.FieldDuration, time.Since(start).String()))
	return items, nil
}

func extractText(src Sources, path string) (string, error) {
	if !textextract.IsSupported(path) {
		return "", &auditerror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "a lease or invoice document (.pdf, .txt) or a saved .json/.yaml/.csv file",
			Msg:            "unsupported input file",
		}
	}
	return src.GetTextExtractor().ExtractText(path)
}

// WriteOutput writes data to path, or to w when path is empty.
func WriteOutput(w io.Writer, path string, data []byte, perm os.FileMode) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	return fileutils.WriteFile(path, data, perm)
}
