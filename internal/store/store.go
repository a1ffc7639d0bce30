// Package store saves and loads extraction results so that a lease and an invoice can be
// extracted once and audited many times.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/lease-audit/internal/auditerror"
	"fjacquet/lease-audit/internal/currencyutils"
	"fjacquet/lease-audit/internal/fileutils"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// lineItemRow is the CSV shape of a line item.
type lineItemRow struct {
	LineNumber  int    `csv:"line_number"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
}

// DocumentStore reads and writes lease terms and invoice line items.
type DocumentStore struct {
	logger logging.Logger
}

// NewDocumentStore creates a DocumentStore.
func NewDocumentStore(logger logging.Logger) *DocumentStore {
	return &DocumentStore{logger: logging.OrDefault(logger)}
}

// FormatFor returns the store format for path based on its extension, or "" when the
// extension is not a saved-results format.
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv":
		return FormatCSV
	default:
		return ""
	}
}

// IsLeaseFile reports whether path holds saved lease terms.
func IsLeaseFile(path string) bool {
	f := FormatFor(path)
	return f == FormatJSON || f == FormatYAML
}

// IsItemsFile reports whether path holds saved line items.
func IsItemsFile(path string) bool {
	return FormatFor(path) != ""
}

// SaveLease writes lease terms as JSON or YAML, chosen by extension.
func (s *DocumentStore) SaveLease(path string, lease *models.LeaseTerms) error {
	data, err := MarshalLease(lease, FormatFor(path))
	if err != nil {
		return err
	}
	return s.write(path, data)
}

// MarshalLease encodes lease terms in format (json or yaml).
func MarshalLease(lease *models.LeaseTerms, format string) ([]byte, error) {
	lease = lease.Normalize()
	switch format {
	case FormatJSON:
		return json.MarshalIndent(lease, "", "  ")
	case FormatYAML:
		return yaml.Marshal(lease)
	default:
		return nil, fmt.Errorf("unsupported lease format %q (use json or yaml)", format)
	}
}

// LoadLease reads lease terms saved by SaveLease. The type lookups are rebuilt from the
// detail lists.
func (s *DocumentStore) LoadLease(path string) (*models.LeaseTerms, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool reads user-provided files
	if err != nil {
		return nil, fmt.Errorf("error reading lease file: %w", err)
	}

	var lease models.LeaseTerms
	switch FormatFor(path) {
	case FormatJSON:
		err = json.Unmarshal(data, &lease)
	case FormatYAML:
		err = yaml.Unmarshal(data, &lease)
	default:
		return nil, &auditerror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: ".json, .yaml, .yml",
			Msg:            "not a saved lease file",
		}
	}
	if err != nil {
		return nil, &auditerror.InvalidFormatError{FilePath: path, ExpectedFormat: "lease terms", Msg: err.Error()}
	}

	s.logger.Info("Loaded lease terms",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, lease.ClauseCount()))
	return lease.Normalize(), nil
}

// SaveLineItems writes line items as JSON, YAML or CSV, chosen by extension.
func (s *DocumentStore) SaveLineItems(path string, items []models.LineItem) error {
	data, err := MarshalLineItems(items, FormatFor(path))
	if err != nil {
		return err
	}
	return s.write(path, data)
}

// MarshalLineItems encodes items in format (json, yaml or csv).
func MarshalLineItems(items []models.LineItem, format string) ([]byte, error) {
	if items == nil {
		items = []models.LineItem{}
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(items, "", "  ")
	case FormatYAML:
		return yaml.Marshal(items)
	case FormatCSV:
		rows := make([]lineItemRow, len(items))
		for i, item := range items {
			rows[i] = lineItemRow{
				LineNumber:  item.LineNumber,
				Description: item.Description,
				Amount:      item.Amount.StringFixed(2),
				Category:    item.Category.String(),
			}
		}
		var buf bytes.Buffer
		if err := gocsv.Marshal(rows, &buf); err != nil {
			return nil, fmt.Errorf("error writing line items CSV: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported line items format %q (use json, yaml or csv)", format)
	}
}

// LoadLineItems reads and validates line items saved by SaveLineItems.
func (s *DocumentStore) LoadLineItems(path string) ([]models.LineItem, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool reads user-provided files
	if err != nil {
		return nil, fmt.Errorf("error reading line items file: %w", err)
	}

	var items []models.LineItem
	switch FormatFor(path) {
	case FormatJSON:
		err = json.Unmarshal(data, &items)
	case FormatYAML:
		err = yaml.Unmarshal(data, &items)
	case FormatCSV:
		items, err = parseItemsCSV(data)
	default:
		return nil, &auditerror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: ".json, .yaml, .yml, .csv",
			Msg:            "not a saved line items file",
		}
	}
	if err != nil {
		return nil, &auditerror.InvalidFormatError{FilePath: path, ExpectedFormat: "line items", Msg: err.Error()}
	}
	if items == nil {
		items = []models.LineItem{}
	}
	if err := models.ValidateLineItems(items); err != nil {
		return nil, &auditerror.InvalidInputError{Err: fmt.Errorf("%s: %w", path, err)}
	}

	s.logger.Info("Loaded line items",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(items)))
	return items, nil
}

func parseItemsCSV(data []byte) ([]models.LineItem, error) {
	var rows []lineItemRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, err
	}
	items := make([]models.LineItem, 0, len(rows))
	for _, row := range rows {
		amount, err := currencyutils.ParseAmount(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", row.LineNumber, err)
		}
		category, err := models.ParseCategory(row.Category)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", row.LineNumber, err)
		}
		items = append(items, models.LineItem{
			Description: row.Description,
			Amount:      amount,
			Category:    category,
			LineNumber:  row.LineNumber,
		})
	}
	return items, nil
}

func (s *DocumentStore) write(path string, data []byte) error {
	if err := fileutils.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return err
	}
	s.logger.Info("Saved extraction results", logging.F(logging.FieldOutputFile, path))
	return nil
}
