// Package report renders the result of a lease audit in human and machine readable
// formats. It performs no auditing of its own.
package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXML  = "xml"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Formats lists every supported format.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatXML, FormatCSV, FormatXLSX}

// DefaultMaxDescription is the description width used in tables.
const DefaultMaxDescription = 50

// Options control presentation details.
type Options struct {
	Currency       string
	MaxDescription int
	NoColor        bool
	// Clock returns the generation time; time.Now when nil.
	Clock func() time.Time
	// NewID returns the run identifier; a random UUID when nil.
	NewID func() string
}

// Generator renders audit results.
type Generator struct {
	opts   Options
	logger logging.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(opts Options, logger logging.Logger) *Generator {
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.MaxDescription <= 0 {
		opts.MaxDescription = DefaultMaxDescription
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	return &Generator{opts: opts, logger: logging.OrDefault(logger)}
}

// IsSupportedFormat reports whether format can be generated.
func IsSupportedFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// FormatForPath guesses the format from an output file extension, defaulting to text.
func FormatForPath(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".xml"):
		return FormatXML
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV
	case strings.HasSuffix(lower, ".xlsx"):
		return FormatXLSX
	default:
		return FormatText
	}
}

// machineReport is the JSON/YAML payload: the raw inputs and the comparison result.
type machineReport struct {
	Metadata   Metadata                 `json:"metadata" yaml:"metadata"`
	LeaseTerms *models.LeaseTerms       `json:"lease_terms" yaml:"lease_terms"`
	LineItems  []models.LineItem        `json:"line_items" yaml:"line_items"`
	Comparison *models.ComparisonReport `json:"comparison" yaml:"comparison"`
}

// Generate renders lease, items and report in format.
func (g *Generator) Generate(lease *models.LeaseTerms, items []models.LineItem, report *models.ComparisonReport, format string) ([]byte, error) {
	if lease == nil {
		lease = models.EmptyLeaseTerms("")
	}
	if report == nil {
		report = models.NewEmptyReport()
	}
	if items == nil {
		items = []models.LineItem{}
	}
	meta := Metadata{
		RunID:       g.opts.NewID(),
		GeneratedAt: g.opts.Clock().UTC(),
		Currency:    strings.ToUpper(g.opts.Currency),
	}

	var (
		out []byte
		err error
	)
	switch format {
	case FormatText:
		out = g.renderText(BuildDocument(lease, items, report, meta))
	case FormatJSON:
		out, err = json.MarshalIndent(machineReport{meta, lease.Normalize(), items, report}, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(machineReport{meta, lease.Normalize(), items, report})
	case FormatXML:
		out, err = xml.MarshalIndent(BuildDocument(lease, items, report, meta), "", "  ")
		if err == nil {
			out = append([]byte(xml.Header), out...)
		}
	case FormatCSV:
		var buf bytes.Buffer
		err = gocsv.Marshal(BuildDocument(lease, items, report, meta).Violations, &buf)
		out = buf.Bytes()
	case FormatXLSX:
		out, err = g.renderXLSX(BuildDocument(lease, items, report, meta))
	default:
		return nil, fmt.Errorf("unsupported report format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to generate report", logging.F(logging.FieldFormat, format))
		return nil, fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	g.logger.Debug("Report generated",
		logging.F(logging.FieldFormat, format),
		logging.F("run_id", meta.RunID),
		logging.F(logging.FieldCount, len(report.Mismatches)))
	return out, nil
}
