package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary    = "Summary"
	sheetLeaseTerms = "Lease Terms"
	sheetLineItems  = "Line Items"
	sheetViolations = "Violations"
)

func (g *Generator) renderXLSX(doc *Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			g.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{sheetLeaseTerms, sheetLineItems, sheetViolations} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	s := doc.Summary
	summary := [][]any{
		{"Run ID", doc.Metadata.RunID},
		{"Generated at", doc.Metadata.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Currency", doc.Metadata.Currency},
		{"Total invoice amount", s.TotalInvoiceAmount},
		{"Total overcharge", s.TotalOvercharge},
		{"Total allowed", s.TotalAllowed},
		{"Line items", s.NumberOfItems},
		{"Flagged items", s.NumberOfMismatches},
		{"Duplicates", s.NumberOfDuplicates},
		{"Overcharge percentage", s.OverchargePercentage},
	}
	if err := writeRows(f, sheetSummary, nil, summary); err != nil {
		return nil, err
	}

	clauses := make([][]any, 0, len(doc.Clauses))
	for _, c := range doc.Clauses {
		clauses = append(clauses, []any{c.Section, c.Type, c.Wording, c.Citation})
	}
	if err := writeRows(f, sheetLeaseTerms, []string{"Section", "Type", "Exact wording", "Clause reference"}, clauses); err != nil {
		return nil, err
	}

	items := make([][]any, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, []any{item.LineNumber, item.Description, item.Amount, item.Category, item.Status})
	}
	if err := writeRows(f, sheetLineItems, []string{"#", "Description", "Amount", "Category", "Status"}, items); err != nil {
		return nil, err
	}

	violations := make([][]any, 0, len(doc.Violations))
	for _, v := range doc.Violations {
		violations = append(violations, []any{
			v.LineNumber, v.Description, v.Amount, v.Kind, v.Reason, v.Explanation, v.Citation, v.SuggestedAction,
		})
	}
	headers := []string{"#", "Description", "Amount", "Kind", "Reason", "Explanation", "Clause reference", "Suggested action"}
	if err := writeRows(f, sheetViolations, headers, violations); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(sheetSummary, "A", "A", 24)
	_ = f.SetColWidth(sheetSummary, "B", "B", 40)
	_ = f.SetColWidth(sheetLeaseTerms, "C", "C", 80)
	_ = f.SetColWidth(sheetLineItems, "B", "B", float64(g.opts.MaxDescription))
	_ = f.SetColWidth(sheetViolations, "F", "F", 80)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRows writes an optional header row followed by rows, starting at A1.
func writeRows(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	row := 1
	if len(headers) > 0 {
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return fmt.Errorf("write %s header: %w", sheet, err)
			}
		}
		row++
	}
	for _, values := range rows {
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet, row, err)
			}
		}
		row++
	}
	return nil
}
