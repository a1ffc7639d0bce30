package textextract

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/lease-audit/internal/logging"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxPages bounds how many pages are read from one PDF.
const DefaultMaxPages = 50

// PDFExtractor reads PDF text with ledongthuc/pdf, page by page.
type PDFExtractor struct {
	maxPages int
	logger   logging.Logger
}

// NewPDFExtractor creates a PDFExtractor reading at most maxPages pages; a non-positive
// value uses DefaultMaxPages.
func NewPDFExtractor(maxPages int, logger logging.Logger) *PDFExtractor {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &PDFExtractor{maxPages: maxPages, logger: logging.OrDefault(logger)}
}

// ExtractText returns the text of every readable page, pages separated by a blank line.
func (e *PDFExtractor) ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path) // #nosec G304 -- CLI tool reads user-provided files
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close PDF", logging.F(logging.FieldFile, path))
		}
	}()

	pageCount := r.NumPage()
	if pageCount > e.maxPages {
		e.logger.Warn("PDF exceeds page limit, truncating",
			logging.F(logging.FieldFile, path),
			logging.F(logging.FieldPages, pageCount),
			logging.F("max_pages", e.maxPages))
		pageCount = e.maxPages
	}

	var pages []string
	for i := 1; i <= pageCount; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := pageText(p)
		if err != nil {
			e.logger.WithError(err).Warn("Skipping unreadable page",
				logging.F(logging.FieldFile, path), logging.F("page", i))
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, strings.TrimRight(text, "\n"))
		}
	}

	text := strings.Join(pages, "\n\n")
	e.logger.Debug("Extracted PDF text",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldPages, pageCount),
		logging.F(logging.FieldChars, len(text)))
	return text, nil
}

// pageText reads a page row by row, top to bottom, falling back to plain text when
// row extraction fails.
func pageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sorted = append(sorted, row)
		}
	}
	// PDF Y grows upwards
	sort.SliceStable(sorted, func(i, j int) bool {
		return averageY(sorted[i].Content) > averageY(sorted[j].Content)
	})

	var b strings.Builder
	for _, row := range sorted {
		line := rowText(row.Content)
		if strings.TrimSpace(line) != "" {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func averageY(texts []pdf.Text) float64 {
	if len(texts) == 0 {
		return 0
	}
	var total float64
	for _, t := range texts {
		total += t.Y
	}
	return total / float64(len(texts))
}

// rowText joins a row's fragments left to right, inserting a space where the gap to the
// next fragment exceeds a fifth of the font size.
func rowText(texts []pdf.Text) string {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var b strings.Builder
	for i, t := range sorted {
		b.WriteString(t.S)
		if i == len(sorted)-1 {
			break
		}
		fontSize := t.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}
		if sorted[i+1].X-(t.X+t.W) > fontSize*0.2 {
			b.WriteString(" ")
		}
	}
	return b.String()
}
