package textextract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/lease-audit/internal/auditerror"
	"fjacquet/lease-audit/internal/logging"
)

// SupportedExtensions lists the document types FileExtractor accepts.
var SupportedExtensions = []string{".pdf", ".txt", ".text", ".md"}

// FileExtractor dispatches on file extension: PDFs go to the PDF extractor and plain
// text files are read as-is.
type FileExtractor struct {
	pdf    Extractor
	logger logging.Logger
}

// NewFileExtractor creates a FileExtractor using pdfExtractor for .pdf files. A nil
// pdfExtractor uses NewPDFExtractor with the default page limit.
func NewFileExtractor(pdfExtractor Extractor, logger logging.Logger) *FileExtractor {
	logger = logging.OrDefault(logger)
	if pdfExtractor == nil {
		pdfExtractor = NewPDFExtractor(DefaultMaxPages, logger)
	}
	return &FileExtractor{pdf: pdfExtractor, logger: logger}
}

// ExtractText returns the document text of path.
func (e *FileExtractor) ExtractText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e.logger.Debug("Extracting document text",
		logging.F(logging.FieldFile, path), logging.F(logging.FieldFormat, ext))

	switch ext {
	case ".pdf":
		text, err := e.pdf.ExtractText(path)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
		}
		return text, nil
	case ".txt", ".text", ".md":
		data, err := os.ReadFile(path) // #nosec G304 -- CLI tool reads user-provided files
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	default:
		return "", &auditerror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: strings.Join(SupportedExtensions, ", "),
			Msg:            fmt.Sprintf("unsupported document extension %q", ext),
		}
	}
}

// IsSupported reports whether FileExtractor can read path.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}
