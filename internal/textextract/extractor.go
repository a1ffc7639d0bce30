// Package textextract turns lease and invoice documents into plain text.
package textextract

// Extractor extracts the text content of a document.
type Extractor interface {
	// ExtractText returns the text of the file at path or an error if it cannot be read.
	ExtractText(path string) (string, error)
}

// MockExtractor implements Extractor for tests, returning fixed text or an error.
type MockExtractor struct {
	MockText string
	MockErr  error
	Calls    []string
}

// NewMockExtractor creates a MockExtractor with the given result.
func NewMockExtractor(mockText string, mockErr error) *MockExtractor {
	return &MockExtractor{MockText: mockText, MockErr: mockErr}
}

// ExtractText records the path and returns the predefined text or error.
func (e *MockExtractor) ExtractText(path string) (string, error) {
	e.Calls = append(e.Calls, path)
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
