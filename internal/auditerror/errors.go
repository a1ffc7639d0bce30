// Package auditerror defines the typed errors returned across lease-audit.
package auditerror

import (
	"errors"
	"fmt"
)

// InvalidInputError is returned when data handed to the comparison engine breaks the
// data-model invariants (negative amount, unknown category, bad line number).
type InvalidInputError struct {
	LineNumber int
	Field      string
	Reason     string
	Err        error
}

func (e *InvalidInputError) Error() string {
	msg := "invalid input"
	if e.LineNumber > 0 {
		msg = fmt.Sprintf("invalid input at line %d", e.LineNumber)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" (%s)", e.Field)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// ExtractionError is a failure while turning document text into lease terms or line items.
type ExtractionError struct {
	Document string // "lease" or "invoice"
	Strategy string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed using %s: %v", e.Document, e.Strategy, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// InvalidFormatError is returned when an input file cannot be read as any supported format.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// SchemaError is returned when model output does not match the expected JSON schema.
type SchemaError struct {
	Schema  string
	Snippet string // Optional: start of the offending payload
	Err     error
}

func (e *SchemaError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("response does not match %s schema: %v. Payload: '%s'", e.Schema, e.Err, e.Snippet)
	}
	return fmt.Sprintf("response does not match %s schema: %v", e.Schema, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ErrNoAPIKey is returned by AI clients created without credentials.
var ErrNoAPIKey = errors.New("no AI API key configured")

// IsInvalidInput reports whether err is, or wraps, an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
