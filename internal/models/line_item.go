package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// LineItem is one charge entry on an invoice.
type LineItem struct {
	Description string          `json:"description" yaml:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Category    Category        `json:"category" yaml:"category" validate:"required,oneof=CAM Tax Utilities Rent Insurance Other"`
	LineNumber  int             `json:"line_number" yaml:"line_number" validate:"gte=1"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// NormalizedDescription is the key used for duplicate detection: lowercased and trimmed.
func (li LineItem) NormalizedDescription() string {
	return strings.ToLower(strings.TrimSpace(li.Description))
}

// Validate checks the data-model invariants of a single line item.
func (li LineItem) Validate() error {
	if err := structValidator().Struct(li); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("line %d: field %s failed %q validation (value %v)",
				li.LineNumber, fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("line %d: %w", li.LineNumber, err)
	}
	if li.Amount.IsNegative() {
		return fmt.Errorf("line %d: amount must not be negative, got %s", li.LineNumber, li.Amount.String())
	}
	return nil
}

// ValidateLineItems validates every item and checks that line numbers are unique.
func ValidateLineItems(items []LineItem) error {
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.LineNumber]; dup {
			return fmt.Errorf("line %d: line number is used more than once", item.LineNumber)
		}
		seen[item.LineNumber] = struct{}{}
	}
	return nil
}

// Renumber assigns line numbers 1..N in slice order and returns the same slice.
func Renumber(items []LineItem) []LineItem {
	for i := range items {
		items[i].LineNumber = i + 1
	}
	return items
}

// TotalAmount sums the amounts of all items.
func TotalAmount(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}
