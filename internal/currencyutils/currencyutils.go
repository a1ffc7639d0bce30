// Package currencyutils provides the money parsing, formatting and percentage helpers
// used by the extractors, the rule engine and the report renderer.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencySymbols = regexp.MustCompile(`(?i)(USD|EUR|GBP|CHF|[€$£¥₹])|\s`)
	hundred         = decimal.NewFromInt(100)
)

// ParseAmount parses a string representation of an amount into a decimal value.
// It handles formats like "$1,234.56", "1.234,56", "1234.56", "1234,56" and "1'234.56".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount converts a currency string to a form decimal.NewFromString accepts.
func StandardizeAmount(amountStr string) string {
	amountStr = currencySymbols.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	hasComma := strings.Contains(amountStr, ",")
	hasDot := strings.Contains(amountStr, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasComma:
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			// 1234,56
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234 or 1,234,567
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return amountStr
}

// FormatAmount formats an amount with two decimals, thousands separators and the
// currency symbol, e.g. "$1,234.56" or "CHF 1,234.56".
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := GroupThousands(amount.StringFixed(2))

	switch strings.ToUpper(currency) {
	case "":
		return formatted
	case "EUR":
		return "€" + formatted
	case "USD":
		return withSign("$", formatted)
	case "GBP":
		return withSign("£", formatted)
	case "JPY":
		return withSign("¥", formatted)
	default:
		return strings.ToUpper(currency) + " " + formatted
	}
}

func withSign(symbol, formatted string) string {
	if strings.HasPrefix(formatted, "-") {
		return "-" + symbol + formatted[1:]
	}
	return symbol + formatted
}

// GroupThousands inserts commas into the integer part of a plain decimal string.
func GroupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}

// Percentage returns part/total*100, or zero when total is not positive.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}

// FormatPercent renders a percentage with the given number of decimals, e.g. "6.0%".
func FormatPercent(pct decimal.Decimal, places int32) string {
	return pct.StringFixed(places) + "%"
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.LessThan(decimal.Zero)
}

// IsPositive checks if an amount is positive
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}
