package categorizer

import (
	"strings"

	"fjacquet/lease-audit/internal/models"
)

// Rule maps a category to the substrings that select it.
type Rule struct {
	Category models.Category
	Keywords []string
}

// keywordTable is evaluated top to bottom; the first row with a matching keyword wins.
var keywordTable = []Rule{
	{Category: models.CategoryCAM, Keywords: []string{"cam", "common area", "maintenance"}},
	{Category: models.CategoryTax, Keywords: []string{"tax", "property tax", "real estate"}},
	{Category: models.CategoryUtilities, Keywords: []string{"utility", "electric", "water", "gas", "sewer", "trash"}},
	{Category: models.CategoryRent, Keywords: []string{"rent", "base rent", "monthly rent"}},
	{Category: models.CategoryInsurance, Keywords: []string{"insurance", "liability"}},
}

// KeywordStrategy matches descriptions against the fixed keyword table.
type KeywordStrategy struct {
	rules []Rule
}

// NewKeywordStrategy returns a strategy over the built-in table.
func NewKeywordStrategy() *KeywordStrategy {
	return &KeywordStrategy{rules: keywordTable}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize performs a case-insensitive substring match in table order.
func (s *KeywordStrategy) Categorize(description string) (models.Category, bool) {
	lower := strings.ToLower(description)
	for _, rule := range s.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Category, true
			}
		}
	}
	return models.CategoryOther, false
}

// Rules returns a copy of the keyword table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(keywordTable))
	for i, r := range keywordTable {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}
