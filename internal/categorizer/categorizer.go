// Package categorizer classifies free-text invoice charge descriptions into one of the
// fixed charge categories.
package categorizer

import (
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"
)

var defaultStrategy = NewKeywordStrategy()

// Categorize classifies a description with the built-in keyword table. It is total:
// anything unmatched, including the empty string, is Other.
func Categorize(description string) models.Category {
	category, _ := defaultStrategy.Categorize(description)
	return category
}

// Categorizer runs its strategies in order and logs the outcome. It is used by the
// extraction layer when a line item arrives without a usable category.
type Categorizer struct {
	strategies []Strategy
	logger     logging.Logger
}

// NewCategorizer creates a Categorizer using the keyword strategy.
func NewCategorizer(logger logging.Logger) *Categorizer {
	return NewCategorizerWithStrategies(logger, NewKeywordStrategy())
}

// NewCategorizerWithStrategies creates a Categorizer over the given strategies, tried in order.
func NewCategorizerWithStrategies(logger logging.Logger, strategies ...Strategy) *Categorizer {
	if len(strategies) == 0 {
		strategies = []Strategy{NewKeywordStrategy()}
	}
	return &Categorizer{
		strategies: strategies,
		logger:     logging.OrDefault(logger),
	}
}

// Categorize returns the first category a strategy recognises, or Other.
func (c *Categorizer) Categorize(description string) models.Category {
	for _, strategy := range c.strategies {
		if category, found := strategy.Categorize(description); found {
			c.logger.Debug("Charge categorized",
				logging.F(logging.FieldStrategy, strategy.Name()),
				logging.F(logging.FieldDescription, description),
				logging.F(logging.FieldCategory, category.String()))
			return category
		}
	}
	c.logger.Debug("No category matched, using Other",
		logging.F(logging.FieldDescription, description))
	return models.CategoryOther
}

// CategorizeItem fills in the category of an item whose category is missing or not one
// of the known values. Items with a valid category are returned unchanged.
func (c *Categorizer) CategorizeItem(item models.LineItem) models.LineItem {
	if item.Category.IsValid() {
		return item
	}
	item.Category = c.Categorize(item.Description)
	return item
}

// StrategyNames lists the configured strategies in evaluation order.
func (c *Categorizer) StrategyNames() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}
