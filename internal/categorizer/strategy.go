package categorizer

import "fjacquet/lease-audit/internal/models"

// Strategy is one way of assigning a category to a charge description.
type Strategy interface {
	// Categorize returns the category and whether the strategy recognised the description.
	Categorize(description string) (models.Category, bool)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
