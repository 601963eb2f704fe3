package models

// Spending categories an expense can be filed under.
const (
	CategoryFood      = "Food"
	CategoryTransport = "Transport"
	CategoryRent      = "Rent"
	CategoryUtilities = "Utilities"
	CategoryHealth    = "Health"
	CategoryOther     = "Other"
)

// CategoryAuto is not a category of its own. Submitting it asks the
// classifier to pick one of the real categories from the description at
// creation time.
const CategoryAuto = "Auto"

// AllCategories returns the valid spending categories in display order.
func AllCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryRent,
		CategoryUtilities,
		CategoryHealth,
		CategoryOther,
	}
}

// IsValidCategory checks if a category string is one of the real categories.
// CategoryAuto is rejected here since it never persists.
func IsValidCategory(category string) bool {
	for _, validCategory := range AllCategories() {
		if category == validCategory {
			return true
		}
	}
	return false
}

// ClassificationResult contains the outcome of description-based
// classification.
type ClassificationResult struct {
	Category       string `json:"category"`
	MatchedKeyword string `json:"matched_keyword,omitempty"`
}
