package services

import (
	"errors"
	"strings"

	"spendtrack/internal/models"
)

var ErrInvalidCategory = errors.New("invalid category")

// classificationRule maps a category to the description keywords that
// select it. Rules are evaluated in order and the first keyword hit wins,
// so more specific categories must come before catch-alls.
type classificationRule struct {
	category string
	keywords []string
}

type classifierService struct {
	rules []classificationRule
}

// NewClassifierService creates a keyword-based expense classifier
func NewClassifierService() ClassifierServiceInterface {
	return &classifierService{
		rules: initClassificationRules(),
	}
}

func initClassificationRules() []classificationRule {
	return []classificationRule{
		{
			category: models.CategoryFood,
			keywords: []string{"burger", "pizza", "coffee", "groceries", "dinner", "lunch", "breakfast", "snack", "restaurant"},
		},
		{
			category: models.CategoryTransport,
			keywords: []string{"uber", "bus", "fuel", "gas", "petrol", "train", "ticket", "taxi"},
		},
		{
			category: models.CategoryRent,
			keywords: []string{"rent", "house", "apartment", "mortgage"},
		},
		{
			category: models.CategoryUtilities,
			keywords: []string{"electric", "water", "bill", "internet", "wifi", "phone", "mobile"},
		},
		{
			category: models.CategoryHealth,
			keywords: []string{"doctor", "pharmacy", "medicine", "gym", "hospital", "dental"},
		},
	}
}

// Classify returns the category inferred from an expense description
func (s *classifierService) Classify(description string) string {
	return s.ClassifyDetailed(description).Category
}

// ClassifyDetailed returns the inferred category together with the keyword
// that selected it. Matching is a case-insensitive substring scan, so
// "Coffee at airport" lands on Food via "coffee".
func (s *classifierService) ClassifyDetailed(description string) models.ClassificationResult {
	normalized := strings.ToLower(description)

	for _, rule := range s.rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return models.ClassificationResult{
					Category:       rule.category,
					MatchedKeyword: keyword,
				}
			}
		}
	}

	return models.ClassificationResult{Category: models.CategoryOther}
}

// ResolveCategory resolves a user-supplied category choice into a concrete
// category. An empty choice or CategoryAuto triggers classification from
// the description; anything else must be a known category and is kept
// verbatim, never reclassified.
func (s *classifierService) ResolveCategory(requested, description string) (string, error) {
	if requested == "" || requested == models.CategoryAuto {
		return s.Classify(description), nil
	}

	if !models.IsValidCategory(requested) {
		return "", ErrInvalidCategory
	}

	return requested, nil
}
