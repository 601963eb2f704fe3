package validation

import (
	"reflect"
	"regexp"
	"strings"

	"spendtrack/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("username", validateUsername)
	_ = v.RegisterValidation("expense_amount", validateExpenseAmount)
	_ = v.RegisterValidation("expense_category", validateExpenseCategory)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// validateUsername restricts usernames to letters, digits, underscores,
// dots and dashes
func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if username == "" {
		return false
	}
	return usernameRegex.MatchString(username)
}

// validateExpenseAmount validates that an amount string parses as a
// positive decimal
func validateExpenseAmount(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return amount.IsPositive()
}

// validateExpenseCategory validates that the category names a known one.
// The empty string and the auto marker pass because they request
// keyword classification instead of naming a category.
func validateExpenseCategory(fl validator.FieldLevel) bool {
	category := fl.Field().String()
	if category == "" || category == models.CategoryAuto {
		return true
	}
	return models.IsValidCategory(category)
}

