package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
	AuthAccountLocked          ErrorCode = "AUTH_006"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// User error codes (USER_*)
const (
	UserNotFound        ErrorCode = "USER_001"
	UserAlreadyExists   ErrorCode = "USER_002"
	UserInvalidID       ErrorCode = "USER_003"
	UserWrongPassword   ErrorCode = "USER_004"
	UserUsernameTaken   ErrorCode = "USER_005"
	UserPasswordTooWeak ErrorCode = "USER_006"
)

// Expense error codes (EXPENSE_*)
const (
	ExpenseNotFound        ErrorCode = "EXPENSE_001"
	ExpenseInvalidAmount   ErrorCode = "EXPENSE_002"
	ExpenseInvalidCategory ErrorCode = "EXPENSE_003"
	ExpenseNotOwned        ErrorCode = "EXPENSE_004"
	ExpenseInvalidID       ErrorCode = "EXPENSE_005"
)

// Budget error codes (BUDGET_*)
const (
	BudgetNotFound        ErrorCode = "BUDGET_001"
	BudgetInvalidLimit    ErrorCode = "BUDGET_002"
	BudgetInvalidCategory ErrorCode = "BUDGET_003"
	BudgetNotOwned        ErrorCode = "BUDGET_004"
	BudgetInvalidID       ErrorCode = "BUDGET_005"
)

// Report error codes (REPORT_*)
const (
	ReportRenderFailed    ErrorCode = "REPORT_001"
	ReportFontUnavailable ErrorCode = "REPORT_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials:     "Invalid username or password",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",
	AuthAccountLocked:          "Account is locked or disabled",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",

	// User errors
	UserNotFound:        "User not found",
	UserAlreadyExists:   "An account with this username already exists",
	UserInvalidID:       "Invalid user ID format",
	UserWrongPassword:   "Current password is incorrect",
	UserUsernameTaken:   "Username is already taken",
	UserPasswordTooWeak: "Password does not meet the minimum requirements",

	// Expense errors
	ExpenseNotFound:        "Expense not found",
	ExpenseInvalidAmount:   "Invalid amount",
	ExpenseInvalidCategory: "Invalid expense category",
	ExpenseNotOwned:        "Expense belongs to another user",
	ExpenseInvalidID:       "Invalid expense ID format",

	// Budget errors
	BudgetNotFound:        "Budget not found",
	BudgetInvalidLimit:    "Invalid budget limit",
	BudgetInvalidCategory: "Invalid budget category",
	BudgetNotOwned:        "Budget belongs to another user",
	BudgetInvalidID:       "Invalid budget ID format",

	// Report errors
	ReportRenderFailed:    "Failed to render the requested export",
	ReportFontUnavailable: "PDF export is unavailable because no font is configured",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
