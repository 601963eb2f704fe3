package dto

import (
	"time"

	"github.com/google/uuid"
)

// Expense Request DTOs

// CreateExpenseRequest contains data for recording a new expense.
// Amount travels as a string so decimal precision survives binding.
type CreateExpenseRequest struct {
	Description string `json:"description" form:"description" validate:"required,min=1,max=255"`
	Amount      string `json:"amount" form:"amount" validate:"required,expense_amount"`
	Category    string `json:"category" form:"category" validate:"expense_category"`
	// A missing or malformed date falls back to today in the service
	Date string `json:"date" form:"date"`
}

// UpdateExpenseRequest contains data for editing an existing expense
type UpdateExpenseRequest struct {
	Description string `json:"description" form:"description" validate:"required,min=1,max=255"`
	Amount      string `json:"amount" form:"amount" validate:"required,expense_amount"`
	Category    string `json:"category" form:"category" validate:"required"`
	Date        string `json:"date" form:"date"`
}

// ExpenseFilters contains filtering options for expense list queries
type ExpenseFilters struct {
	StartDate string `query:"start"`
	EndDate   string `query:"end"`
	Category  string `query:"category"`
	Search    string `query:"search"`
	Offset    int    `query:"offset"`
	Limit     int    `query:"limit"`
}

// Expense Response DTOs

// ExpenseResponse represents a recorded expense
type ExpenseResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListExpensesResponse represents the response for listing expenses
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int64             `json:"total"`
}

// DashboardResponse aggregates everything the dashboard view needs. The
// category and day breakdowns cover the same filtered rows as filterTotal;
// total is the all-time sum regardless of filters.
type DashboardResponse struct {
	Expenses        []ExpenseResponse       `json:"expenses"`
	FilterTotal     string                  `json:"filterTotal"`
	Total           string                  `json:"total"`
	MonthComparison MonthComparisonResponse `json:"monthComparison"`
	MonthProjection MonthProjectionResponse `json:"monthProjection"`
	Categories      []CategoryTotalResponse `json:"categories"`
	Days            []DailyTotalResponse    `json:"days"`
	Budgets         []BudgetStatusResponse  `json:"budgets"`
}

// MonthComparisonResponse compares current month spend to the previous month
type MonthComparisonResponse struct {
	ThisMonth   string  `json:"thisMonth"`
	LastMonth   string  `json:"lastMonth"`
	DiffPercent *string `json:"diffPercent,omitempty"`
	Message     string  `json:"message"`
}

// MonthProjectionResponse projects spend for the rest of the month
type MonthProjectionResponse struct {
	DailyAverage string `json:"dailyAverage"`
	Predicted    string `json:"predicted"`
}

// CategoryTotalResponse is one slice of the category breakdown
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// DailyTotalResponse is one day of the daily spend series
type DailyTotalResponse struct {
	Day   string `json:"day"`
	Total string `json:"total"`
}
