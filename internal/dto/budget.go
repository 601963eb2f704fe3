package dto

import "github.com/google/uuid"

// Budget Request DTOs

// UpsertBudgetRequest creates or replaces the monthly limit for a category
type UpsertBudgetRequest struct {
	Category     string `json:"category" form:"category" validate:"required"`
	MonthlyLimit string `json:"monthlyLimit" form:"monthlyLimit" validate:"required"`
}

// Budget Response DTOs

// BudgetResponse represents a stored budget
type BudgetResponse struct {
	ID           uuid.UUID `json:"id"`
	Category     string    `json:"category"`
	MonthlyLimit string    `json:"monthlyLimit"`
}

// BudgetStatusResponse represents a budget with current-month progress
type BudgetStatusResponse struct {
	ID           uuid.UUID `json:"id"`
	Category     string    `json:"category"`
	MonthlyLimit string    `json:"monthlyLimit"`
	Spent        string    `json:"spent"`
	Percent      int       `json:"percent"`
	Width        int       `json:"width"`
	IsOver       bool      `json:"isOver"`
}

// ListBudgetsResponse represents the budgets page payload
type ListBudgetsResponse struct {
	Budgets []BudgetStatusResponse `json:"budgets"`
}
