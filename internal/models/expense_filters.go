package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseFilters contains filtering options for expense queries
type ExpenseFilters struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Search    string
	Offset    int
	Limit     int
}
