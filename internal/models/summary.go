package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryTotal is the summed spend for one category over some window.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// DailyTotal is the summed spend for one calendar day, keyed by the
// formatted date.
type DailyTotal struct {
	Day   string          `json:"day"`
	Total decimal.Decimal `json:"total"`
}

// FilteredSummary aggregates one filtered slice of the expense history. The
// category totals and the daily totals each sum to Total.
type FilteredSummary struct {
	Total      decimal.Decimal `json:"total"`
	Categories []CategoryTotal `json:"categories"`
	Days       []DailyTotal    `json:"days"`
}

// MonthComparison compares current-month spend against the full previous
// month. DiffPercent is nil when the previous month has no data, and the
// Message carries the human-readable verdict either way.
type MonthComparison struct {
	ThisMonth   decimal.Decimal  `json:"this_month"`
	LastMonth   decimal.Decimal  `json:"last_month"`
	DiffPercent *decimal.Decimal `json:"diff_percent,omitempty"`
	Message     string           `json:"message"`
}

// MonthProjection estimates end-of-month spend from the current daily pace.
type MonthProjection struct {
	DailyAverage decimal.Decimal `json:"daily_average"`
	Predicted    decimal.Decimal `json:"predicted"`
}

// BudgetStatus reports current-month spend against one budget. Percent is
// the rounded share of the limit already spent; Width clamps it to 100 for
// rendering a progress bar.
type BudgetStatus struct {
	BudgetID     uuid.UUID       `json:"budget_id"`
	Category     string          `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	Spent        decimal.Decimal `json:"spent"`
	Percent      int             `json:"percent"`
	Width        int             `json:"width"`
	IsOver       bool            `json:"is_over"`
}
