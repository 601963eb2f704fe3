package services

import (
	"fmt"
	"time"

	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// NoLastMonthDataMessage is shown when the previous month has no expenses
	NoLastMonthDataMessage = "No data for last month"
	// SameAsLastMonthMessage is shown when spend is unchanged month over month
	SameAsLastMonthMessage = "Same as last month"
)

var oneHundred = decimal.NewFromInt(100)

type summaryService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	budgetRepo  repositories.BudgetRepositoryInterface
}

// NewSummaryService creates a new summary service
func NewSummaryService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
) SummaryServiceInterface {
	return &summaryService{
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
	}
}

// LifetimeTotal computes the all-time total spend for a user
func (s *summaryService) LifetimeTotal(userID uuid.UUID) (decimal.Decimal, error) {
	return s.expenseRepo.SumForUser(userID)
}

// MonthComparison compares the running current month, from the 1st through
// the reference day, against the whole previous calendar month. Without any
// previous-month data no percentage is computed.
func (s *summaryService) MonthComparison(userID uuid.UUID, now time.Time) (*models.MonthComparison, error) {
	monthStart := startOfMonth(now)
	today := models.Midnight(now.UTC())

	thisMonth, err := s.expenseRepo.SumInRange(userID, monthStart, today, "")
	if err != nil {
		return nil, fmt.Errorf("failed to sum current month: %w", err)
	}

	lastStart := monthStart.AddDate(0, -1, 0)
	lastEnd := monthStart.AddDate(0, 0, -1)

	lastMonth, err := s.expenseRepo.SumInRange(userID, lastStart, lastEnd, "")
	if err != nil {
		return nil, fmt.Errorf("failed to sum previous month: %w", err)
	}

	comparison := &models.MonthComparison{
		ThisMonth: thisMonth,
		LastMonth: lastMonth,
	}

	if !lastMonth.IsPositive() {
		comparison.Message = NoLastMonthDataMessage
		return comparison, nil
	}

	// Whole percent, matching the dashboard copy ("33% MORE than last month")
	diff := thisMonth.Sub(lastMonth).Div(lastMonth).Mul(oneHundred).Round(0)
	comparison.DiffPercent = &diff

	switch {
	case diff.IsPositive():
		comparison.Message = fmt.Sprintf("%s%% MORE than last month", diff)
	case diff.IsNegative():
		comparison.Message = fmt.Sprintf("%s%% LESS than last month", diff.Abs())
	default:
		comparison.Message = SameAsLastMonthMessage
	}

	return comparison, nil
}

// MonthProjection extrapolates the current month's spend. The daily average
// over the elapsed days of the month is scaled to the month's full length.
func (s *summaryService) MonthProjection(userID uuid.UUID, now time.Time) (*models.MonthProjection, error) {
	monthStart := startOfMonth(now)
	today := models.Midnight(now.UTC())

	thisMonth, err := s.expenseRepo.SumInRange(userID, monthStart, today, "")
	if err != nil {
		return nil, fmt.Errorf("failed to sum current month: %w", err)
	}

	elapsedDays := decimal.NewFromInt(int64(now.Day()))
	dailyAverage := thisMonth.Div(elapsedDays).Round(2)
	predicted := dailyAverage.Mul(decimal.NewFromInt(int64(daysInMonth(now)))).Round(2)

	return &models.MonthProjection{
		DailyAverage: dailyAverage,
		Predicted:    predicted,
	}, nil
}

// FilteredSummary aggregates the expenses matching the filters in one pass:
// the filtered total plus the per-category and per-day breakdowns over the
// same rows, so the breakdowns always sum to the total.
func (s *summaryService) FilteredSummary(userID uuid.UUID, filters models.ExpenseFilters) (*models.FilteredSummary, error) {
	expenses, err := s.expenseRepo.GetForExport(userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses for summary: %w", err)
	}

	summary := &models.FilteredSummary{
		Total:      decimal.Zero,
		Categories: []models.CategoryTotal{},
		Days:       []models.DailyTotal{},
	}

	categoryTotals := make(map[string]decimal.Decimal)
	for i := range expenses {
		expense := &expenses[i]
		summary.Total = summary.Total.Add(expense.Amount)
		categoryTotals[expense.Category] = categoryTotals[expense.Category].Add(expense.Amount)

		// Rows arrive oldest first, so same-day entries are adjacent
		day := expense.Date.Format(DateLayout)
		if n := len(summary.Days); n > 0 && summary.Days[n-1].Day == day {
			summary.Days[n-1].Total = summary.Days[n-1].Total.Add(expense.Amount)
			continue
		}
		summary.Days = append(summary.Days, models.DailyTotal{Day: day, Total: expense.Amount})
	}

	for _, category := range models.AllCategories() {
		if total, ok := categoryTotals[category]; ok {
			summary.Categories = append(summary.Categories, models.CategoryTotal{
				Category: category,
				Total:    total,
			})
		}
	}

	return summary, nil
}

// CategoryBreakdown totals a user's spend per category within [start, end].
// Categories appear in display order; categories with no spend are omitted.
func (s *summaryService) CategoryBreakdown(userID uuid.UUID, start, end time.Time) ([]models.CategoryTotal, error) {
	expenses, err := s.expenseRepo.GetInRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses for breakdown: %w", err)
	}

	totals := make(map[string]decimal.Decimal)
	for i := range expenses {
		expense := &expenses[i]
		totals[expense.Category] = totals[expense.Category].Add(expense.Amount)
	}

	breakdown := make([]models.CategoryTotal, 0, len(totals))
	for _, category := range models.AllCategories() {
		total, ok := totals[category]
		if !ok || total.IsZero() {
			continue
		}
		breakdown = append(breakdown, models.CategoryTotal{
			Category: category,
			Total:    total,
		})
	}

	return breakdown, nil
}

// DailyBreakdown totals a user's spend per day within [start, end],
// oldest day first
func (s *summaryService) DailyBreakdown(userID uuid.UUID, start, end time.Time) ([]models.DailyTotal, error) {
	expenses, err := s.expenseRepo.GetInRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses for breakdown: %w", err)
	}

	var breakdown []models.DailyTotal
	for i := range expenses {
		expense := &expenses[i]
		day := expense.Date.Format(DateLayout)

		if n := len(breakdown); n > 0 && breakdown[n-1].Day == day {
			breakdown[n-1].Total = breakdown[n-1].Total.Add(expense.Amount)
			continue
		}

		breakdown = append(breakdown, models.DailyTotal{
			Day:   day,
			Total: expense.Amount,
		})
	}

	return breakdown, nil
}

// BudgetStatuses reports current-month progress against each of the user's
// budgets. Percent is of the monthly limit; width is the percent capped at
// 100 for rendering progress bars.
func (s *summaryService) BudgetStatuses(userID uuid.UUID, now time.Time) ([]models.BudgetStatus, error) {
	budgets, err := s.budgetRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}

	monthStart := startOfMonth(now)
	monthEnd := monthStart.AddDate(0, 1, -1)

	statuses := make([]models.BudgetStatus, 0, len(budgets))
	for i := range budgets {
		budget := &budgets[i]

		spent, err := s.expenseRepo.SumInRange(userID, monthStart, monthEnd, budget.Category)
		if err != nil {
			return nil, fmt.Errorf("failed to sum category %s: %w", budget.Category, err)
		}

		percent := 0
		if budget.MonthlyLimit.IsPositive() {
			percent = int(spent.Div(budget.MonthlyLimit).Mul(oneHundred).Round(0).IntPart())
		}

		width := percent
		if width > 100 {
			width = 100
		}

		statuses = append(statuses, models.BudgetStatus{
			BudgetID:     budget.ID,
			Category:     budget.Category,
			MonthlyLimit: budget.MonthlyLimit,
			Spent:        spent,
			Percent:      percent,
			Width:        width,
			IsOver:       percent > 100,
		})
	}

	return statuses, nil
}

func startOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the calendar length of t's month. Day zero of the
// following month is the last day of this one.
func daysInMonth(t time.Time) int {
	t = t.UTC()
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
