package services

import (
	"testing"
	"time"

	"spendtrack/internal/database"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SummaryServiceTestSuite struct {
	suite.Suite
	db      *database.DB
	service SummaryServiceInterface
	user    *models.User
	now     time.Time
}

func TestSummaryServiceSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}

func (s *SummaryServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.user = database.CreateTestUser(s.T(), s.db, "summaryuser")
	s.service = NewSummaryService(
		repositories.NewExpenseRepository(s.db.DB),
		repositories.NewBudgetRepository(s.db.DB),
	)
	// mid-month reference day, far from month boundaries
	s.now = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)
}

func (s *SummaryServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *SummaryServiceTestSuite) addExpense(amount, category string, date time.Time) {
	expense := &models.Expense{
		UserID:      s.user.ID,
		Description: "test expense",
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		Date:        models.Midnight(date),
	}
	s.Require().NoError(s.db.Create(expense).Error)
}

func (s *SummaryServiceTestSuite) TestLifetimeTotal() {
	s.addExpense("100.50", models.CategoryFood, s.now)
	s.addExpense("49.50", models.CategoryRent, s.now.AddDate(0, -2, 0))

	total, err := s.service.LifetimeTotal(s.user.ID)
	s.NoError(err)
	s.True(total.Equal(decimal.RequireFromString("150.00")), "got %s", total)
}

func (s *SummaryServiceTestSuite) TestLifetimeTotal_EmptyIsZero() {
	total, err := s.service.LifetimeTotal(s.user.ID)
	s.NoError(err)
	s.True(total.IsZero())
}

func (s *SummaryServiceTestSuite) TestMonthComparison_MoreThanLastMonth() {
	s.addExpense("300", models.CategoryFood, s.now)
	s.addExpense("200", models.CategoryFood, time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC))

	comparison, err := s.service.MonthComparison(s.user.ID, s.now)
	s.NoError(err)
	s.True(comparison.ThisMonth.Equal(decimal.NewFromInt(300)))
	s.True(comparison.LastMonth.Equal(decimal.NewFromInt(200)))
	s.Require().NotNil(comparison.DiffPercent)
	s.True(comparison.DiffPercent.Equal(decimal.NewFromInt(50)), "got %s", comparison.DiffPercent)
	s.Equal("50% MORE than last month", comparison.Message)
}

func (s *SummaryServiceTestSuite) TestMonthComparison_RoundsToWholePercent() {
	s.addExpense("400", models.CategoryFood, s.now)
	s.addExpense("300", models.CategoryFood, time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC))

	comparison, err := s.service.MonthComparison(s.user.ID, s.now)
	s.NoError(err)
	s.Equal("33% MORE than last month", comparison.Message)
}

func (s *SummaryServiceTestSuite) TestMonthComparison_LessThanLastMonth() {
	s.addExpense("100", models.CategoryFood, s.now)
	s.addExpense("400", models.CategoryFood, time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC))

	comparison, err := s.service.MonthComparison(s.user.ID, s.now)
	s.NoError(err)
	s.Equal("75% LESS than last month", comparison.Message)
}

func (s *SummaryServiceTestSuite) TestMonthComparison_SameAsLastMonth() {
	s.addExpense("250", models.CategoryFood, s.now)
	s.addExpense("250", models.CategoryRent, time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC))

	comparison, err := s.service.MonthComparison(s.user.ID, s.now)
	s.NoError(err)
	s.Equal(SameAsLastMonthMessage, comparison.Message)
}

func (s *SummaryServiceTestSuite) TestMonthComparison_NoLastMonthData() {
	s.addExpense("80", models.CategoryFood, s.now)

	comparison, err := s.service.MonthComparison(s.user.ID, s.now)
	s.NoError(err)
	s.Nil(comparison.DiffPercent)
	s.Equal(NoLastMonthDataMessage, comparison.Message)
}

func (s *SummaryServiceTestSuite) TestMonthComparison_IgnoresFutureDaysAndOlderMonths() {
	s.addExpense("100", models.CategoryFood, s.now)
	// after the reference day, excluded from the running month
	s.addExpense("999", models.CategoryFood, time.Date(2025, time.June, 25, 0, 0, 0, 0, time.UTC))
	// two months back, not part of the comparison
	s.addExpense("777", models.CategoryFood, time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC))

	comparison, err := s.service.MonthComparison(s.user.ID, s.now)
	s.NoError(err)
	s.True(comparison.ThisMonth.Equal(decimal.NewFromInt(100)), "got %s", comparison.ThisMonth)
	s.True(comparison.LastMonth.IsZero())
}

func (s *SummaryServiceTestSuite) TestMonthProjection() {
	// 150 over 15 elapsed days of a 30-day month
	s.addExpense("90", models.CategoryFood, time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC))
	s.addExpense("60", models.CategoryRent, s.now)

	projection, err := s.service.MonthProjection(s.user.ID, s.now)
	s.NoError(err)
	s.True(projection.DailyAverage.Equal(decimal.RequireFromString("10.00")), "got %s", projection.DailyAverage)
	s.True(projection.Predicted.Equal(decimal.RequireFromString("300.00")), "got %s", projection.Predicted)
}

func (s *SummaryServiceTestSuite) TestMonthProjection_NoSpend() {
	projection, err := s.service.MonthProjection(s.user.ID, s.now)
	s.NoError(err)
	s.True(projection.DailyAverage.IsZero())
	s.True(projection.Predicted.IsZero())
}

func (s *SummaryServiceTestSuite) TestCategoryBreakdown_DisplayOrderAndOmitsEmpty() {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	s.addExpense("20", models.CategoryHealth, s.now)
	s.addExpense("50", models.CategoryFood, s.now)
	s.addExpense("30", models.CategoryFood, s.now.AddDate(0, 0, -1))

	breakdown, err := s.service.CategoryBreakdown(s.user.ID, start, end)
	s.NoError(err)
	s.Require().Len(breakdown, 2)
	s.Equal(models.CategoryFood, breakdown[0].Category)
	s.True(breakdown[0].Total.Equal(decimal.NewFromInt(80)))
	s.Equal(models.CategoryHealth, breakdown[1].Category)
	s.True(breakdown[1].Total.Equal(decimal.NewFromInt(20)))
}

func (s *SummaryServiceTestSuite) TestDailyBreakdown_GroupsByDay() {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	s.addExpense("10", models.CategoryFood, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC))
	s.addExpense("15", models.CategoryOther, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC))
	s.addExpense("40", models.CategoryFood, time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC))

	breakdown, err := s.service.DailyBreakdown(s.user.ID, start, end)
	s.NoError(err)
	s.Require().Len(breakdown, 2)
	s.Equal("2025-06-02", breakdown[0].Day)
	s.True(breakdown[0].Total.Equal(decimal.NewFromInt(25)))
	s.Equal("2025-06-09", breakdown[1].Day)
	s.True(breakdown[1].Total.Equal(decimal.NewFromInt(40)))
}

func (s *SummaryServiceTestSuite) TestFilteredSummary_BreakdownsSumToTotal() {
	s.addExpense("50", models.CategoryFood, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC))
	s.addExpense("25", models.CategoryTransport, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC))
	s.addExpense("40", models.CategoryFood, time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC))
	// outside the filter window
	s.addExpense("999", models.CategoryFood, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	summary, err := s.service.FilteredSummary(s.user.ID, models.ExpenseFilters{StartDate: &start})
	s.NoError(err)
	s.True(summary.Total.Equal(decimal.NewFromInt(115)), "got %s", summary.Total)

	categorySum := decimal.Zero
	for _, entry := range summary.Categories {
		categorySum = categorySum.Add(entry.Total)
	}
	s.True(categorySum.Equal(summary.Total))

	daySum := decimal.Zero
	for _, entry := range summary.Days {
		daySum = daySum.Add(entry.Total)
	}
	s.True(daySum.Equal(summary.Total))

	s.Require().Len(summary.Days, 2)
	s.Equal("2025-06-02", summary.Days[0].Day)
}

func (s *SummaryServiceTestSuite) TestFilteredSummary_CategoryFilter() {
	s.addExpense("50", models.CategoryFood, s.now)
	s.addExpense("25", models.CategoryTransport, s.now)

	summary, err := s.service.FilteredSummary(s.user.ID, models.ExpenseFilters{Category: models.CategoryFood})
	s.NoError(err)
	s.True(summary.Total.Equal(decimal.NewFromInt(50)))
	s.Require().Len(summary.Categories, 1)
	s.Equal(models.CategoryFood, summary.Categories[0].Category)
}

func (s *SummaryServiceTestSuite) TestBudgetStatuses() {
	budget := &models.Budget{
		UserID:       s.user.ID,
		Category:     models.CategoryFood,
		MonthlyLimit: decimal.NewFromInt(200),
	}
	s.Require().NoError(s.db.Create(budget).Error)

	s.addExpense("150", models.CategoryFood, s.now)
	// other categories never count against the Food budget
	s.addExpense("500", models.CategoryRent, s.now)
	// spend later in the month still counts
	s.addExpense("20", models.CategoryFood, time.Date(2025, time.June, 28, 0, 0, 0, 0, time.UTC))

	statuses, err := s.service.BudgetStatuses(s.user.ID, s.now)
	s.NoError(err)
	s.Require().Len(statuses, 1)

	status := statuses[0]
	s.Equal(budget.ID, status.BudgetID)
	s.Equal(models.CategoryFood, status.Category)
	s.True(status.Spent.Equal(decimal.NewFromInt(170)), "got %s", status.Spent)
	s.Equal(85, status.Percent)
	s.Equal(85, status.Width)
	s.False(status.IsOver)
}

func (s *SummaryServiceTestSuite) TestBudgetStatuses_OverBudgetCapsWidth() {
	budget := &models.Budget{
		UserID:       s.user.ID,
		Category:     models.CategoryTransport,
		MonthlyLimit: decimal.NewFromInt(100),
	}
	s.Require().NoError(s.db.Create(budget).Error)

	s.addExpense("250", models.CategoryTransport, s.now)

	statuses, err := s.service.BudgetStatuses(s.user.ID, s.now)
	s.NoError(err)
	s.Require().Len(statuses, 1)
	s.Equal(250, statuses[0].Percent)
	s.Equal(100, statuses[0].Width)
	s.True(statuses[0].IsOver)
}

func (s *SummaryServiceTestSuite) TestBudgetStatuses_NoBudgets() {
	statuses, err := s.service.BudgetStatuses(s.user.ID, s.now)
	s.NoError(err)
	s.Empty(statuses)
}
