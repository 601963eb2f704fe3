package handlers

import (
	"net/http"
	"time"

	"spendtrack/internal/dto"
	"spendtrack/internal/errors"
	"spendtrack/internal/models"
	"spendtrack/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the aggregated dashboard payload
type DashboardHandler struct {
	expenseService services.ExpenseServiceInterface
	summaryService services.SummaryServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	expenseService services.ExpenseServiceInterface,
	summaryService services.SummaryServiceInterface,
) *DashboardHandler {
	return &DashboardHandler{
		expenseService: expenseService,
		summaryService: summaryService,
	}
}

// Dashboard returns everything the landing view renders: the filtered
// expense list with its total and category/day breakdowns, the all-time
// total, month-over-month comparison, the end-of-month projection and
// budget progress.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	now := time.Now().UTC()

	var query dto.ExpenseFilters
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	filters, err := buildExpenseFilters(userID, &query)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate)
	}

	expenses, _, err := h.expenseService.ListFiltered(filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	filtered, err := h.summaryService.FilteredSummary(userID, filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	total, err := h.summaryService.LifetimeTotal(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	comparison, err := h.summaryService.MonthComparison(userID, now)
	if err != nil {
		return SendSystemError(c, err)
	}

	projection, err := h.summaryService.MonthProjection(userID, now)
	if err != nil {
		return SendSystemError(c, err)
	}

	budgets, err := h.summaryService.BudgetStatuses(userID, now)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DashboardResponse{
		Expenses:        toExpenseResponses(expenses),
		FilterTotal:     filtered.Total.StringFixed(2),
		Total:           total.StringFixed(2),
		MonthComparison: toMonthComparisonResponse(comparison),
		MonthProjection: toMonthProjectionResponse(projection),
		Categories:      toCategoryTotalResponses(filtered.Categories),
		Days:            toDailyTotalResponses(filtered.Days),
		Budgets:         toBudgetStatusResponses(budgets),
	})
}

func toMonthComparisonResponse(comparison *models.MonthComparison) dto.MonthComparisonResponse {
	response := dto.MonthComparisonResponse{
		ThisMonth: comparison.ThisMonth.StringFixed(2),
		LastMonth: comparison.LastMonth.StringFixed(2),
		Message:   comparison.Message,
	}
	if comparison.DiffPercent != nil {
		diff := comparison.DiffPercent.String()
		response.DiffPercent = &diff
	}
	return response
}

func toMonthProjectionResponse(projection *models.MonthProjection) dto.MonthProjectionResponse {
	return dto.MonthProjectionResponse{
		DailyAverage: projection.DailyAverage.StringFixed(2),
		Predicted:    projection.Predicted.StringFixed(2),
	}
}

func toCategoryTotalResponses(totals []models.CategoryTotal) []dto.CategoryTotalResponse {
	responses := make([]dto.CategoryTotalResponse, 0, len(totals))
	for _, entry := range totals {
		responses = append(responses, dto.CategoryTotalResponse{
			Category: entry.Category,
			Total:    entry.Total.StringFixed(2),
		})
	}
	return responses
}

func toDailyTotalResponses(totals []models.DailyTotal) []dto.DailyTotalResponse {
	responses := make([]dto.DailyTotalResponse, 0, len(totals))
	for _, entry := range totals {
		responses = append(responses, dto.DailyTotalResponse{
			Day:   entry.Day,
			Total: entry.Total.StringFixed(2),
		})
	}
	return responses
}
