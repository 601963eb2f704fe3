package handlers

import (
	"net/http"
	"time"

	"spendtrack/internal/dto"
	"spendtrack/internal/errors"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"
	"spendtrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BudgetHandler handles monthly budget endpoints
type BudgetHandler struct {
	budgetService  services.BudgetServiceInterface
	summaryService services.SummaryServiceInterface
	auditService   services.AuditServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(
	budgetService services.BudgetServiceInterface,
	summaryService services.SummaryServiceInterface,
	auditService services.AuditServiceInterface,
) *BudgetHandler {
	return &BudgetHandler{
		budgetService:  budgetService,
		summaryService: summaryService,
		auditService:   auditService,
	}
}

// List returns the user's budgets with current-month progress
func (h *BudgetHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	statuses, err := h.summaryService.BudgetStatuses(userID, time.Now().UTC())
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListBudgetsResponse{
		Budgets: toBudgetStatusResponses(statuses),
	})
}

// Upsert creates a budget for a category, or replaces its limit when one
// already exists. One budget per category per user.
func (h *BudgetHandler) Upsert(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.UpsertBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.Upsert(userID, &req)
	if err != nil {
		if err == services.ErrInvalidCategory {
			return SendError(c, errors.BudgetInvalidCategory)
		}
		if err == services.ErrInvalidBudgetLimit {
			return SendError(c, errors.BudgetInvalidLimit)
		}
		return SendSystemError(c, err)
	}

	if logErr := h.auditService.LogBudgetUpserted(userID, budget.ID, budget.Category, getClientIP(c), c.Request().UserAgent()); logErr != nil {
		_ = logErr
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data: dto.BudgetResponse{
			ID:           budget.ID,
			Category:     budget.Category,
			MonthlyLimit: budget.MonthlyLimit.StringFixed(2),
		},
		Message: "Budget saved",
	})
}

// Delete removes a budget owned by the authenticated user
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.BudgetInvalidID)
	}

	if err := h.budgetService.Delete(userID, budgetID); err != nil {
		switch err {
		case repositories.ErrBudgetNotFound:
			return SendError(c, errors.BudgetNotFound)
		case services.ErrNotBudgetOwner:
			return SendError(c, errors.BudgetNotOwned)
		default:
			return SendSystemError(c, err)
		}
	}

	if logErr := h.auditService.LogBudgetDeleted(userID, budgetID, getClientIP(c), c.Request().UserAgent()); logErr != nil {
		_ = logErr
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Budget deleted",
	})
}

func toBudgetStatusResponses(statuses []models.BudgetStatus) []dto.BudgetStatusResponse {
	responses := make([]dto.BudgetStatusResponse, 0, len(statuses))
	for _, status := range statuses {
		responses = append(responses, dto.BudgetStatusResponse{
			ID:           status.BudgetID,
			Category:     status.Category,
			MonthlyLimit: status.MonthlyLimit.StringFixed(2),
			Spent:        status.Spent.StringFixed(2),
			Percent:      status.Percent,
			Width:        status.Width,
			IsOver:       status.IsOver,
		})
	}
	return responses
}
