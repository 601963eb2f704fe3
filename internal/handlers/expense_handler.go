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

const maxPageLimit = 100

// ExpenseHandler handles expense CRUD endpoints
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
	auditService   services.AuditServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService services.ExpenseServiceInterface, auditService services.AuditServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		auditService:   auditService,
	}
}

// Create records a new expense. An empty or "Auto" category triggers
// keyword classification from the description.
func (h *ExpenseHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.Create(userID, &req)
	if err != nil {
		if err == services.ErrBlankDescription {
			return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Description must not be blank"))
		}
		if err == services.ErrInvalidAmount {
			return SendError(c, errors.ExpenseInvalidAmount)
		}
		if err == services.ErrInvalidCategory {
			return SendError(c, errors.ExpenseInvalidCategory)
		}
		return SendSystemError(c, err)
	}

	if logErr := h.auditService.LogExpenseCreated(userID, expense.ID, expense.Category, getClientIP(c), c.Request().UserAgent()); logErr != nil {
		// Audit failure must not block the write
		_ = logErr
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    toExpenseResponse(expense),
		Message: "Expense recorded",
	})
}

// Get returns a single expense for the edit view
func (h *ExpenseHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ExpenseInvalidID)
	}

	expense, err := h.expenseService.GetByID(userID, expenseID)
	if err != nil {
		return h.mapExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: toExpenseResponse(expense),
	})
}

// List returns the user's expenses, optionally filtered by date range,
// category and description search
func (h *ExpenseHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.ExpenseFilters
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	filters, err := buildExpenseFilters(userID, &query)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate)
	}

	expenses, total, err := h.expenseService.ListFiltered(filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListExpensesResponse{
		Expenses: toExpenseResponses(expenses),
		Total:    total,
	})
}

// Update edits an existing expense. The category must be explicit here;
// automatic classification only applies when an expense is first recorded.
func (h *ExpenseHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ExpenseInvalidID)
	}

	var req dto.UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.Update(userID, expenseID, &req)
	if err != nil {
		if err == services.ErrBlankDescription {
			return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Description must not be blank"))
		}
		if err == services.ErrInvalidAmount {
			return SendError(c, errors.ExpenseInvalidAmount)
		}
		if err == services.ErrInvalidCategory {
			return SendError(c, errors.ExpenseInvalidCategory)
		}
		return h.mapExpenseError(c, err)
	}

	if logErr := h.auditService.LogExpenseUpdated(userID, expense.ID, getClientIP(c), c.Request().UserAgent()); logErr != nil {
		_ = logErr
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    toExpenseResponse(expense),
		Message: "Expense updated",
	})
}

// Delete removes an expense owned by the authenticated user
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ExpenseInvalidID)
	}

	if err := h.expenseService.Delete(userID, expenseID); err != nil {
		return h.mapExpenseError(c, err)
	}

	if logErr := h.auditService.LogExpenseDeleted(userID, expenseID, getClientIP(c), c.Request().UserAgent()); logErr != nil {
		_ = logErr
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Expense deleted",
	})
}

func (h *ExpenseHandler) mapExpenseError(c echo.Context, err error) error {
	switch err {
	case repositories.ErrExpenseNotFound:
		return SendError(c, errors.ExpenseNotFound)
	case services.ErrNotExpenseOwner:
		return SendError(c, errors.ExpenseNotOwned)
	default:
		return SendSystemError(c, err)
	}
}

// buildExpenseFilters converts wire-format query parameters into repository
// filters. Dates are inclusive day boundaries. Without a limit param every
// matching row is returned; an explicit limit is capped at maxPageLimit.
func buildExpenseFilters(userID uuid.UUID, query *dto.ExpenseFilters) (models.ExpenseFilters, error) {
	limit := query.Limit
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filters := models.ExpenseFilters{
		UserID:   userID,
		Category: query.Category,
		Search:   query.Search,
		Offset:   query.Offset,
		Limit:    limit,
	}

	if query.StartDate != "" {
		start, err := time.Parse(services.DateLayout, query.StartDate)
		if err != nil {
			return models.ExpenseFilters{}, err
		}
		filters.StartDate = &start
	}

	if query.EndDate != "" {
		end, err := time.Parse(services.DateLayout, query.EndDate)
		if err != nil {
			return models.ExpenseFilters{}, err
		}
		filters.EndDate = &end
	}

	return filters, nil
}

func toExpenseResponse(expense *models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          expense.ID,
		Description: expense.Description,
		Category:    expense.Category,
		Amount:      expense.Amount.StringFixed(2),
		Date:        expense.Date.Format(services.DateLayout),
		CreatedAt:   expense.CreatedAt,
	}
}

func toExpenseResponses(expenses []models.Expense) []dto.ExpenseResponse {
	responses := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, toExpenseResponse(&expenses[i]))
	}
	return responses
}
