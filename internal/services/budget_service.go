package services

import (
	"errors"
	"fmt"
	"log/slog"

	"spendtrack/internal/dto"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidBudgetLimit = errors.New("monthly limit must be a positive number")
	ErrNotBudgetOwner     = errors.New("budget does not belong to user")
)

type budgetService struct {
	budgetRepo repositories.BudgetRepositoryInterface
	logger     *slog.Logger
}

// NewBudgetService creates a new budget service
func NewBudgetService(budgetRepo repositories.BudgetRepositoryInterface, logger *slog.Logger) BudgetServiceInterface {
	return &budgetService{
		budgetRepo: budgetRepo,
		logger:     logger,
	}
}

// Upsert creates the budget for a category or replaces its monthly limit.
// One budget exists per user and category.
func (s *budgetService) Upsert(userID uuid.UUID, req *dto.UpsertBudgetRequest) (*models.Budget, error) {
	if !models.IsValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	limit, err := decimal.NewFromString(req.MonthlyLimit)
	if err != nil || !limit.IsPositive() {
		return nil, ErrInvalidBudgetLimit
	}

	budget := &models.Budget{
		UserID:       userID,
		Category:     req.Category,
		MonthlyLimit: limit,
	}

	if err := s.budgetRepo.Upsert(budget); err != nil {
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}

	s.logger.Info("budget set",
		"budget_id", budget.ID,
		"user_id", userID,
		"category", budget.Category,
		"monthly_limit", budget.MonthlyLimit)

	return budget, nil
}

// List retrieves all budgets for a user
func (s *budgetService) List(userID uuid.UUID) ([]models.Budget, error) {
	return s.budgetRepo.GetByUserID(userID)
}

// Delete removes a budget owned by the user
func (s *budgetService) Delete(userID, budgetID uuid.UUID) error {
	budget, err := s.budgetRepo.GetByID(budgetID)
	if err != nil {
		return err
	}

	if budget.UserID != userID {
		s.logger.Warn("budget access denied",
			"budget_id", budgetID,
			"owner_id", budget.UserID,
			"requestor_id", userID)
		return ErrNotBudgetOwner
	}

	return s.budgetRepo.Delete(budget.ID)
}
