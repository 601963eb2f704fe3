package repositories

import (
	"errors"
	"fmt"

	"spendtrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
)

type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{db: db}
}

// GetByID retrieves a budget by its ID
func (r *budgetRepository) GetByID(id uuid.UUID) (*models.Budget, error) {
	budget := &models.Budget{ID: id}
	if err := r.db.First(budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget by ID: %w", err)
	}

	return budget, nil
}

// GetByUserID retrieves all budgets for a user in category display order
func (r *budgetRepository) GetByUserID(userID uuid.UUID) ([]models.Budget, error) {
	var budgets []models.Budget

	if err := r.db.Where("user_id = ?", userID).
		Order("category ASC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to get budgets for user: %w", err)
	}

	return budgets, nil
}

// GetByUserAndCategory retrieves the budget a user holds for one category
func (r *budgetRepository) GetByUserAndCategory(userID uuid.UUID, category string) (*models.Budget, error) {
	var budget models.Budget

	if err := r.db.Where("user_id = ? AND category = ?", userID, category).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget by category: %w", err)
	}

	return &budget, nil
}

// Upsert creates the budget or, when one already exists for the same user
// and category, replaces its monthly limit.
func (r *budgetRepository) Upsert(budget *models.Budget) error {
	if budget == nil {
		return errors.New("budget cannot be nil")
	}

	existing, err := r.GetByUserAndCategory(budget.UserID, budget.Category)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			if createErr := r.db.Create(budget).Error; createErr != nil {
				return fmt.Errorf("failed to create budget: %w", createErr)
			}
			return nil
		}
		return err
	}

	existing.MonthlyLimit = budget.MonthlyLimit
	if err := r.db.Save(existing).Error; err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}

	*budget = *existing
	return nil
}

// Delete removes a budget from the database
func (r *budgetRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Budget{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}

	return nil
}
