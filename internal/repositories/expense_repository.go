package repositories

import (
	"errors"
	"fmt"
	"time"

	"spendtrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{db: db}
}

// Create creates a new expense in the database
func (r *expenseRepository) Create(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetByID retrieves an expense by its ID
func (r *expenseRepository) GetByID(id uuid.UUID) (*models.Expense, error) {
	expense := &models.Expense{ID: id}
	if err := r.db.First(expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense by ID: %w", err)
	}

	return expense, nil
}

// GetByUserID retrieves expenses for a user, newest first. Same-day entries
// are ordered by creation time so the most recently added row leads.
func (r *expenseRepository) GetByUserID(userID uuid.UUID, offset, limit int) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	var total int64

	query := r.db.Model(&models.Expense{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	paged := query.Order("date DESC, created_at DESC")
	if offset > 0 {
		paged = paged.Offset(offset)
	}
	if limit > 0 {
		paged = paged.Limit(limit)
	}

	if err := paged.Find(&expenses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get expenses for user: %w", err)
	}

	return expenses, total, nil
}

// GetWithFilters retrieves expenses with multiple filters
func (r *expenseRepository) GetWithFilters(filters models.ExpenseFilters) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	var total int64

	query := r.db.Model(&models.Expense{})

	if filters.UserID != uuid.Nil {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", *filters.EndDate)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.MinAmount != nil {
		query = query.Where("amount >= ?", *filters.MinAmount)
	}
	if filters.MaxAmount != nil {
		query = query.Where("amount <= ?", *filters.MaxAmount)
	}
	if filters.Search != "" {
		query = query.Where("description LIKE ?", "%"+filters.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered expenses: %w", err)
	}

	query = query.Order("date DESC, created_at DESC")
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	// A zero or negative limit means the caller wants every matching row
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Find(&expenses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get filtered expenses: %w", err)
	}

	return expenses, total, nil
}

// GetForExport retrieves a user's history for export ordered oldest first.
// Only the date range and category filters apply; exports are never paginated.
func (r *expenseRepository) GetForExport(userID uuid.UUID, filters models.ExpenseFilters) ([]models.Expense, error) {
	var expenses []models.Expense

	query := r.db.Where("user_id = ?", userID)

	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", *filters.EndDate)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}

	if err := query.Order("date ASC, created_at ASC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses for export: %w", err)
	}

	return expenses, nil
}

// Update updates an expense in the database
func (r *expenseRepository) Update(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	if err := r.db.Save(expense).Error; err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

// Delete removes an expense from the database
func (r *expenseRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Expense{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// SumForUser computes the lifetime total spend for a user
func (r *expenseRepository) SumForUser(userID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Amount string
	}

	if err := r.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0) as amount").
		Where("user_id = ?", userID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return parseSum(result.Amount)
}

// SumInRange computes total spend for a user within [start, end]. An empty
// category sums across all categories.
func (r *expenseRepository) SumInRange(userID uuid.UUID, start, end time.Time, category string) (decimal.Decimal, error) {
	var result struct {
		Amount string
	}

	query := r.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0) as amount").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end)

	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses in range: %w", err)
	}

	return parseSum(result.Amount)
}

// GetInRange retrieves all expenses for a user within [start, end], oldest
// first. Aggregation over the rows happens in the service layer.
func (r *expenseRepository) GetInRange(userID uuid.UUID, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense

	if err := r.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC, created_at ASC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses in range: %w", err)
	}

	return expenses, nil
}

// parseSum converts a scanned SUM() column into a decimal. SQLite reports
// the aggregate as a numeric string; an empty string means no rows matched.
func parseSum(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}

	sum, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse aggregate amount %q: %w", raw, err)
	}

	return sum, nil
}
