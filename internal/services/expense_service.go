package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"spendtrack/internal/dto"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for expense dates
const DateLayout = "2006-01-02"

var (
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrBlankDescription = errors.New("description must not be blank")
	ErrNotExpenseOwner  = errors.New("expense does not belong to user")
)

type expenseService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	classifier  ClassifierServiceInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	classifier ClassifierServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseServiceInterface {
	return &expenseService{
		expenseRepo: expenseRepo,
		classifier:  classifier,
		metrics:     metrics,
		logger:      logger,
	}
}

// Create records a new expense. A missing or Auto category is classified
// from the description once, here, and the result is stored verbatim.
func (s *expenseService) Create(userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	description, err := parseDescription(req.Description)
	if err != nil {
		return nil, err
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	category, err := s.classifier.ResolveCategory(req.Category, description)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		Description: description,
		Category:    category,
		Amount:      amount,
		Date:        parseDate(req.Date, time.Now().UTC()),
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.logger.Info("expense recorded",
		"expense_id", expense.ID,
		"user_id", userID,
		"category", expense.Category,
		"amount", expense.Amount)
	s.recordWrite("created", expense.Category)

	return expense, nil
}

// GetByID retrieves an expense, enforcing ownership
func (s *expenseService) GetByID(userID, expenseID uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(expenseID)
	if err != nil {
		return nil, err
	}

	if expense.UserID != userID {
		s.logger.Warn("expense access denied",
			"expense_id", expenseID,
			"owner_id", expense.UserID,
			"requestor_id", userID)
		return nil, ErrNotExpenseOwner
	}

	return expense, nil
}

// List retrieves a user's expenses, newest first
func (s *expenseService) List(userID uuid.UUID, offset, limit int) ([]models.Expense, int64, error) {
	return s.expenseRepo.GetByUserID(userID, offset, limit)
}

// ListFiltered retrieves a user's expenses matching the given filters
func (s *expenseService) ListFiltered(filters models.ExpenseFilters) ([]models.Expense, int64, error) {
	return s.expenseRepo.GetWithFilters(filters)
}

// Update edits an existing expense owned by the user. The category must be
// a concrete one; Auto is only honored at creation time.
func (s *expenseService) Update(userID, expenseID uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.GetByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	description, err := parseDescription(req.Description)
	if err != nil {
		return nil, err
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	if !models.IsValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	expense.Description = description
	expense.Category = req.Category
	expense.Amount = amount
	expense.Date = parseDate(req.Date, time.Now().UTC())

	if err := s.expenseRepo.Update(expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.recordWrite("updated", expense.Category)

	return expense, nil
}

// Delete removes an expense owned by the user
func (s *expenseService) Delete(userID, expenseID uuid.UUID) error {
	expense, err := s.GetByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.expenseRepo.Delete(expense.ID); err != nil {
		return err
	}

	s.recordWrite("deleted", expense.Category)

	return nil
}

func (s *expenseService) recordWrite(operation, category string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("expense_write", map[string]string{
		"operation": operation,
		"category":  category,
	})
}

// parseDescription trims surrounding whitespace and rejects descriptions
// that are blank once trimmed
func parseDescription(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	if description == "" {
		return "", ErrBlankDescription
	}

	return description, nil
}

// parseAmount converts the submitted amount into a positive decimal
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	return amount, nil
}

// parseDate parses a YYYY-MM-DD date, falling back to the fallback day when
// the input is missing or malformed. The result is normalized to midnight
// UTC so range queries compare whole days.
func parseDate(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return models.Midnight(fallback)
	}

	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return models.Midnight(fallback)
	}

	return models.Midnight(parsed.UTC())
}
