package services

import (
	"errors"
	"fmt"

	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidUserID   = errors.New("invalid user ID")
	ErrInvalidAuditLog = errors.New("invalid audit log")
)

// AuditService handles audit logging operations
type AuditService struct {
	repo repositories.AuditLogRepositoryInterface
}

// NewAuditService creates a new audit service
func NewAuditService(repo repositories.AuditLogRepositoryInterface) AuditServiceInterface {
	return &AuditService{
		repo: repo,
	}
}

// ValidateActivityType validates that the activity type is one of the allowed types
func ValidateActivityType(action string) error {
	validActions := map[string]bool{
		models.AuditActionLogin:           true,
		models.AuditActionLogout:          true,
		models.AuditActionRegister:        true,
		models.AuditActionFailedLogin:     true,
		models.AuditActionAccountLocked:   true,
		models.AuditActionTokenRefresh:    true,
		models.AuditActionProfileUpdated:  true,
		models.AuditActionPasswordUpdated: true,
		models.AuditActionExpenseCreated:  true,
		models.AuditActionExpenseUpdated:  true,
		models.AuditActionExpenseDeleted:  true,
		models.AuditActionBudgetUpserted:  true,
		models.AuditActionBudgetDeleted:   true,
	}

	if !validActions[action] {
		return fmt.Errorf("invalid activity type: %s", action)
	}
	return nil
}

// CreateAuditLog creates a new audit log entry with validation
func (s *AuditService) CreateAuditLog(log *models.AuditLog) error {
	if log == nil {
		return ErrInvalidAuditLog
	}

	if err := ValidateActivityType(log.Action); err != nil {
		return err
	}

	if err := s.repo.Create(log); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

// GetUserActivity retrieves activity logs for a user, newest first
func (s *AuditService) GetUserActivity(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error) {
	if userID == uuid.Nil {
		return nil, 0, ErrInvalidUserID
	}

	return s.repo.GetByUserID(userID, offset, limit)
}

// LogLogin logs a successful login event
func (s *AuditService) LogLogin(userID uuid.UUID, ipAddress, userAgent string) error {
	return s.CreateAuditLog(&models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionLogin,
		Resource:   "auth",
		ResourceID: userID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	})
}

// LogLogout logs a logout event
func (s *AuditService) LogLogout(userID uuid.UUID, ipAddress, userAgent string) error {
	return s.CreateAuditLog(&models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionLogout,
		Resource:   "auth",
		ResourceID: userID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	})
}

// LogProfileUpdate logs a profile update event
func (s *AuditService) LogProfileUpdate(userID uuid.UUID, ipAddress, userAgent string, changes map[string]interface{}) error {
	return s.CreateAuditLog(&models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionProfileUpdated,
		Resource:   "user",
		ResourceID: userID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Metadata:   changes,
	})
}

// LogPasswordUpdate logs a self-service password change
func (s *AuditService) LogPasswordUpdate(userID uuid.UUID, ipAddress, userAgent string) error {
	return s.CreateAuditLog(&models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionPasswordUpdated,
		Resource:   "user",
		ResourceID: userID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	})
}

// LogExpenseCreated logs an expense creation event
func (s *AuditService) LogExpenseCreated(userID, expenseID uuid.UUID, category string, ipAddress, userAgent string) error {
	return s.CreateAuditLog(&models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionExpenseCreated,
		Resource:   "expense",
		ResourceID: expenseID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Metadata: models.JSONMap{
			"category": category,
		},
	})
}

// LogExpenseUpdated logs an expense edit event
func (s *AuditService) LogExpenseUpdated(userID, expenseID uuid.UUID, ipAddress, userAgent string) error {
	return s.CreateAuditLog(&models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionExpenseUpdated,
		Resource:   "expense",
		ResourceID: expenseID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	})
}

// LogExpenseDeleted logs an expense deletion event
func (s *AuditService) LogExpenseDeleted(userID, expenseID uuid.UUID, ipAddress, userAgent string) error {
	return s.CreateAuditLog(&models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionExpenseDeleted,
		Resource:   "expense",
		ResourceID: expenseID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	})
}

// LogBudgetUpserted logs a budget create-or-replace event
func (s *AuditService) LogBudgetUpserted(userID, budgetID uuid.UUID, category string, ipAddress, userAgent string) error {
	return s.CreateAuditLog(&models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionBudgetUpserted,
		Resource:   "budget",
		ResourceID: budgetID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Metadata: models.JSONMap{
			"category": category,
		},
	})
}

// LogBudgetDeleted logs a budget deletion event
func (s *AuditService) LogBudgetDeleted(userID, budgetID uuid.UUID, ipAddress, userAgent string) error {
	return s.CreateAuditLog(&models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionBudgetDeleted,
		Resource:   "budget",
		ResourceID: budgetID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	})
}
