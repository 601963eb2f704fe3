package repositories

import (
	"time"

	"spendtrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByUsernameExcluding(username string, excludeUserID uuid.UUID) (*models.User, error)
	Update(user *models.User) error
	UpdateUsername(userID uuid.UUID, newUsername string) error
	UpdatePasswordHash(userID uuid.UUID, passwordHash string) error
	UpdateFailedLoginAttempts(user *models.User) error
	ResetFailedLoginAttempts(userID uuid.UUID) error
	UnlockAccount(userID uuid.UUID) error
	Delete(userID uuid.UUID) error
}

// ExpenseRepositoryInterface defines the contract for expense repository operations
type ExpenseRepositoryInterface interface {
	Create(expense *models.Expense) error
	GetByID(id uuid.UUID) (*models.Expense, error)
	GetByUserID(userID uuid.UUID, offset, limit int) ([]models.Expense, int64, error)
	GetWithFilters(filters models.ExpenseFilters) ([]models.Expense, int64, error)
	GetForExport(userID uuid.UUID, filters models.ExpenseFilters) ([]models.Expense, error)
	Update(expense *models.Expense) error
	Delete(id uuid.UUID) error
	SumForUser(userID uuid.UUID) (decimal.Decimal, error)
	SumInRange(userID uuid.UUID, start, end time.Time, category string) (decimal.Decimal, error)
	GetInRange(userID uuid.UUID, start, end time.Time) ([]models.Expense, error)
}

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	GetByID(id uuid.UUID) (*models.Budget, error)
	GetByUserID(userID uuid.UUID) ([]models.Budget, error)
	GetByUserAndCategory(userID uuid.UUID, category string) (*models.Budget, error)
	Upsert(budget *models.Budget) error
	Delete(id uuid.UUID) error
}

// AuditLogRepositoryInterface defines the contract for audit log repository operations
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	GetByUserID(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
	GetByAction(action string, offset, limit int) ([]*models.AuditLog, int64, error)
	DeleteOlderThan(duration time.Duration) (int64, error)
}

type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByID(id uuid.UUID) (*models.RefreshToken, error)
	GetByTokenHash(tokenHash string) (*models.RefreshToken, error)
	GetActiveByUserID(userID uuid.UUID) ([]*models.RefreshToken, error)
	Update(token *models.RefreshToken) error
	Revoke(tokenID uuid.UUID) error
	RevokeAllForUser(userID uuid.UUID) error
	DeleteExpired() (int64, error)
	DeleteRevokedOlderThan(duration time.Duration) (int64, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for blacklisted token repository operations
type BlacklistedTokenRepositoryInterface interface {
	Create(token *models.BlacklistedToken) error
	GetByJTI(jti string) (*models.BlacklistedToken, error)
	DeleteExpired() (int64, error)
}
