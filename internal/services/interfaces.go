package services

import (
	"io"
	"time"

	"spendtrack/internal/dto"
	"spendtrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, *dto.TokenResponse, error)
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error)
	RefreshTokens(refreshToken, ipAddress, userAgent string) (*dto.TokenResponse, error)
	Logout(accessToken, ipAddress, userAgent string) error
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ValidateRefreshToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
	UpdatePassword(userID uuid.UUID, currentPassword, newPassword string) error
}

type ClassifierServiceInterface interface {
	Classify(description string) string
	ClassifyDetailed(description string) models.ClassificationResult
	ResolveCategory(requested, description string) (string, error)
}

type ExpenseServiceInterface interface {
	Create(userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.Expense, error)
	GetByID(userID, expenseID uuid.UUID) (*models.Expense, error)
	List(userID uuid.UUID, offset, limit int) ([]models.Expense, int64, error)
	ListFiltered(filters models.ExpenseFilters) ([]models.Expense, int64, error)
	Update(userID, expenseID uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error)
	Delete(userID, expenseID uuid.UUID) error
}

type BudgetServiceInterface interface {
	Upsert(userID uuid.UUID, req *dto.UpsertBudgetRequest) (*models.Budget, error)
	List(userID uuid.UUID) ([]models.Budget, error)
	Delete(userID, budgetID uuid.UUID) error
}

type SummaryServiceInterface interface {
	LifetimeTotal(userID uuid.UUID) (decimal.Decimal, error)
	MonthComparison(userID uuid.UUID, now time.Time) (*models.MonthComparison, error)
	MonthProjection(userID uuid.UUID, now time.Time) (*models.MonthProjection, error)
	FilteredSummary(userID uuid.UUID, filters models.ExpenseFilters) (*models.FilteredSummary, error)
	CategoryBreakdown(userID uuid.UUID, start, end time.Time) ([]models.CategoryTotal, error)
	DailyBreakdown(userID uuid.UUID, start, end time.Time) ([]models.DailyTotal, error)
	BudgetStatuses(userID uuid.UUID, now time.Time) ([]models.BudgetStatus, error)
}

type ReportServiceInterface interface {
	WriteCSV(w io.Writer, userID uuid.UUID, filters models.ExpenseFilters) error
	RenderPDF(userID uuid.UUID, username string, filters models.ExpenseFilters, now time.Time) ([]byte, error)
	RenderCategoryChart(userID uuid.UUID, now time.Time) ([]byte, error)
}

type ProfileServiceInterface interface {
	GetProfile(userID uuid.UUID) (*models.User, error)
	UpdateUsername(userID uuid.UUID, newUsername string) (*models.User, error)
}

type AuditServiceInterface interface {
	CreateAuditLog(log *models.AuditLog) error
	GetUserActivity(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
	LogLogin(userID uuid.UUID, ipAddress, userAgent string) error
	LogLogout(userID uuid.UUID, ipAddress, userAgent string) error
	LogProfileUpdate(userID uuid.UUID, ipAddress, userAgent string, changes map[string]interface{}) error
	LogPasswordUpdate(userID uuid.UUID, ipAddress, userAgent string) error
	LogExpenseCreated(userID, expenseID uuid.UUID, category string, ipAddress, userAgent string) error
	LogExpenseUpdated(userID, expenseID uuid.UUID, ipAddress, userAgent string) error
	LogExpenseDeleted(userID, expenseID uuid.UUID, ipAddress, userAgent string) error
	LogBudgetUpserted(userID, budgetID uuid.UUID, category string, ipAddress, userAgent string) error
	LogBudgetDeleted(userID, budgetID uuid.UUID, ipAddress, userAgent string) error
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
}
