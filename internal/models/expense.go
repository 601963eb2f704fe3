package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidExpenseAmount   = errors.New("expense amount must be positive")
	ErrInvalidExpenseCategory = errors.New("invalid expense category")
)

// Expense represents a single recorded spending entry.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Description string          `gorm:"type:varchar(255);not null" json:"description"`
	Category    string          `gorm:"type:varchar(20);not null;index" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook for Expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	now := time.Now()
	if e.Date.IsZero() {
		e.Date = Midnight(now.UTC())
	}

	// Set timestamps if not already set (for tests)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	return e.Validate()
}

// BeforeUpdate hook for Expense
func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	e.UpdatedAt = time.Now()
	return e.Validate()
}

// Validate validates the expense fields
func (e *Expense) Validate() error {
	if e.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if e.Description == "" {
		return errors.New("expense description is required")
	}

	if !IsValidCategory(e.Category) {
		return ErrInvalidExpenseCategory
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidExpenseAmount
	}

	return nil
}

// TableName returns the table name for Expense
func (e *Expense) TableName() string {
	return "expenses"
}

// Midnight truncates a time to the start of its day. Expense dates are
// stored at day resolution so range queries and grouping stay stable.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
