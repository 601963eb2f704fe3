package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidBudgetLimit = errors.New("budget limit must be positive")
)

// Budget is a per-category monthly spending limit. A user holds at most one
// budget per category, enforced by the composite unique index.
type Budget struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category" json:"user_id"`
	Category     string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_budgets_user_category" json:"category"`
	MonthlyLimit decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"monthly_limit"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook for Budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

// BeforeUpdate hook for Budget
func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	b.UpdatedAt = time.Now()
	return b.Validate()
}

// Validate validates the budget fields
func (b *Budget) Validate() error {
	if b.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if !IsValidCategory(b.Category) {
		return ErrInvalidExpenseCategory
	}

	if b.MonthlyLimit.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidBudgetLimit
	}

	return nil
}

// TableName returns the table name for Budget
func (b *Budget) TableName() string {
	return "budgets"
}
