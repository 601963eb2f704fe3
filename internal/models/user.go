package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxFailedLoginAttempts = 5

	UsernameMinLength = 3
	UsernameMaxLength = 50
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

type User struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Username            string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash        string         `gorm:"type:varchar(255);not null" json:"-"`
	FailedLoginAttempts int            `gorm:"default:0" json:"-"`
	LockedAt            *time.Time     `gorm:"index" json:"locked_at,omitempty"`
	LastLoginAt         *time.Time     `gorm:"index" json:"last_login_at,omitempty"`
	CreatedAt           time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Expenses          []Expense          `gorm:"foreignKey:UserID" json:"-"`
	Budgets           []Budget           `gorm:"foreignKey:UserID" json:"-"`
	RefreshTokens     []RefreshToken     `gorm:"foreignKey:UserID" json:"-"`
	BlacklistedTokens []BlacklistedToken `gorm:"foreignKey:UserID" json:"-"`
	AuditLogs         []AuditLog         `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	// Skip validation if this is a map-based update (Updates with map)
	// In this case, the User struct is empty and only specific fields are being updated
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	return u.Validate()
}

func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username is required")
	}

	if len(u.Username) < UsernameMinLength || len(u.Username) > UsernameMaxLength {
		return fmt.Errorf("username must be between %d and %d characters", UsernameMinLength, UsernameMaxLength)
	}

	if !usernameRegex.MatchString(u.Username) {
		return errors.New("username may only contain letters, digits, underscores, dots and dashes")
	}

	return nil
}

func (u *User) IsLocked() bool {
	return u.LockedAt != nil
}

func (u *User) Lock() {
	now := time.Now()
	u.LockedAt = &now
	u.FailedLoginAttempts = MaxFailedLoginAttempts
}

func (u *User) Unlock() {
	u.LockedAt = nil
	u.FailedLoginAttempts = 0
}

func (u *User) IncrementFailedAttempts() {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= MaxFailedLoginAttempts {
		u.Lock()
	}
}

func (u *User) ResetFailedAttempts() {
	u.FailedLoginAttempts = 0
}

func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

func (u *User) TableName() string {
	return "users"
}
