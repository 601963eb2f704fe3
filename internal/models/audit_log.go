package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AuditActionLogin           = "login"
	AuditActionLogout          = "logout"
	AuditActionRegister        = "register"
	AuditActionFailedLogin     = "failed_login"
	AuditActionAccountLocked   = "account_locked"
	AuditActionTokenRefresh    = "token_refresh"
	AuditActionProfileUpdated  = "profile_updated"
	AuditActionPasswordUpdated = "password_updated"
	AuditActionExpenseCreated  = "expense_created"
	AuditActionExpenseUpdated  = "expense_updated"
	AuditActionExpenseDeleted  = "expense_deleted"
	AuditActionBudgetUpserted  = "budget_upserted"
	AuditActionBudgetDeleted   = "budget_deleted"
)

type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action     string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Resource   string     `gorm:"type:varchar(100);not null" json:"resource"`
	ResourceID string     `gorm:"type:varchar(255)" json:"resource_id,omitempty"`
	IPAddress  string     `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent  string     `gorm:"type:text" json:"user_agent,omitempty"`
	Metadata   JSONMap    `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

func (al *AuditLog) SetMetadata(key string, value interface{}) {
	if al.Metadata == nil {
		al.Metadata = make(JSONMap)
	}
	al.Metadata[key] = value
}

func (al *AuditLog) String() string {
	userStr := "anonymous"
	if al.UserID != nil {
		userStr = al.UserID.String()
	}

	return fmt.Sprintf("AuditLog[User: %s, Action: %s, Resource: %s/%s, IP: %s, Time: %s]",
		userStr, al.Action, al.Resource, al.ResourceID, al.IPAddress, al.CreatedAt.Format(time.RFC3339))
}

func (al *AuditLog) TableName() string {
	return "audit_logs"
}

func (al *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.New()
	}

	if al.CreatedAt.IsZero() {
		al.CreatedAt = time.Now()
	}
	return nil
}

// JSONMap is a map column serialized as JSON text for SQLite.
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (m JSONMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

// Scan implements sql.Scanner interface
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("unsupported type for JSONMap scan")
	}

	return json.Unmarshal(bytes, m)
}
