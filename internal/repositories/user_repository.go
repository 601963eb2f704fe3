package repositories

import (
	"errors"
	"fmt"
	"strings"

	"spendtrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepositoryInterface {
	return &UserRepository{
		db: db,
	}
}

// Create creates a new user in the database
func (r *UserRepository) Create(user *models.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	if err := r.db.Create(user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	user := &models.User{ID: id}
	if err := r.db.First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by their username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User

	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

// GetByUsernameExcluding retrieves a user by username, excluding a specific user ID
func (r *UserRepository) GetByUsernameExcluding(username string, excludeUserID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ? AND id != ?", username, excludeUserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// Update updates a user in the database
func (r *UserRepository) Update(user *models.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// UpdateUsername updates a user's username
func (r *UserRepository) UpdateUsername(userID uuid.UUID, newUsername string) error {
	result := r.db.Model(&models.User{ID: userID}).
		Update("username", newUsername)

	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return ErrUsernameAlreadyExists
		}
		return fmt.Errorf("failed to update username: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePasswordHash atomically updates a user's password hash
func (r *UserRepository) UpdatePasswordHash(userID uuid.UUID, passwordHash string) error {
	if userID == uuid.Nil {
		return errors.New("user ID cannot be nil")
	}

	if passwordHash == "" {
		return errors.New("password hash cannot be empty")
	}

	result := r.db.Model(&models.User{ID: userID}).Update("password_hash", passwordHash)
	if result.Error != nil {
		return fmt.Errorf("failed to update password hash: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateFailedLoginAttempts persists the login bookkeeping fields: failed
// attempt count, lock status and last login time
func (r *UserRepository) UpdateFailedLoginAttempts(user *models.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	updates := map[string]interface{}{
		"failed_login_attempts": user.FailedLoginAttempts,
		"locked_at":             user.LockedAt,
		"last_login_at":         user.LastLoginAt,
	}

	if err := r.db.Model(user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update login attempts: %w", err)
	}

	return nil
}

// ResetFailedLoginAttempts resets the failed login counter for a user
func (r *UserRepository) ResetFailedLoginAttempts(userID uuid.UUID) error {
	updates := map[string]interface{}{
		"failed_login_attempts": 0,
		"locked_at":             nil,
	}

	if err := r.db.Model(&models.User{ID: userID}).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}

	return nil
}

// UnlockAccount unlocks a user account
func (r *UserRepository) UnlockAccount(userID uuid.UUID) error {
	return r.ResetFailedLoginAttempts(userID)
}

// Delete soft deletes a user
func (r *UserRepository) Delete(userID uuid.UUID) error {
	result := r.db.Delete(&models.User{ID: userID})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	// SQLite and Postgres duplicate key error detection
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "23505")
}
