package services

import (
	"errors"
	"fmt"

	"spendtrack/internal/config"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrPasswordTooLong      = errors.New("password is too long")
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
)

// bcrypt rejects inputs above 72 bytes
const maxPasswordLength = 72

// PasswordService handles password hashing and verification
type PasswordService struct {
	userRepo  repositories.UserRepositoryInterface
	cost      int
	minLength int
}

// NewPasswordService creates a new password service
func NewPasswordService(userRepo repositories.UserRepositoryInterface, security *config.SecurityConfig) PasswordServiceInterface {
	return &PasswordService{
		userRepo:  userRepo,
		cost:      security.BCryptCost,
		minLength: security.PasswordMinLength,
	}
}

// ValidatePassword checks a candidate password against the length policy
func (ps *PasswordService) ValidatePassword(password string) error {
	if len(password) < ps.minLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooShort, ps.minLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: must be at most %d characters", ErrPasswordTooLong, maxPasswordLength)
	}
	return nil
}

// HashPassword validates and hashes a password using bcrypt
func (ps *PasswordService) HashPassword(password string) (string, error) {
	if err := ps.ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// ComparePassword compares a plaintext password with a bcrypt hash
func (ps *PasswordService) ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// UpdatePassword changes a user's password after verifying the current one
func (ps *PasswordService) UpdatePassword(userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := ps.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !ps.ComparePassword(currentPassword, user.PasswordHash) {
		return ErrWrongCurrentPassword
	}

	newHash, err := ps.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := ps.userRepo.UpdatePasswordHash(userID, newHash); err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	return nil
}
