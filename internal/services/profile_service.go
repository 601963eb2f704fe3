package services

import (
	"errors"
	"fmt"
	"log/slog"

	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
)

var ErrUsernameTaken = errors.New("username is already taken")

type profileService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo repositories.UserRepositoryInterface, logger *slog.Logger) ProfileServiceInterface {
	return &profileService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile retrieves a user's profile
func (s *profileService) GetProfile(userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateUsername renames the account. The new username must satisfy the
// username policy and not belong to any other account.
func (s *profileService) UpdateUsername(userID uuid.UUID, newUsername string) (*models.User, error) {
	candidate := &models.User{Username: newUsername}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateUsername(userID, newUsername); err != nil {
		if errors.Is(err, repositories.ErrUsernameAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update username: %w", err)
	}

	s.logger.Info("username changed", "user_id", userID, "username", newUsername)

	return s.userRepo.GetByID(userID)
}
