package repositories

import (
	"testing"

	"spendtrack/internal/database"
	"spendtrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserRepositorySuite) TestUserRepository_Create() {
	user := &models.User{
		Username:     "testuser",
		PasswordHash: "hashed_password",
	}

	err := s.repo.Create(user)
	s.NoError(err)
	s.NotEqual(uuid.Nil, user.ID)
	s.NotZero(user.CreatedAt)
	s.NotZero(user.UpdatedAt)
}

func (s *UserRepositorySuite) TestUserRepository_Create_DuplicateUsername() {
	user := &models.User{
		Username:     "testuser",
		PasswordHash: "hashed_password",
	}
	s.NoError(s.repo.Create(user))

	duplicate := &models.User{
		Username:     "testuser",
		PasswordHash: "other_hash",
	}
	err := s.repo.Create(duplicate)
	s.Equal(ErrUserAlreadyExists, err)
}

func (s *UserRepositorySuite) TestUserRepository_GetByUsername() {
	user := &models.User{
		Username:     "testuser",
		PasswordHash: "hashed_password",
	}
	err := s.repo.Create(user)
	s.NoError(err)

	// Test getting existing user
	foundUser, err := s.repo.GetByUsername("testuser")
	s.NoError(err)
	s.Equal(user.ID, foundUser.ID)
	s.Equal(user.Username, foundUser.Username)

	// Test getting non-existent user
	_, err = s.repo.GetByUsername("nonexistent")
	s.Equal(ErrUserNotFound, err)
}

func (s *UserRepositorySuite) TestUserRepository_GetByUsernameExcluding() {
	first := &models.User{Username: "firstuser", PasswordHash: "hash"}
	second := &models.User{Username: "seconduser", PasswordHash: "hash"}
	s.NoError(s.repo.Create(first))
	s.NoError(s.repo.Create(second))

	// Excluding the owner finds nothing
	_, err := s.repo.GetByUsernameExcluding("firstuser", first.ID)
	s.Equal(ErrUserNotFound, err)

	// Excluding another user still finds the owner
	found, err := s.repo.GetByUsernameExcluding("firstuser", second.ID)
	s.NoError(err)
	s.Equal(first.ID, found.ID)
}

func (s *UserRepositorySuite) TestUserRepository_Update() {
	user := &models.User{
		Username:     "testuser",
		PasswordHash: "hashed_password",
	}
	err := s.repo.Create(user)
	s.NoError(err)

	// Update user
	user.FailedLoginAttempts = 2
	err = s.repo.Update(user)
	s.NoError(err)

	// Verify update
	updatedUser, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal(2, updatedUser.FailedLoginAttempts)
}

func (s *UserRepositorySuite) TestUserRepository_UpdateUsername() {
	user := &models.User{Username: "oldname", PasswordHash: "hash"}
	s.NoError(s.repo.Create(user))

	err := s.repo.UpdateUsername(user.ID, "newname")
	s.NoError(err)

	updated, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("newname", updated.Username)

	// Non-existent user
	err = s.repo.UpdateUsername(uuid.New(), "whatever")
	s.Equal(ErrUserNotFound, err)
}

func (s *UserRepositorySuite) TestUserRepository_UpdateUsername_Taken() {
	first := &models.User{Username: "firstuser", PasswordHash: "hash"}
	second := &models.User{Username: "seconduser", PasswordHash: "hash"}
	s.NoError(s.repo.Create(first))
	s.NoError(s.repo.Create(second))

	err := s.repo.UpdateUsername(second.ID, "firstuser")
	s.Equal(ErrUsernameAlreadyExists, err)
}

func (s *UserRepositorySuite) TestUserRepository_UpdatePasswordHash() {
	user := &models.User{Username: "testuser", PasswordHash: "old_hash"}
	s.NoError(s.repo.Create(user))

	err := s.repo.UpdatePasswordHash(user.ID, "new_hash")
	s.NoError(err)

	updated, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("new_hash", updated.PasswordHash)

	// Empty hash is rejected
	err = s.repo.UpdatePasswordHash(user.ID, "")
	s.Error(err)
}

func (s *UserRepositorySuite) TestUserRepository_UnlockAccount() {
	// Create user with failed attempts
	user := &models.User{
		Username:            "lockeduser",
		PasswordHash:        "hashed_password",
		FailedLoginAttempts: 3,
	}
	err := s.repo.Create(user)
	s.NoError(err)

	// Unlock account
	err = s.repo.UnlockAccount(user.ID)
	s.NoError(err)

	// Verify unlock
	unlockedUser, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal(0, unlockedUser.FailedLoginAttempts)
	s.Nil(unlockedUser.LockedAt)
}

func (s *UserRepositorySuite) TestUserRepository_Delete() {
	user := &models.User{Username: "doomed", PasswordHash: "hash"}
	s.NoError(s.repo.Create(user))

	err := s.repo.Delete(user.ID)
	s.NoError(err)

	_, err = s.repo.GetByID(user.ID)
	s.Equal(ErrUserNotFound, err)

	// Deleting again reports not found
	err = s.repo.Delete(user.ID)
	s.Equal(ErrUserNotFound, err)
}
