package services

import (
	"log/slog"
	"testing"

	"spendtrack/internal/database"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ProfileServiceTestSuite struct {
	suite.Suite
	db      *database.DB
	service ProfileServiceInterface
	user    *models.User
}

func TestProfileServiceSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}

func (s *ProfileServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.user = database.CreateTestUser(s.T(), s.db, "profileuser")
	s.service = NewProfileService(repositories.NewUserRepository(s.db.DB), slog.Default())
}

func (s *ProfileServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *ProfileServiceTestSuite) TestGetProfile() {
	profile, err := s.service.GetProfile(s.user.ID)
	s.NoError(err)
	s.Equal("profileuser", profile.Username)
}

func (s *ProfileServiceTestSuite) TestGetProfile_NotFound() {
	_, err := s.service.GetProfile(uuid.New())
	s.ErrorIs(err, repositories.ErrUserNotFound)
}

func (s *ProfileServiceTestSuite) TestUpdateUsername() {
	updated, err := s.service.UpdateUsername(s.user.ID, "renameduser")
	s.NoError(err)
	s.Equal("renameduser", updated.Username)

	_, err = repositories.NewUserRepository(s.db.DB).GetByUsername("profileuser")
	s.ErrorIs(err, repositories.ErrUserNotFound)
}

func (s *ProfileServiceTestSuite) TestUpdateUsername_Taken() {
	database.CreateTestUser(s.T(), s.db, "occupied")

	_, err := s.service.UpdateUsername(s.user.ID, "occupied")
	s.ErrorIs(err, ErrUsernameTaken)
}

func (s *ProfileServiceTestSuite) TestUpdateUsername_InvalidUsername() {
	for _, username := range []string{"", "ab", "has spaces", "way!bad"} {
		_, err := s.service.UpdateUsername(s.user.ID, username)
		s.Error(err, "username %q", username)
	}
}

func (s *ProfileServiceTestSuite) TestUpdateUsername_UserNotFound() {
	_, err := s.service.UpdateUsername(uuid.New(), "validname")
	s.ErrorIs(err, repositories.ErrUserNotFound)
}
