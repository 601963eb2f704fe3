package services

import (
	"log/slog"
	"testing"
	"time"

	"spendtrack/internal/config"
	"spendtrack/internal/database"
	"spendtrack/internal/dto"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db               *database.DB
	service          AuthServiceInterface
	tokenService     TokenServiceInterface
	userRepo         repositories.UserRepositoryInterface
	refreshTokenRepo repositories.RefreshTokenRepositoryInterface
	blacklistRepo    repositories.BlacklistedTokenRepositoryInterface
	auditRepo        repositories.AuditLogRepositoryInterface
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.userRepo = repositories.NewUserRepository(s.db.DB)
	s.refreshTokenRepo = repositories.NewRefreshTokenRepository(s.db.DB)
	s.blacklistRepo = repositories.NewBlacklistedTokenRepository(s.db.DB)
	s.auditRepo = repositories.NewAuditLogRepository(s.db.DB)

	s.tokenService = NewTokenService(&config.JWTConfig{
		PrivateKey:           privateKey,
		PublicKey:            publicKey,
		Issuer:               "spendtrack-test",
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
	})

	passwordService := NewPasswordService(s.userRepo, &config.SecurityConfig{
		BCryptCost:        4,
		PasswordMinLength: 8,
	})

	s.service = NewAuthService(
		s.userRepo,
		s.refreshTokenRepo,
		s.auditRepo,
		s.blacklistRepo,
		passwordService,
		s.tokenService,
		nil,
		slog.Default(),
	)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *AuthServiceTestSuite) register(username, password string) *models.User {
	user, _, err := s.service.Register(&dto.RegisterRequest{
		Username: username,
		Password: password,
	}, "127.0.0.1", "test-agent")
	s.Require().NoError(err)
	return user
}

func (s *AuthServiceTestSuite) TestRegister() {
	user, tokens, err := s.service.Register(&dto.RegisterRequest{
		Username: "newuser",
		Password: "secret password",
	}, "127.0.0.1", "test-agent")
	s.Require().NoError(err)

	s.Equal("newuser", user.Username)
	s.NotEqual("secret password", user.PasswordHash)

	// Registering logs the user in
	s.Require().NotNil(tokens)
	s.NotEmpty(tokens.AccessToken)
	s.NotEmpty(tokens.RefreshToken)

	claims, err := s.tokenService.ValidateAccessToken(tokens.AccessToken)
	s.NoError(err)
	s.Equal(user.ID.String(), claims.UserID)

	stored, err := s.userRepo.GetByUsername("newuser")
	s.NoError(err)
	s.Equal(user.ID, stored.ID)
}

func (s *AuthServiceTestSuite) TestRegister_WritesAuditLog() {
	user := s.register("auditeduser", "secret password")

	logs, total, err := s.auditRepo.GetByUserID(user.ID, 0, 10)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(logs, 1)
	s.Equal(models.AuditActionRegister, logs[0].Action)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateUsername() {
	s.register("takenname", "secret password")

	_, _, err := s.service.Register(&dto.RegisterRequest{
		Username: "takenname",
		Password: "another password",
	}, "127.0.0.1", "test-agent")
	s.ErrorIs(err, ErrUserAlreadyExists)
}

func (s *AuthServiceTestSuite) TestRegister_WeakPassword() {
	_, _, err := s.service.Register(&dto.RegisterRequest{
		Username: "weakpwuser",
		Password: "short",
	}, "127.0.0.1", "test-agent")
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *AuthServiceTestSuite) TestLogin() {
	user := s.register("loginuser", "secret password")

	tokens, err := s.service.Login(&dto.LoginRequest{
		Username: "loginuser",
		Password: "secret password",
	}, "127.0.0.1", "test-agent")
	s.NoError(err)
	s.NotEmpty(tokens.AccessToken)
	s.NotEmpty(tokens.RefreshToken)
	s.Equal("Bearer", tokens.TokenType)

	claims, err := s.tokenService.ValidateAccessToken(tokens.AccessToken)
	s.NoError(err)
	s.Equal(user.ID.String(), claims.UserID)

	refreshed, err := s.userRepo.GetByID(user.ID)
	s.Require().NoError(err)
	s.NotNil(refreshed.LastLoginAt)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownUser() {
	_, err := s.service.Login(&dto.LoginRequest{
		Username: "ghost",
		Password: "whatever pass",
	}, "127.0.0.1", "test-agent")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	s.register("wrongpwuser", "secret password")

	_, err := s.service.Login(&dto.LoginRequest{
		Username: "wrongpwuser",
		Password: "not the password",
	}, "127.0.0.1", "test-agent")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogin_LocksAfterRepeatedFailures() {
	user := s.register("lockme", "secret password")

	for i := 0; i < models.MaxFailedLoginAttempts; i++ {
		_, err := s.service.Login(&dto.LoginRequest{
			Username: "lockme",
			Password: "not the password",
		}, "127.0.0.1", "test-agent")
		s.ErrorIs(err, ErrInvalidCredentials)
	}

	locked, err := s.userRepo.GetByID(user.ID)
	s.Require().NoError(err)
	s.True(locked.IsLocked())

	// even the correct password is rejected once locked
	_, err = s.service.Login(&dto.LoginRequest{
		Username: "lockme",
		Password: "secret password",
	}, "127.0.0.1", "test-agent")
	s.ErrorIs(err, ErrAccountLocked)
}

func (s *AuthServiceTestSuite) TestLogin_SuccessResetsFailedAttempts() {
	user := s.register("resetuser", "secret password")

	_, err := s.service.Login(&dto.LoginRequest{
		Username: "resetuser",
		Password: "not the password",
	}, "127.0.0.1", "test-agent")
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.service.Login(&dto.LoginRequest{
		Username: "resetuser",
		Password: "secret password",
	}, "127.0.0.1", "test-agent")
	s.NoError(err)

	refreshed, err := s.userRepo.GetByID(user.ID)
	s.Require().NoError(err)
	s.Equal(0, refreshed.FailedLoginAttempts)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_RotatesRefreshToken() {
	s.register("refreshuser", "secret password")

	tokens, err := s.service.Login(&dto.LoginRequest{
		Username: "refreshuser",
		Password: "secret password",
	}, "127.0.0.1", "test-agent")
	s.Require().NoError(err)

	renewed, err := s.service.RefreshTokens(tokens.RefreshToken, "127.0.0.1", "test-agent")
	s.NoError(err)
	s.NotEmpty(renewed.AccessToken)
	s.NotEqual(tokens.RefreshToken, renewed.RefreshToken)

	// the old refresh token is single-use
	_, err = s.service.RefreshTokens(tokens.RefreshToken, "127.0.0.1", "test-agent")
	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_Garbage() {
	_, err := s.service.RefreshTokens("garbage", "127.0.0.1", "test-agent")
	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestLogout_BlacklistsAccessToken() {
	s.register("logoutuser", "secret password")

	tokens, err := s.service.Login(&dto.LoginRequest{
		Username: "logoutuser",
		Password: "secret password",
	}, "127.0.0.1", "test-agent")
	s.Require().NoError(err)

	s.NoError(s.service.Logout(tokens.AccessToken, "127.0.0.1", "test-agent"))

	jti, err := s.tokenService.GetJTI(tokens.AccessToken)
	s.Require().NoError(err)

	blacklisted, err := s.blacklistRepo.GetByJTI(jti)
	s.NoError(err)
	s.Equal(jti, blacklisted.JTI)

	// refresh tokens are revoked as part of logout
	_, err = s.service.RefreshTokens(tokens.RefreshToken, "127.0.0.1", "test-agent")
	s.ErrorIs(err, ErrInvalidRefreshToken)
}
