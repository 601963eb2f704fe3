package services

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"spendtrack/internal/dto"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrAccountLocked       = errors.New("account is locked due to too many failed attempts")
	ErrUserAlreadyExists   = errors.New("user with this username already exists")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo             repositories.UserRepositoryInterface
	refreshTokenRepo     repositories.RefreshTokenRepositoryInterface
	auditRepo            repositories.AuditLogRepositoryInterface
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface
	passwordService      PasswordServiceInterface
	tokenService         TokenServiceInterface
	metrics              MetricsRecorderInterface
	logger               *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	refreshTokenRepo repositories.RefreshTokenRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:             userRepo,
		refreshTokenRepo:     refreshTokenRepo,
		auditRepo:            auditRepo,
		blacklistedTokenRepo: blacklistedTokenRepo,
		passwordService:      passwordService,
		tokenService:         tokenService,
		metrics:              metrics,
		logger:               logger,
	}
}

// Register creates a new user account and logs it in, returning the same
// token pair a successful login would
func (s *AuthService) Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, *dto.TokenResponse, error) {
	existingUser, err := s.userRepo.GetByUsername(req.Username)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		s.auditFailedRegistration(req.Username, ipAddress, userAgent, "username_already_exists")
		return nil, nil, ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, nil, ErrUserAlreadyExists
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.auditSuccessfulRegistration(user, ipAddress, userAgent)
	s.recordAuthEvent("register")

	return user, tokens, nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.auditFailedLogin(req.Username, ipAddress, userAgent, "user_not_found")
			s.recordAuthEvent("login_failed")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsLocked() {
		s.auditFailedLogin(req.Username, ipAddress, userAgent, "account_locked")
		s.recordAuthEvent("login_locked")
		return nil, ErrAccountLocked
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		user.IncrementFailedAttempts()
		if err := s.userRepo.UpdateFailedLoginAttempts(user); err != nil {
			// Never reveal user existence via error messages
			s.logger.Error("failed to update login attempts",
				"error", err,
				"user_id", user.ID,
				"username", user.Username)
		}

		if user.IsLocked() {
			s.auditAccountLocked(user, ipAddress, userAgent)
		}

		s.auditFailedLogin(req.Username, ipAddress, userAgent, "invalid_password")
		s.recordAuthEvent("login_failed")
		return nil, ErrInvalidCredentials
	}

	user.ResetFailedAttempts()
	user.UpdateLastLogin()
	if err := s.userRepo.UpdateFailedLoginAttempts(user); err != nil {
		// Non-critical: bookkeeping failure shouldn't block login
		s.logger.Warn("failed to reset login attempts",
			"error", err,
			"user_id", user.ID,
			"username", user.Username)
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.auditSuccessfulLogin(user, ipAddress, userAgent)
	s.recordAuthEvent("login")

	return tokens, nil
}

// RefreshTokens generates new tokens using a refresh token
func (s *AuthService) RefreshTokens(refreshToken, ipAddress, userAgent string) (*dto.TokenResponse, error) {
	claims, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.auditFailedTokenRefresh("", ipAddress, userAgent, "invalid_token")
		return nil, ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	storedToken, err := s.refreshTokenRepo.GetByTokenHash(hashToken(refreshToken))
	if err != nil {
		s.auditFailedTokenRefresh(claims.UserID, ipAddress, userAgent, "token_not_found")
		return nil, ErrInvalidRefreshToken
	}

	if !storedToken.IsValid() {
		s.auditFailedTokenRefresh(claims.UserID, ipAddress, userAgent, "token_expired_or_revoked")
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	storedToken.Revoke()
	if err := s.refreshTokenRepo.Update(storedToken); err != nil {
		// Non-critical: revocation failure shouldn't block refresh
		s.logger.Warn("failed to revoke old token",
			"error", err,
			"user_id", user.ID,
			"token_id", storedToken.ID)
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new tokens: %w", err)
	}

	s.auditSuccessfulTokenRefresh(user, ipAddress, userAgent)
	s.recordAuthEvent("token_refresh")

	return tokens, nil
}

// Logout invalidates the user's tokens
func (s *AuthService) Logout(accessToken, ipAddress, userAgent string) error {
	claims, err := s.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		// Blacklist even expired tokens to prevent reuse
		jti, _ := s.tokenService.GetJTI(accessToken)
		if jti != "" {
			if err := s.blacklistToken(jti, uuid.Nil, time.Now().Add(24*time.Hour)); err != nil {
				s.logger.Error("failed to blacklist expired token",
					"error", err,
					"jti", jti)
			}
		}
		return nil
	}

	userID, _ := uuid.Parse(claims.UserID)

	expiry, _ := s.tokenService.GetTokenExpiry(accessToken)
	if err := s.blacklistToken(claims.ID, userID, expiry); err != nil {
		s.logger.Error("failed to blacklist token",
			"error", err,
			"jti", claims.ID,
			"user_id", userID)
	}

	if err := s.refreshTokenRepo.RevokeAllForUser(userID); err != nil {
		// Non-critical: revocation failure shouldn't block logout
		s.logger.Warn("failed to revoke refresh tokens",
			"error", err,
			"user_id", userID)
	}

	s.auditLogout(userID, ipAddress, userAgent)
	s.recordAuthEvent("logout")

	return nil
}

func (s *AuthService) generateTokens(user *models.User) (*dto.TokenResponse, error) {
	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: refreshExpiresAt,
	}

	if err := s.refreshTokenRepo.Create(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *AuthService) blacklistToken(jti string, userID uuid.UUID, expiresAt time.Time) error {
	token := &models.BlacklistedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return s.blacklistedTokenRepo.Create(token)
}

func (s *AuthService) recordAuthEvent(eventType string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": eventType})
}

func hashToken(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

// Audit logging methods
func (s *AuthService) auditSuccessfulRegistration(user *models.User, ipAddress, userAgent string) {
	s.createAuditLog(&user.ID, models.AuditActionRegister, "user", user.ID.String(), ipAddress, userAgent, nil)
}

func (s *AuthService) auditFailedRegistration(username, ipAddress, userAgent, reason string) {
	metadata := map[string]interface{}{
		"username": username,
		"reason":   reason,
	}
	s.createAuditLog(nil, models.AuditActionRegister, "user", "", ipAddress, userAgent, metadata)
}

func (s *AuthService) auditSuccessfulLogin(user *models.User, ipAddress, userAgent string) {
	s.createAuditLog(&user.ID, models.AuditActionLogin, "user", user.ID.String(), ipAddress, userAgent, nil)
}

func (s *AuthService) auditFailedLogin(username, ipAddress, userAgent, reason string) {
	metadata := map[string]interface{}{
		"username": username,
		"reason":   reason,
	}
	s.createAuditLog(nil, models.AuditActionFailedLogin, "user", "", ipAddress, userAgent, metadata)
}

func (s *AuthService) auditAccountLocked(user *models.User, ipAddress, userAgent string) {
	s.createAuditLog(&user.ID, models.AuditActionAccountLocked, "user", user.ID.String(), ipAddress, userAgent, nil)
}

func (s *AuthService) auditSuccessfulTokenRefresh(user *models.User, ipAddress, userAgent string) {
	s.createAuditLog(&user.ID, models.AuditActionTokenRefresh, "user", user.ID.String(), ipAddress, userAgent, nil)
}

func (s *AuthService) auditFailedTokenRefresh(userID, ipAddress, userAgent, reason string) {
	var uid *uuid.UUID
	if userID != "" {
		id, _ := uuid.Parse(userID)
		uid = &id
	}
	metadata := map[string]interface{}{
		"reason": reason,
	}
	s.createAuditLog(uid, models.AuditActionTokenRefresh, "token", "", ipAddress, userAgent, metadata)
}

func (s *AuthService) auditLogout(userID uuid.UUID, ipAddress, userAgent string) {
	s.createAuditLog(&userID, models.AuditActionLogout, "user", userID.String(), ipAddress, userAgent, nil)
}

func (s *AuthService) createAuditLog(userID *uuid.UUID, action, resource, resourceID, ipAddress, userAgent string, metadata map[string]interface{}) {
	log := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Metadata:   metadata,
	}

	if err := s.auditRepo.Create(log); err != nil {
		// Non-critical: audit failure shouldn't block the operation
		s.logger.Error("failed to create audit log",
			"error", err,
			"action", action,
			"resource", resource,
			"resource_id", resourceID)
	}
}
