package handlers

import (
	"net/http"
	"strings"

	"spendtrack/internal/dto"
	"spendtrack/internal/errors"
	"spendtrack/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	user, tokens, err := h.authService.Register(&req, ipAddress, userAgent)
	if err != nil {
		if err == services.ErrUserAlreadyExists {
			return SendError(c, errors.UserAlreadyExists)
		}
		if err == services.ErrPasswordTooShort || err == services.ErrPasswordTooLong {
			return SendError(c, errors.UserPasswordTooWeak)
		}
		return SendSystemError(c, err)
	}

	// Registration logs the new user straight in
	response := map[string]interface{}{
		"id":         user.ID,
		"username":   user.Username,
		"created_at": user.CreatedAt,
		"tokens":     tokens,
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    response,
		Message: "User registered successfully",
	})
}

// Login authenticates a user and returns a JWT token pair
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	tokens, err := h.authService.Login(&req, ipAddress, userAgent)
	if err != nil {
		if err == services.ErrAccountLocked {
			return SendError(c, errors.AuthAccountLocked)
		}
		if err == services.ErrInvalidCredentials {
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// Refresh tokens are single use; the presented one is revoked.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req dto.RefreshTokenRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	tokens, err := h.authService.RefreshTokens(req.RefreshToken, ipAddress, userAgent)
	if err != nil {
		if err == services.ErrInvalidRefreshToken {
			return SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("Invalid or expired refresh token"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// Logout blacklists the presented access token and revokes the user's
// refresh tokens
func (h *AuthHandler) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return SendError(c, errors.AuthMissingToken)
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return SendError(c, errors.AuthInvalidTokenFormat)
	}

	accessToken := tokenParts[1]
	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	if err := h.authService.Logout(accessToken, ipAddress, userAgent); err != nil {
		// Always report success so callers cannot probe token state
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Logout successful",
	})
}
