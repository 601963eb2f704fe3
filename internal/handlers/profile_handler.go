package handlers

import (
	"net/http"

	"spendtrack/internal/dto"
	"spendtrack/internal/errors"
	"spendtrack/internal/repositories"
	"spendtrack/internal/services"

	"github.com/labstack/echo/v4"
)

// ProfileHandler handles the account profile endpoints
type ProfileHandler struct {
	profileService  services.ProfileServiceInterface
	passwordService services.PasswordServiceInterface
	auditService    services.AuditServiceInterface
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(
	profileService services.ProfileServiceInterface,
	passwordService services.PasswordServiceInterface,
	auditService services.AuditServiceInterface,
) *ProfileHandler {
	return &ProfileHandler{
		profileService:  profileService,
		passwordService: passwordService,
		auditService:    auditService,
	}
}

// GetProfile returns the authenticated user's profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	user, err := h.profileService.GetProfile(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.UserProfileResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLoginAt,
	})
}

// UpdateUsername changes the account's username
func (h *ProfileHandler) UpdateUsername(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.UpdateUsernameRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.profileService.UpdateUsername(userID, req.Username)
	if err != nil {
		switch err {
		case services.ErrUsernameTaken:
			return SendError(c, errors.UserUsernameTaken)
		case repositories.ErrUserNotFound:
			return SendError(c, errors.UserNotFound)
		default:
			return SendSystemError(c, err)
		}
	}

	if logErr := h.auditService.LogProfileUpdate(userID, getClientIP(c), c.Request().UserAgent(), map[string]interface{}{
		"username": user.Username,
	}); logErr != nil {
		_ = logErr
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.UserProfileResponse{
			ID:        user.ID.String(),
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
			LastLogin: user.LastLoginAt,
		},
		Message: "Username updated",
	})
}

// UpdatePassword changes the account's password after verifying the
// current one
func (h *ProfileHandler) UpdatePassword(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.passwordService.UpdatePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch err {
		case services.ErrWrongCurrentPassword:
			return SendError(c, errors.UserWrongPassword)
		case services.ErrPasswordTooShort, services.ErrPasswordTooLong:
			return SendError(c, errors.UserPasswordTooWeak)
		case repositories.ErrUserNotFound:
			return SendError(c, errors.UserNotFound)
		default:
			return SendSystemError(c, err)
		}
	}

	if logErr := h.auditService.LogPasswordUpdate(userID, getClientIP(c), c.Request().UserAgent()); logErr != nil {
		_ = logErr
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Password updated",
	})
}
