package middleware

import (
	"spendtrack/internal/errors"
	"spendtrack/internal/handlers"
	"spendtrack/internal/repositories"
	"spendtrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that requires a valid JWT token
// and checks that the token has not been blacklisted (e.g., after logout)
func RequireAuth(tokenService services.TokenServiceInterface, blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if err == services.ErrExpiredToken {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			blacklistedToken, err := blacklistedTokenRepo.GetByJTI(claims.ID)
			if err == nil && blacklistedToken != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("Token has been revoked"))
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("Invalid user ID in token"))
			}

			c.Set("user_id", userID)
			c.Set("username", claims.Username)
			c.Set("token_jti", claims.ID)

			return next(c)
		}
	}
}
