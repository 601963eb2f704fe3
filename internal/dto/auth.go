package dto

import "time"

// Auth Request DTOs

// RegisterRequest contains user registration data
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

// LoginRequest contains login credentials
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RefreshTokenRequest contains refresh token for renewal
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Auth Response DTOs

// TokenResponse contains authentication tokens
type TokenResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	TokenType    string    `json:"tokenType"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// UserProfileResponse represents the authenticated user's profile
type UserProfileResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}
