package dto

// Profile Request DTOs

// UpdateUsernameRequest changes the account's username
type UpdateUsernameRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50,username"`
}

// UpdatePasswordRequest changes the account's password after verifying
// the current one
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"required,min=8"`
}
