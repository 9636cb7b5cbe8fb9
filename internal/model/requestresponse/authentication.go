package requestresponse

import (
	"time"

	"document-management-server/internal/model"
)

// RegisterRequest : self-service sign-up; new accounts are staff
type RegisterRequest struct {
	Name       string `json:"name" validate:"required,max=255" example:"Jane Doe"`
	Email      string `json:"email" validate:"required,email,max=255" example:"jane@example.com"`
	Password   string `json:"password" validate:"required" example:"Secret123"`
	Department string `json:"department,omitempty" validate:"max=255" example:"Finance"`
}

// LoginRequest : email and password
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123"`
}

// AuthResponse : the signed-in user; the session itself travels in a cookie
type AuthResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expires_at" example:"2025-08-30T12:34:56Z"`
}

func AuthResponseFromModel(result *model.AuthResult) AuthResponse {
	return AuthResponse{
		User:      UserResponseFromModel(result.User),
		ExpiresAt: result.ExpiresAt,
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required" example:"Secret123"`
	NewPassword     string `json:"new_password" validate:"required" example:"Secret456"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email" example:"jane@example.com"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required" example:"3q2-7wEAAAB..."`
	Password string `json:"password" validate:"required" example:"Secret456"`
}

// TokenValidResponse : answer to a reset-token check
type TokenValidResponse struct {
	Valid bool `json:"valid" example:"true"`
}
