package handler

import (
	"net/http"

	"document-management-server/internal/model"
	"document-management-server/internal/model/requestresponse"
	"document-management-server/internal/ports"
	"document-management-server/internal/security"
	"document-management-server/internal/util"

	"github.com/go-chi/chi/v5"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	sessions *security.SessionManager
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService, sessions *security.SessionManager) *AuthenticationHandler {
	return &AuthenticationHandler{authenticationService, sessions}
}

// Register godoc
// @Summary Register a new account
// @Description Creates a staff account and signs it in. The session is returned as an HttpOnly cookie.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Account details"
// @Success 201 {object} requestresponse.AuthResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Invalid input or weak password"
// @Failure 409 {object} requestresponse.ErrorResponse "Email already registered"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	result, err := h.AuthenticationService.Register(r.Context(), model.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
	})
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	h.sessions.SetCookie(w, result.Token, result.ExpiresAt)
	util.WriteJSON(w, http.StatusCreated, requestresponse.AuthResponseFromModel(result))
}

// Login godoc
// @Summary Sign in
// @Description Checks email and password and sets the session cookie.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Credentials"
// @Success 200 {object} requestresponse.AuthResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Invalid email or password"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	result, err := h.AuthenticationService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	h.sessions.SetCookie(w, result.Token, result.ExpiresAt)
	util.WriteJSON(w, http.StatusOK, requestresponse.AuthResponseFromModel(result))
}

// Logout godoc
// @Summary Sign out
// @Description Clears the session cookie.
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.MessageResponse
// @Router /api/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary Current user
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.UserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthenticationHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.AuthenticationService.CurrentUser(r.Context())
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.UserResponseFromModel(user))
}

// ChangePassword godoc
// @Summary Change password
// @Description Verifies the current password. Every other session of the user is revoked and a fresh cookie is issued.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.ChangePasswordRequest true "Passwords"
// @Success 200 {object} requestresponse.AuthResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/password [put]
func (h *AuthenticationHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.ChangePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	result, err := h.AuthenticationService.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	h.sessions.SetCookie(w, result.Token, result.ExpiresAt)
	util.WriteJSON(w, http.StatusOK, requestresponse.AuthResponseFromModel(result))
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Always answers the same way so that registered emails cannot be discovered.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.ForgotPasswordRequest true "Email"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Router /api/auth/forgot-password [post]
func (h *AuthenticationHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.ForgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	if err := h.AuthenticationService.ForgotPassword(r.Context(), req.Email); err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{
		Message: "If an account exists for this email, a reset link has been sent",
	})
}

// ValidateResetToken godoc
// @Summary Check a password reset token
// @Tags Authentication
// @Produce json
// @Param token path string true "Reset token"
// @Success 200 {object} requestresponse.TokenValidResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Used or expired"
// @Failure 404 {object} requestresponse.ErrorResponse "Unknown token"
// @Router /api/auth/reset-password/{token} [get]
func (h *AuthenticationHandler) ValidateResetToken(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthenticationService.ValidateResetToken(r.Context(), chi.URLParam(r, "token")); err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.TokenValidResponse{Valid: true})
}

// ResetPassword godoc
// @Summary Reset password with a token
// @Description Consumes the token and revokes every session of the user.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/auth/reset-password [post]
func (h *AuthenticationHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	if err := h.AuthenticationService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Password has been reset successfully"})
}
