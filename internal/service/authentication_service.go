package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/ports"
	"document-management-server/internal/security"
	"document-management-server/internal/util"
)

const (
	resetSecretBytes    = 32
	invalidCredentials  = "Invalid email or password"
	invalidResetToken   = "Invalid reset token"
	emailAlreadyInUse   = "Email already registered"
	resetTokenUsed      = "Reset token has already been used"
	resetTokenExpired   = "Reset token has expired"
	currentPasswordFail = "Current password is incorrect"
)

type AuthenticationService struct {
	tx                   ports.Transactor
	userRepository       ports.UserRepository
	departmentRepository ports.DepartmentRepository
	resetTokenRepository ports.ResetTokenRepository
	sessions             ports.SessionIssuer
	delivery             ports.ResetDelivery
	activity             ports.ActivityRecorder
	resetTTL             time.Duration
	now                  func() time.Time
}

func NewAuthenticationService(
	tx ports.Transactor,
	userRepository ports.UserRepository,
	departmentRepository ports.DepartmentRepository,
	resetTokenRepository ports.ResetTokenRepository,
	sessions ports.SessionIssuer,
	delivery ports.ResetDelivery,
	activity ports.ActivityRecorder,
	resetTTL time.Duration,
) *AuthenticationService {
	return &AuthenticationService{
		tx:                   tx,
		userRepository:       userRepository,
		departmentRepository: departmentRepository,
		resetTokenRepository: resetTokenRepository,
		sessions:             sessions,
		delivery:             delivery,
		activity:             activity,
		resetTTL:             resetTTL,
		now:                  time.Now,
	}
}

// Register : public sign-up; every self-registered account is staff
func (s *AuthenticationService) Register(ctx context.Context, input model.RegisterInput) (*model.AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" {
		return nil, common.Validation("Name is required")
	}
	if email == "" {
		return nil, common.Validation("Email is required")
	}
	if err := security.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	taken, err := s.userRepository.EmailTaken(ctx, s.tx.DB(), email, 0)
	if err != nil {
		return nil, common.Internal("[AuthService] failed to check email", err)
	}
	if taken {
		return nil, common.Conflict(emailAlreadyInUse)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.Internal("[AuthService] failed to hash password", err)
	}

	user, err := createUser(ctx, s.tx, s.userRepository, s.departmentRepository, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleStaff,
	}, input.Department)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, user.ID, model.ActionUserRegister, "User registered: "+user.Email)
	return s.issue(user)
}

// Login : unknown email and wrong password are indistinguishable
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	user, err := s.userRepository.FindByEmail(ctx, s.tx.DB(), normalizeEmail(email))
	if errors.Is(err, common.ErrNotFound) {
		security.DummyCheck(password)
		return nil, common.Unauthorized(invalidCredentials)
	} else if err != nil {
		return nil, common.Internal("[AuthService] failed to look up user", err)
	}

	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, common.Unauthorized(invalidCredentials)
	}

	s.activity.Record(ctx, user.ID, model.ActionUserLogin, "User logged in")
	return s.issue(user)
}

func (s *AuthenticationService) CurrentUser(ctx context.Context) (*model.User, error) {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepository.FindByID(ctx, s.tx.DB(), session.UserID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.Unauthorized("Unauthorized")
	} else if err != nil {
		return nil, common.Internal("[AuthService] failed to load user", err)
	}
	return user, nil
}

// ChangePassword : revokes every other session and returns a fresh one
func (s *AuthenticationService) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*model.AuthResult, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !security.CheckPassword(user.PasswordHash, currentPassword) {
		return nil, common.Validation(currentPasswordFail)
	}
	if err := security.ValidatePassword(newPassword); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, common.Internal("[AuthService] failed to hash password", err)
	}
	epoch, err := s.userRepository.UpdatePassword(ctx, s.tx.DB(), user.ID, hash)
	if err != nil {
		return nil, common.Internal("[AuthService] failed to update password", err)
	}
	user.SessionEpoch = epoch

	s.activity.Record(ctx, user.ID, model.ActionPasswordChange, "Password changed")
	return s.issue(user)
}

// ForgotPassword : succeeds whether or not the email is known
func (s *AuthenticationService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepository.FindByEmail(ctx, s.tx.DB(), normalizeEmail(email))
	if errors.Is(err, common.ErrNotFound) {
		slog.DebugContext(ctx, "[AuthService] password reset for unknown email")
		return nil
	} else if err != nil {
		return common.Internal("[AuthService] failed to look up user", err)
	}

	secret, err := util.GenerateSecret(resetSecretBytes)
	if err != nil {
		return common.Internal("[AuthService] failed to generate reset token", err)
	}
	token := &model.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: util.HashSecret(secret),
		ExpiresAt: s.now().Add(s.resetTTL),
	}

	if err := s.resetTokenRepository.Create(ctx, s.tx.DB(), token); err != nil {
		return common.Internal("[AuthService] failed to store reset token", err)
	}

	if err := s.delivery.DeliverResetToken(ctx, user, secret, token.ExpiresAt); err != nil {
		slog.WarnContext(ctx, "[AuthService] failed to deliver reset token", "user_id", user.ID, "error", err)
	}
	return nil
}

func (s *AuthenticationService) ValidateResetToken(ctx context.Context, secret string) error {
	_, err := s.resetToken(ctx, secret)
	return err
}

// ResetPassword : consumes the token and revokes every session of the user
func (s *AuthenticationService) ResetPassword(ctx context.Context, secret, newPassword string) error {
	token, err := s.resetToken(ctx, secret)
	if err != nil {
		return err
	}
	if err := security.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return common.Internal("[AuthService] failed to hash password", err)
	}

	exec, rollback, commit, err := s.tx.BeginTX(ctx)
	if err != nil {
		return common.Internal("[AuthService] failed to begin transaction", err)
	}
	defer func() { _ = rollback() }()

	used, err := s.resetTokenRepository.MarkUsed(ctx, exec, token.ID)
	if err != nil {
		return common.Internal("[AuthService] failed to consume reset token", err)
	}
	if !used {
		return common.Validation(resetTokenUsed)
	}
	if _, err := s.userRepository.UpdatePassword(ctx, exec, token.UserID, hash); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound(invalidResetToken)
		}
		return common.Internal("[AuthService] failed to update password", err)
	}
	if err := commit(); err != nil {
		return common.Internal("[AuthService] failed to commit password reset", err)
	}

	s.activity.Record(ctx, token.UserID, model.ActionPasswordReset, "Password reset via token")
	return nil
}

func (s *AuthenticationService) resetToken(ctx context.Context, secret string) (*model.PasswordResetToken, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, common.NotFound(invalidResetToken)
	}

	token, err := s.resetTokenRepository.FindByHash(ctx, s.tx.DB(), util.HashSecret(secret))
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFound(invalidResetToken)
	} else if err != nil {
		return nil, common.Internal("[AuthService] failed to look up reset token", err)
	}

	if token.Used {
		return nil, common.Validation(resetTokenUsed)
	}
	if !s.now().Before(token.ExpiresAt) {
		return nil, common.Validation(resetTokenExpired)
	}
	return token, nil
}

func (s *AuthenticationService) issue(user *model.User) (*model.AuthResult, error) {
	token, expiresAt, err := s.sessions.Create(user)
	if err != nil {
		return nil, common.Internal("[AuthService] failed to create session", err)
	}
	return &model.AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// createUser inserts the user, resolving the department name in the same transaction.
func createUser(
	ctx context.Context,
	tx ports.Transactor,
	users ports.UserRepository,
	departments ports.DepartmentRepository,
	user *model.User,
	department string,
) (*model.User, error) {
	exec, rollback, commit, err := tx.BeginTX(ctx)
	if err != nil {
		return nil, common.Internal("[UserService] failed to begin transaction", err)
	}
	defer func() { _ = rollback() }()

	if department = strings.TrimSpace(department); department != "" {
		id, err := departments.GetOrCreate(ctx, exec, department)
		if err != nil {
			return nil, common.Internal("[UserService] failed to resolve department", err)
		}
		user.DepartmentID = &id
		user.DepartmentName = &department
	}

	created, err := users.Create(ctx, exec, user)
	if errors.Is(err, common.ErrDuplicate) {
		return nil, common.Conflict(emailAlreadyInUse)
	} else if err != nil {
		return nil, common.Internal("[UserService] failed to create user", err)
	}

	if err := commit(); err != nil {
		return nil, common.Internal("[UserService] failed to commit user", err)
	}
	return created, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
