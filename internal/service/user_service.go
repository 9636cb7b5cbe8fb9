package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/ports"
	"document-management-server/internal/security"
	"document-management-server/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	userAdminMessage   = "Only administrators can manage users"
	maxAvatarBytes     = 10 << 20
	userNotFound       = "User not found"
	avatarTypesMessage = "Profile image must be a PNG, JPEG or GIF"
)

var avatarTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
}

type UserService struct {
	tx                   ports.Transactor
	userRepository       ports.UserRepository
	departmentRepository ports.DepartmentRepository
	permissions          ports.PermissionResolver
	activity             ports.ActivityRecorder
	cache                ports.ListCache
}

// UserServiceOption plugs in optional infrastructure.
type UserServiceOption func(*UserService)

// WithUserListCache drops cached document listings when a user and their
// documents are removed.
func WithUserListCache(cache ports.ListCache) UserServiceOption {
	return func(s *UserService) { s.cache = cache }
}

func NewUserService(
	tx ports.Transactor,
	userRepository ports.UserRepository,
	departmentRepository ports.DepartmentRepository,
	permissions ports.PermissionResolver,
	activity ports.ActivityRecorder,
	opts ...UserServiceOption,
) *UserService {
	s := &UserService{
		tx:                   tx,
		userRepository:       userRepository,
		departmentRepository: departmentRepository,
		permissions:          permissions,
		activity:             activity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	if _, err := security.CurrentSession(ctx); err != nil {
		return nil, err
	}
	users, err := s.userRepository.List(ctx, s.tx.DB(), pageLimit(limit), pageOffset(offset))
	if err != nil {
		return nil, common.Internal("[UserService] failed to list users", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	if _, err := security.CurrentSession(ctx); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

// Create : admin-created account with an explicit role
func (s *UserService) Create(ctx context.Context, input model.CreateUserInput) (*model.User, error) {
	session, err := requireAdmin(ctx, s.permissions, userAdminMessage)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" {
		return nil, common.Validation("Name is required")
	}
	if email == "" {
		return nil, common.Validation("Email is required")
	}
	role := model.RoleStaff
	if input.Role != "" {
		if role, err = model.ParseRole(input.Role); err != nil {
			return nil, common.Validation("Invalid role")
		}
	}
	if err := security.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, s.tx.DB(), email, 0); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.Internal("[UserService] failed to hash password", err)
	}

	user, err := createUser(ctx, s.tx, s.userRepository, s.departmentRepository, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}, input.Department)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, session.UserID, model.ActionUserCreate, fmt.Sprintf("Created user: %s", user.Email))
	return user, nil
}

// UpdateProfile : the caller's own name, email and department
func (s *UserService) UpdateProfile(ctx context.Context, changes model.UserChanges) (*model.User, error) {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if changes.Role != nil {
		return nil, common.Forbidden("You cannot change your own role")
	}
	if changes.Empty() {
		return nil, common.Validation("No fields to update")
	}

	user, err := s.update(ctx, session.UserID, changes)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, session.UserID, model.ActionProfileUpdate, "Profile updated")
	return user, nil
}

// UpdateUser : admin edit; a role change revokes the user's sessions
func (s *UserService) UpdateUser(ctx context.Context, id int64, changes model.UserChanges) (*model.User, error) {
	session, err := requireAdmin(ctx, s.permissions, userAdminMessage)
	if err != nil {
		return nil, err
	}
	if changes.Empty() {
		return nil, common.Validation("No fields to update")
	}
	if changes.Role != nil && id == session.UserID && !changes.Role.IsAdmin() {
		return nil, common.Forbidden("You cannot remove your own admin role")
	}

	user, err := s.update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, session.UserID, model.ActionUserUpdate, fmt.Sprintf("Updated user: %s", user.Email))
	return user, nil
}

func (s *UserService) update(ctx context.Context, id int64, changes model.UserChanges) (*model.User, error) {
	exec, rollback, commit, err := s.tx.BeginTX(ctx)
	if err != nil {
		return nil, common.Internal("[UserService] failed to begin transaction", err)
	}
	defer func() { _ = rollback() }()

	user, err := s.userRepository.FindByID(ctx, exec, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFound(userNotFound)
	} else if err != nil {
		return nil, common.Internal("[UserService] failed to load user", err)
	}

	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if name == "" {
			return nil, common.Validation("Name cannot be empty")
		}
		user.Name = name
	}
	if changes.Email != nil {
		email := normalizeEmail(*changes.Email)
		if email == "" {
			return nil, common.Validation("Email cannot be empty")
		}
		if err := s.ensureEmailFree(ctx, exec, email, id); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if changes.Department != nil {
		if department := strings.TrimSpace(*changes.Department); department == "" {
			user.DepartmentID = nil
		} else {
			departmentID, err := s.departmentRepository.GetOrCreate(ctx, exec, department)
			if err != nil {
				return nil, common.Internal("[UserService] failed to resolve department", err)
			}
			user.DepartmentID = &departmentID
		}
	}

	err = s.userRepository.Update(ctx, exec, user)
	switch {
	case errors.Is(err, common.ErrDuplicate):
		return nil, common.Conflict(emailAlreadyInUse)
	case errors.Is(err, common.ErrNotFound):
		return nil, common.NotFound(userNotFound)
	case err != nil:
		return nil, common.Internal("[UserService] failed to update user", err)
	}

	if changes.Role != nil {
		if err := s.userRepository.UpdateRole(ctx, exec, id, *changes.Role); err != nil {
			return nil, common.Internal("[UserService] failed to update role", err)
		}
	}

	if err := commit(); err != nil {
		return nil, common.Internal("[UserService] failed to commit user", err)
	}
	return s.find(ctx, id)
}

// Delete : admins may delete anyone but themselves
func (s *UserService) Delete(ctx context.Context, id int64) error {
	session, err := requireAdmin(ctx, s.permissions, userAdminMessage)
	if err != nil {
		return err
	}
	if id == session.UserID {
		return common.Forbidden("You cannot delete your own account")
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	exec, rollback, commit, err := s.tx.BeginTX(ctx)
	if err != nil {
		return common.Internal("[UserService] failed to begin transaction", err)
	}
	defer func() { _ = rollback() }()

	if err := s.userRepository.ReleaseApprovals(ctx, exec, id); err != nil {
		return common.Internal("[UserService] failed to release approvals", err)
	}
	if err := s.userRepository.Delete(ctx, exec, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound(userNotFound)
		}
		return common.Internal("[UserService] failed to delete user", err)
	}
	if err := commit(); err != nil {
		return common.Internal("[UserService] failed to commit user deletion", err)
	}

	invalidateListings(ctx, s.cache, "[UserService]")
	s.activity.Record(ctx, session.UserID, model.ActionUserDelete, fmt.Sprintf("Deleted user: %s", user.Email))
	return nil
}

// SetProfileImage : stored as a square JPEG thumbnail
func (s *UserService) SetProfileImage(ctx context.Context, data []byte, mimeType string) error {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return common.Validation("No file provided")
	}
	if _, ok := avatarTypes[mimeType]; !ok {
		return common.Validation(avatarTypesMessage)
	}
	if len(data) > maxAvatarBytes {
		return common.Validation("File size exceeds the 10MB limit")
	}

	image, err := util.NormalizeAvatar(data)
	if err != nil {
		return common.Validation("File is not a valid image")
	}
	if err := s.userRepository.SetProfileImage(ctx, s.tx.DB(), session.UserID, image); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound(userNotFound)
		}
		return common.Internal("[UserService] failed to store profile image", err)
	}

	s.activity.Record(ctx, session.UserID, model.ActionProfileUpdate, "Profile image updated")
	return nil
}

func (s *UserService) ProfileImage(ctx context.Context, id int64) ([]byte, error) {
	if _, err := security.CurrentSession(ctx); err != nil {
		return nil, err
	}
	image, err := s.userRepository.ProfileImage(ctx, s.tx.DB(), id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFound("Profile image not found")
	} else if err != nil {
		return nil, common.Internal("[UserService] failed to load profile image", err)
	}
	return image, nil
}

func (s *UserService) find(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepository.FindByID(ctx, s.tx.DB(), id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFound(userNotFound)
	} else if err != nil {
		return nil, common.Internal("[UserService] failed to load user", err)
	}
	return user, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, exec sqlx.ExtContext, email string, excludeID int64) error {
	taken, err := s.userRepository.EmailTaken(ctx, exec, email, excludeID)
	if err != nil {
		return common.Internal("[UserService] failed to check email", err)
	}
	if taken {
		return common.Conflict(emailAlreadyInUse)
	}
	return nil
}
