package service

import (
	"context"
	"errors"

	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/ports"
	"document-management-server/internal/security"
)

type PermissionService struct {
	tx                   ports.Transactor
	permissionRepository ports.PermissionRepository
	userRepository       ports.UserRepository
}

func NewPermissionService(tx ports.Transactor, permissionRepository ports.PermissionRepository, userRepository ports.UserRepository) *PermissionService {
	return &PermissionService{
		tx:                   tx,
		permissionRepository: permissionRepository,
		userRepository:       userRepository,
	}
}

// CheckDocumentPermission : owner or admin may modify. A missing document is
// NotFound, never a denial.
func (s *PermissionService) CheckDocumentPermission(ctx context.Context, documentID, userID int64) (*model.DocumentPermission, error) {
	uploadedBy, role, err := s.permissionRepository.Resolve(ctx, s.tx.DB(), documentID, userID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFound("Document not found")
	} else if err != nil {
		return nil, common.Internal("[PermissionService] failed to resolve permission", err)
	}

	isOwner := uploadedBy == userID
	isAdmin := role.IsAdmin()
	return &model.DocumentPermission{
		HasPermission: isOwner || isAdmin,
		IsOwner:       isOwner,
		IsAdmin:       isAdmin,
	}, nil
}

// IsAdmin : an unknown user is not an admin
func (s *PermissionService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	role, err := s.userRepository.Role(ctx, s.tx.DB(), userID)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, common.Internal("[PermissionService] failed to look up role", err)
	}
	return role.IsAdmin(), nil
}

// requireAdmin gates admin-only operations on a fresh role lookup.
func requireAdmin(ctx context.Context, permissions ports.PermissionResolver, message string) (*model.Session, error) {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	isAdmin, err := permissions.IsAdmin(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, common.Forbidden(message)
	}
	return session, nil
}
