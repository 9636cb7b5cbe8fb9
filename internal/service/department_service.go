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
)

type DepartmentService struct {
	tx                   ports.Transactor
	departmentRepository ports.DepartmentRepository
	permissions          ports.PermissionResolver
	activity             ports.ActivityRecorder
}

func NewDepartmentService(
	tx ports.Transactor,
	departmentRepository ports.DepartmentRepository,
	permissions ports.PermissionResolver,
	activity ports.ActivityRecorder,
) *DepartmentService {
	return &DepartmentService{
		tx:                   tx,
		departmentRepository: departmentRepository,
		permissions:          permissions,
		activity:             activity,
	}
}

func (s *DepartmentService) List(ctx context.Context) ([]model.Department, error) {
	if _, err := security.CurrentSession(ctx); err != nil {
		return nil, err
	}
	departments, err := s.departmentRepository.List(ctx, s.tx.DB())
	if err != nil {
		return nil, common.Internal("[DepartmentService] failed to list departments", err)
	}
	return departments, nil
}

func (s *DepartmentService) Create(ctx context.Context, name string) (*model.Department, error) {
	session, err := requireAdmin(ctx, s.permissions, "Only administrators can manage departments")
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.Validation("Department name is required")
	}

	exists, err := s.departmentRepository.ExistsFold(ctx, s.tx.DB(), name)
	if err != nil {
		return nil, common.Internal("[DepartmentService] failed to check department name", err)
	}
	if exists {
		return nil, common.Conflict("Department already exists")
	}

	department, err := s.departmentRepository.Create(ctx, s.tx.DB(), name)
	if errors.Is(err, common.ErrDuplicate) {
		return nil, common.Conflict("Department already exists")
	} else if err != nil {
		return nil, common.Internal("[DepartmentService] failed to create department", err)
	}

	s.activity.Record(ctx, session.UserID, model.ActionDepartmentCreate, fmt.Sprintf("Created department: %s", department.Name))
	return department, nil
}
