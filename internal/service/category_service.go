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

	"github.com/jmoiron/sqlx"
)

const categoryAdminMessage = "Only administrators can manage categories"

type CategoryService struct {
	tx                 ports.Transactor
	categoryRepository ports.CategoryRepository
	permissions        ports.PermissionResolver
	activity           ports.ActivityRecorder
	cache              ports.ListCache
}

// CategoryServiceOption plugs in optional infrastructure.
type CategoryServiceOption func(*CategoryService)

// WithCategoryListCache drops cached document listings after a rename, since
// listings carry the category name.
func WithCategoryListCache(cache ports.ListCache) CategoryServiceOption {
	return func(s *CategoryService) { s.cache = cache }
}

func NewCategoryService(
	tx ports.Transactor,
	categoryRepository ports.CategoryRepository,
	permissions ports.PermissionResolver,
	activity ports.ActivityRecorder,
	opts ...CategoryServiceOption,
) *CategoryService {
	s := &CategoryService{
		tx:                 tx,
		categoryRepository: categoryRepository,
		permissions:        permissions,
		activity:           activity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreate : maps a free-text name to a category id. A blank name means
// no category.
func (s *CategoryService) GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string, creatorID int64) (*int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	id, err := s.categoryRepository.GetOrCreate(ctx, exec, name, creatorID)
	if err != nil {
		return nil, common.Internal("[CategoryService] failed to resolve category", err)
	}
	return &id, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	if _, err := security.CurrentSession(ctx); err != nil {
		return nil, err
	}
	categories, err := s.categoryRepository.List(ctx, s.tx.DB())
	if err != nil {
		return nil, common.Internal("[CategoryService] failed to list categories", err)
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, name string, description *string) (*model.Category, error) {
	session, err := requireAdmin(ctx, s.permissions, categoryAdminMessage)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.Validation("Category name is required")
	}
	if err := s.ensureUniqueName(ctx, name, 0); err != nil {
		return nil, err
	}

	created, err := s.categoryRepository.Create(ctx, s.tx.DB(), &model.Category{
		Name:        name,
		Description: description,
		CreatedBy:   &session.UserID,
	})
	if errors.Is(err, common.ErrDuplicate) {
		return nil, common.Conflict("Category already exists")
	} else if err != nil {
		return nil, common.Internal("[CategoryService] failed to create category", err)
	}

	s.activity.Record(ctx, session.UserID, model.ActionCategoryCreate, fmt.Sprintf("Created category: %s", created.Name))
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, name *string, description *string) (*model.Category, error) {
	session, err := requireAdmin(ctx, s.permissions, categoryAdminMessage)
	if err != nil {
		return nil, err
	}
	if name == nil && description == nil {
		return nil, common.Validation("No fields to update")
	}

	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, common.Validation("Category name is required")
		}
		if err := s.ensureUniqueName(ctx, trimmed, id); err != nil {
			return nil, err
		}
		category.Name = trimmed
	}
	if description != nil {
		category.Description = description
	}

	err = s.categoryRepository.Update(ctx, s.tx.DB(), category)
	switch {
	case errors.Is(err, common.ErrNotFound):
		return nil, common.NotFound("Category not found")
	case errors.Is(err, common.ErrDuplicate):
		return nil, common.Conflict("Category already exists")
	case err != nil:
		return nil, common.Internal("[CategoryService] failed to update category", err)
	}

	if name != nil {
		invalidateListings(ctx, s.cache, "[CategoryService]")
	}
	s.activity.Record(ctx, session.UserID, model.ActionCategoryUpdate, fmt.Sprintf("Updated category: %s", category.Name))
	return category, nil
}

// Delete : refused while any document still references the category
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	session, err := requireAdmin(ctx, s.permissions, categoryAdminMessage)
	if err != nil {
		return err
	}

	category, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.categoryRepository.CountDocuments(ctx, s.tx.DB(), id)
	if err != nil {
		return common.Internal("[CategoryService] failed to count documents", err)
	}
	if count > 0 {
		return common.Conflict("Cannot delete category with associated documents")
	}

	err = s.categoryRepository.Delete(ctx, s.tx.DB(), id)
	switch {
	case errors.Is(err, common.ErrReferenced):
		return common.Conflict("Cannot delete category with associated documents")
	case errors.Is(err, common.ErrNotFound):
		return common.NotFound("Category not found")
	case err != nil:
		return common.Internal("[CategoryService] failed to delete category", err)
	}

	s.activity.Record(ctx, session.UserID, model.ActionCategoryDelete, fmt.Sprintf("Deleted category: %s", category.Name))
	return nil
}

func (s *CategoryService) find(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepository.FindByID(ctx, s.tx.DB(), id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFound("Category not found")
	} else if err != nil {
		return nil, common.Internal("[CategoryService] failed to load category", err)
	}
	return category, nil
}

func (s *CategoryService) ensureUniqueName(ctx context.Context, name string, excludeID int64) error {
	exists, err := s.categoryRepository.ExistsFold(ctx, s.tx.DB(), name, excludeID)
	if err != nil {
		return common.Internal("[CategoryService] failed to check category name", err)
	}
	if exists {
		return common.Conflict("Category already exists")
	}
	return nil
}
