package service_test

import (
	"context"
	"testing"

	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/ports/portsmock"
	"document-management-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCategoryService(t *testing.T) (*service.CategoryService, *portsmock.CategoryRepository) {
	tx, _ := newTransactor(t)
	repo := new(portsmock.CategoryRepository)
	return service.NewCategoryService(tx, repo, defaultPermissions(), quietActivity()), repo
}

func TestCategoryService_GetOrCreate(t *testing.T) {
	svc, repo := newCategoryService(t)
	repo.On("GetOrCreate", mock.Anything, testExec, "Finance", staffID).Return(int64(7), nil)

	first, err := svc.GetOrCreate(context.Background(), testExec, " Finance ", staffID)
	require.NoError(t, err)
	second, err := svc.GetOrCreate(context.Background(), testExec, "Finance", staffID)
	require.NoError(t, err)
	assert.Equal(t, *first, *second)

	none, err := svc.GetOrCreate(context.Background(), testExec, "   ", staffID)
	require.NoError(t, err)
	assert.Nil(t, none)
	repo.AssertNumberOfCalls(t, "GetOrCreate", 2)
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("in use", func(t *testing.T) {
		svc, repo := newCategoryService(t)
		repo.On("FindByID", mock.Anything, testExec, int64(3)).Return(&model.Category{ID: 3, Name: "Finance"}, nil)
		repo.On("CountDocuments", mock.Anything, testExec, int64(3)).Return(1, nil)

		err := svc.Delete(adminContext(), 3)
		assert.Equal(t, common.KindConflict, common.KindOf(err))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unused", func(t *testing.T) {
		svc, repo := newCategoryService(t)
		repo.On("FindByID", mock.Anything, testExec, int64(3)).Return(&model.Category{ID: 3, Name: "Finance"}, nil)
		repo.On("CountDocuments", mock.Anything, testExec, int64(3)).Return(0, nil)
		repo.On("Delete", mock.Anything, testExec, int64(3)).Return(nil)

		require.NoError(t, svc.Delete(adminContext(), 3))
		repo.AssertExpectations(t)
	})

	t.Run("document added concurrently", func(t *testing.T) {
		svc, repo := newCategoryService(t)
		repo.On("FindByID", mock.Anything, testExec, int64(3)).Return(&model.Category{ID: 3}, nil)
		repo.On("CountDocuments", mock.Anything, testExec, int64(3)).Return(0, nil)
		repo.On("Delete", mock.Anything, testExec, int64(3)).Return(common.ErrReferenced)

		err := svc.Delete(adminContext(), 3)
		assert.Equal(t, common.KindConflict, common.KindOf(err))
	})

	t.Run("staff", func(t *testing.T) {
		svc, _ := newCategoryService(t)
		err := svc.Delete(staffContext(), 3)
		assert.Equal(t, common.KindForbidden, common.KindOf(err))
	})
}

func TestCategoryService_Create_CaseInsensitiveConflict(t *testing.T) {
	svc, repo := newCategoryService(t)
	repo.On("ExistsFold", mock.Anything, testExec, "finance", int64(0)).Return(true, nil)

	_, err := svc.Create(adminContext(), "finance", nil)
	assert.Equal(t, common.KindConflict, common.KindOf(err))
	assert.Equal(t, "Category already exists", common.PublicMessage(err))
}

func TestCategoryService_Update(t *testing.T) {
	svc, repo := newCategoryService(t)
	name := "Legal"
	repo.On("FindByID", mock.Anything, testExec, int64(3)).Return(&model.Category{ID: 3, Name: "Finance"}, nil)
	repo.On("ExistsFold", mock.Anything, testExec, "Legal", int64(3)).Return(false, nil)
	repo.On("Update", mock.Anything, testExec, mock.MatchedBy(func(c *model.Category) bool { return c.Name == "Legal" })).Return(nil)

	category, err := svc.Update(adminContext(), 3, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Legal", category.Name)

	_, err = svc.Update(adminContext(), 3, nil, nil)
	assert.Equal(t, common.KindValidation, common.KindOf(err))
}

func TestCategoryService_Update_InvalidatesListingsOnRename(t *testing.T) {
	tx, _ := newTransactor(t)
	repo := new(portsmock.CategoryRepository)
	cache := new(portsmock.ListCache)
	svc := service.NewCategoryService(tx, repo, defaultPermissions(), quietActivity(), service.WithCategoryListCache(cache))

	name := "Legal"
	description := "Contracts"
	repo.On("FindByID", mock.Anything, testExec, int64(3)).Return(&model.Category{ID: 3, Name: "Finance"}, nil)
	repo.On("ExistsFold", mock.Anything, testExec, "Legal", int64(3)).Return(false, nil)
	repo.On("Update", mock.Anything, testExec, mock.Anything).Return(nil)
	cache.On("Invalidate", mock.Anything).Return(nil).Once()

	_, err := svc.Update(adminContext(), 3, &name, nil)
	require.NoError(t, err)
	_, err = svc.Update(adminContext(), 3, nil, &description)
	require.NoError(t, err)

	cache.AssertExpectations(t)
	cache.AssertNumberOfCalls(t, "Invalidate", 1)
}

func TestDepartmentService_Create(t *testing.T) {
	tx, _ := newTransactor(t)
	repo := new(portsmock.DepartmentRepository)
	repo.On("ExistsFold", mock.Anything, testExec, "legal").Return(true, nil)
	repo.On("ExistsFold", mock.Anything, testExec, "Audit").Return(false, nil)
	repo.On("Create", mock.Anything, testExec, "Audit").Return(&model.Department{ID: 4, Name: "Audit"}, nil)

	svc := service.NewDepartmentService(tx, repo, defaultPermissions(), quietActivity())

	_, err := svc.Create(adminContext(), "legal")
	assert.Equal(t, common.KindConflict, common.KindOf(err))

	department, err := svc.Create(adminContext(), " Audit ")
	require.NoError(t, err)
	assert.Equal(t, int64(4), department.ID)

	_, err = svc.Create(staffContext(), "Audit")
	assert.Equal(t, common.KindForbidden, common.KindOf(err))

	_, err = svc.Create(adminContext(), "  ")
	assert.Equal(t, common.KindValidation, common.KindOf(err))
}
