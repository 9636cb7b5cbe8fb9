package service_test

import (
	"context"
	"errors"
	"testing"

	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/ports/portsmock"
	"document-management-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPermissionService_CheckDocumentPermission(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		uploadedBy int64
		role       model.Role
		want       model.DocumentPermission
	}{
		{name: "owner", userID: staffID, uploadedBy: staffID, role: model.RoleStaff, want: model.DocumentPermission{HasPermission: true, IsOwner: true}},
		{name: "admin", userID: adminID, uploadedBy: staffID, role: model.RoleAdmin, want: model.DocumentPermission{HasPermission: true, IsAdmin: true}},
		{name: "admin owner", userID: adminID, uploadedBy: adminID, role: model.RoleAdmin, want: model.DocumentPermission{HasPermission: true, IsOwner: true, IsAdmin: true}},
		{name: "other staff", userID: otherID, uploadedBy: staffID, role: model.RoleStaff, want: model.DocumentPermission{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, _ := newTransactor(t)
			repo := new(portsmock.PermissionRepository)
			repo.On("Resolve", mock.Anything, testExec, int64(5), tt.userID).Return(tt.uploadedBy, tt.role, nil)

			svc := service.NewPermissionService(tx, repo, new(portsmock.UserRepository))
			got, err := svc.CheckDocumentPermission(context.Background(), 5, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestPermissionService_MissingDocumentIsNotFound(t *testing.T) {
	tx, _ := newTransactor(t)
	repo := new(portsmock.PermissionRepository)
	repo.On("Resolve", mock.Anything, testExec, int64(5), staffID).Return(int64(0), model.Role(""), common.ErrNotFound)

	_, err := service.NewPermissionService(tx, repo, nil).CheckDocumentPermission(context.Background(), 5, staffID)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
}

func TestPermissionService_IsAdmin(t *testing.T) {
	tx, _ := newTransactor(t)
	users := new(portsmock.UserRepository)
	users.On("Role", mock.Anything, testExec, adminID).Return(model.RoleAdmin, nil)
	users.On("Role", mock.Anything, testExec, staffID).Return(model.RoleStaff, nil)
	users.On("Role", mock.Anything, testExec, int64(99)).Return(model.Role(""), common.ErrNotFound)
	users.On("Role", mock.Anything, testExec, int64(100)).Return(model.Role(""), errors.New("db down"))

	svc := service.NewPermissionService(tx, nil, users)

	isAdmin, err := svc.IsAdmin(context.Background(), adminID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = svc.IsAdmin(context.Background(), staffID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	isAdmin, err = svc.IsAdmin(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	_, err = svc.IsAdmin(context.Background(), 100)
	assert.Equal(t, common.KindInternal, common.KindOf(err))
}
