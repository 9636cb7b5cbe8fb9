package service_test

import (
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

func TestActivityService_RecordSwallowsFailures(t *testing.T) {
	tx, _ := newTransactor(t)
	repo := new(portsmock.ActivityRepository)
	repo.On("Append", mock.Anything, testExec, mock.MatchedBy(func(e *model.ActivityLog) bool {
		return *e.UserID == staffID && e.Action == model.ActionDocumentUpload
	})).Return(errors.New("disk full"))

	svc := service.NewActivityService(tx, repo)
	assert.NotPanics(t, func() {
		svc.Record(staffContext(), staffID, model.ActionDocumentUpload, "Uploaded document: Q1 Report")
	})
	repo.AssertExpectations(t)
}

func TestActivityService_Recent(t *testing.T) {
	tx, _ := newTransactor(t)
	repo := new(portsmock.ActivityRepository)
	repo.On("RecentByUser", mock.Anything, testExec, staffID, 20).Return([]model.ActivityLog{{ID: 1}}, nil)

	svc := service.NewActivityService(tx, repo)

	entries, err := svc.Recent(staffContext(), staffID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = svc.Recent(staffContext(), otherID, 10)
	assert.Equal(t, common.KindForbidden, common.KindOf(err))

	entries, err = svc.Recent(adminContext(), staffID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNotificationService_ScopedToRecipient(t *testing.T) {
	tx, _ := newTransactor(t)
	repo := new(portsmock.NotificationRepository)
	repo.On("MarkRead", mock.Anything, testExec, int64(4), staffID).Return(false, nil)
	repo.On("Delete", mock.Anything, testExec, int64(4), staffID).Return(true, nil)

	svc := service.NewNotificationService(tx, repo)

	err := svc.MarkRead(staffContext(), 4)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
	assert.NoError(t, svc.Delete(staffContext(), 4))
}

func TestNotificationService_Notify(t *testing.T) {
	tx, _ := newTransactor(t)
	repo := new(portsmock.NotificationRepository)
	link := "/documents/5"
	repo.On("Create", mock.Anything, testExec, mock.MatchedBy(func(n *model.Notification) bool {
		return n.UserID == staffID && n.Type == service.NotificationSuccess && n.Link != nil && *n.Link == link
	})).Return(nil)

	service.NewNotificationService(tx, repo).Notify(adminContext(), staffID, "Document approved", "ok", service.NotificationSuccess, &link)
	repo.AssertExpectations(t)
}
