package service_test

import (
	"context"
	"testing"

	"document-management-server/internal/model"
	"document-management-server/internal/ports/portsmock"
	"document-management-server/internal/security"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

const (
	adminID int64 = 1
	staffID int64 = 2
	otherID int64 = 3
)

var testExec sqlx.ExtContext = &sqlx.DB{}

// txRecorder counts transaction outcomes handed out by the mocked transactor.
type txRecorder struct {
	commits   int
	rollbacks int
}

func newTransactor(t *testing.T) (*portsmock.Transactor, *txRecorder) {
	t.Helper()
	rec := &txRecorder{}
	tx := new(portsmock.Transactor)
	tx.On("DB").Return(testExec).Maybe()
	tx.On("BeginTX", mock.Anything).Return(
		testExec,
		func() error { rec.rollbacks++; return nil },
		func() error { rec.commits++; return nil },
		nil,
	).Maybe()
	return tx, rec
}

func sessionContext(userID int64, role model.Role) context.Context {
	return security.WithSession(context.Background(), &model.Session{UserID: userID, Role: role})
}

func adminContext() context.Context { return sessionContext(adminID, model.RoleAdmin) }

func staffContext() context.Context { return sessionContext(staffID, model.RoleStaff) }

// permissionsFor answers IsAdmin from a fixed role table.
func permissionsFor(roles map[int64]model.Role) *portsmock.PermissionResolver {
	p := new(portsmock.PermissionResolver)
	for id, role := range roles {
		p.On("IsAdmin", mock.Anything, id).Return(role.IsAdmin(), nil).Maybe()
	}
	return p
}

func defaultPermissions() *portsmock.PermissionResolver {
	return permissionsFor(map[int64]model.Role{
		adminID: model.RoleAdmin,
		staffID: model.RoleStaff,
		otherID: model.RoleStaff,
	})
}

func quietActivity() *portsmock.ActivityRecorder {
	a := new(portsmock.ActivityRecorder)
	a.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	return a
}
