package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/ports/portsmock"
	"document-management-server/internal/security"
	"document-management-server/internal/service"
	"document-management-server/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	tx          *portsmock.Transactor
	txRec       *txRecorder
	users       *portsmock.UserRepository
	departments *portsmock.DepartmentRepository
	tokens      *portsmock.ResetTokenRepository
	sessions    *portsmock.SessionIssuer
	delivery    *portsmock.ResetDelivery
	activity    *portsmock.ActivityRecorder
}

func newAuthFixture(t *testing.T) *authFixture {
	tx, rec := newTransactor(t)
	return &authFixture{
		tx:          tx,
		txRec:       rec,
		users:       new(portsmock.UserRepository),
		departments: new(portsmock.DepartmentRepository),
		tokens:      new(portsmock.ResetTokenRepository),
		sessions:    new(portsmock.SessionIssuer),
		delivery:    new(portsmock.ResetDelivery),
		activity:    quietActivity(),
	}
}

func (f *authFixture) service() *service.AuthenticationService {
	return service.NewAuthenticationService(f.tx, f.users, f.departments, f.tokens, f.sessions, f.delivery, f.activity, time.Hour)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestAuthenticationService_Login(t *testing.T) {
	hash := hashed(t, "secret123")

	t.Run("valid credentials", func(t *testing.T) {
		f := newAuthFixture(t)
		user := &model.User{ID: staffID, Email: "sam@example.com", PasswordHash: hash, Role: model.RoleStaff}
		expires := time.Now().Add(time.Hour)
		f.users.On("FindByEmail", mock.Anything, testExec, "sam@example.com").Return(user, nil)
		f.sessions.On("Create", user).Return("signed", expires, nil)

		result, err := f.service().Login(context.Background(), " Sam@Example.com ", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "signed", result.Token)
		assert.Equal(t, expires, result.ExpiresAt)
		assert.Same(t, user, result.User)
	})

	t.Run("unknown email and wrong password look the same", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByEmail", mock.Anything, testExec, "ghost@example.com").Return(nil, common.ErrNotFound)
		f.users.On("FindByEmail", mock.Anything, testExec, "sam@example.com").
			Return(&model.User{ID: staffID, PasswordHash: hash}, nil)

		_, unknownErr := f.service().Login(context.Background(), "ghost@example.com", "secret123")
		_, wrongErr := f.service().Login(context.Background(), "sam@example.com", "wrong-pass1")

		assert.Equal(t, common.KindUnauthorized, common.KindOf(unknownErr))
		assert.Equal(t, common.PublicMessage(unknownErr), common.PublicMessage(wrongErr))
		assert.Equal(t, "Invalid email or password", common.PublicMessage(wrongErr))
		f.sessions.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestAuthenticationService_Register(t *testing.T) {
	t.Run("duplicate email", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("EmailTaken", mock.Anything, testExec, "sam@example.com", int64(0)).Return(true, nil)

		_, err := f.service().Register(context.Background(), model.RegisterInput{
			Name: "Sam", Email: "sam@example.com", Password: "secret123",
		})
		assert.Equal(t, common.KindConflict, common.KindOf(err))
		assert.Equal(t, "Email already registered", common.PublicMessage(err))
	})

	t.Run("weak password", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.service().Register(context.Background(), model.RegisterInput{
			Name: "Sam", Email: "sam@example.com", Password: "short",
		})
		assert.Equal(t, common.KindValidation, common.KindOf(err))
	})

	t.Run("creates staff with department", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("EmailTaken", mock.Anything, testExec, "sam@example.com", int64(0)).Return(false, nil)
		f.departments.On("GetOrCreate", mock.Anything, testExec, "Finance").Return(int64(4), nil)
		f.users.On("Create", mock.Anything, testExec, mock.MatchedBy(func(u *model.User) bool {
			return u.Role == model.RoleStaff && *u.DepartmentID == 4 &&
				security.CheckPassword(u.PasswordHash, "secret123")
		})).Return(&model.User{ID: 10, Email: "sam@example.com", Role: model.RoleStaff}, nil)
		f.sessions.On("Create", mock.Anything).Return("signed", time.Now(), nil)

		result, err := f.service().Register(context.Background(), model.RegisterInput{
			Name: "Sam", Email: "sam@example.com", Password: "secret123", Department: " Finance ",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(10), result.User.ID)
		assert.Equal(t, 1, f.txRec.commits)
	})
}

func TestAuthenticationService_ForgotPassword(t *testing.T) {
	t.Run("unknown email succeeds silently", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByEmail", mock.Anything, testExec, "ghost@example.com").Return(nil, common.ErrNotFound)

		err := f.service().ForgotPassword(context.Background(), "ghost@example.com")
		assert.NoError(t, err)
		f.tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		f.delivery.AssertNotCalled(t, "DeliverResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("known email replaces earlier tokens and stores only the hash", func(t *testing.T) {
		f := newAuthFixture(t)
		user := &model.User{ID: staffID, Email: "sam@example.com"}
		var stored *model.PasswordResetToken
		var secret string

		f.users.On("FindByEmail", mock.Anything, testExec, "sam@example.com").Return(user, nil)
		f.tokens.On("Create", mock.Anything, testExec, mock.AnythingOfType("*model.PasswordResetToken")).
			Run(func(args mock.Arguments) { stored = args.Get(2).(*model.PasswordResetToken) }).
			Return(nil)
		f.delivery.On("DeliverResetToken", mock.Anything, user, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Run(func(args mock.Arguments) { secret = args.String(2) }).
			Return(nil)

		require.NoError(t, f.service().ForgotPassword(context.Background(), "sam@example.com"))

		require.NotNil(t, stored)
		assert.Len(t, secret, 64)
		assert.NotEqual(t, secret, stored.TokenHash)
		assert.Equal(t, util.HashSecret(secret), stored.TokenHash)
		assert.WithinDuration(t, time.Now().Add(time.Hour), stored.ExpiresAt, time.Minute)
		assert.Equal(t, staffID, stored.UserID)
		f.tokens.AssertExpectations(t)
	})

	t.Run("delivery failure keeps the same response", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByEmail", mock.Anything, testExec, "sam@example.com").Return(&model.User{ID: staffID}, nil)
		f.tokens.On("Create", mock.Anything, testExec, mock.Anything).Return(nil)
		f.delivery.On("DeliverResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		assert.NoError(t, f.service().ForgotPassword(context.Background(), "sam@example.com"))
	})
}

func TestAuthenticationService_ResetPassword(t *testing.T) {
	const secret = "0f1e2d3c4b5a69788796a5b4c3d2e1f00f1e2d3c4b5a69788796a5b4c3d2e1f0"
	hash := util.HashSecret(secret)

	validToken := func() *model.PasswordResetToken {
		return &model.PasswordResetToken{ID: 8, UserID: staffID, TokenHash: hash, ExpiresAt: time.Now().Add(30 * time.Minute)}
	}

	t.Run("success consumes the token and bumps the session epoch", func(t *testing.T) {
		f := newAuthFixture(t)
		f.tokens.On("FindByHash", mock.Anything, testExec, hash).Return(validToken(), nil)
		f.tokens.On("MarkUsed", mock.Anything, testExec, int64(8)).Return(true, nil)
		f.users.On("UpdatePassword", mock.Anything, testExec, staffID, mock.AnythingOfType("string")).Return(int64(2), nil)

		require.NoError(t, f.service().ResetPassword(context.Background(), secret, "newpass123"))
		assert.Equal(t, 1, f.txRec.commits)
		f.users.AssertExpectations(t)
	})

	t.Run("second attempt is already used", func(t *testing.T) {
		f := newAuthFixture(t)
		used := validToken()
		used.Used = true
		f.tokens.On("FindByHash", mock.Anything, testExec, hash).Return(used, nil)

		err := f.service().ResetPassword(context.Background(), secret, "newpass123")
		assert.Equal(t, "Reset token has already been used", common.PublicMessage(err))
		f.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost race on consumption", func(t *testing.T) {
		f := newAuthFixture(t)
		f.tokens.On("FindByHash", mock.Anything, testExec, hash).Return(validToken(), nil)
		f.tokens.On("MarkUsed", mock.Anything, testExec, int64(8)).Return(false, nil)

		err := f.service().ResetPassword(context.Background(), secret, "newpass123")
		assert.Equal(t, "Reset token has already been used", common.PublicMessage(err))
		assert.Equal(t, 0, f.txRec.commits)
	})

	t.Run("expired", func(t *testing.T) {
		f := newAuthFixture(t)
		expired := validToken()
		expired.ExpiresAt = time.Now().Add(-time.Second)
		f.tokens.On("FindByHash", mock.Anything, testExec, hash).Return(expired, nil)

		err := f.service().ResetPassword(context.Background(), secret, "newpass123")
		assert.Equal(t, common.KindValidation, common.KindOf(err))
		assert.Equal(t, "Reset token has expired", common.PublicMessage(err))
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.tokens.On("FindByHash", mock.Anything, testExec, hash).Return(nil, common.ErrNotFound)

		err := f.service().ValidateResetToken(context.Background(), secret)
		assert.Equal(t, common.KindNotFound, common.KindOf(err))
		assert.Equal(t, "Invalid reset token", common.PublicMessage(err))
	})
}

func TestAuthenticationService_ChangePassword(t *testing.T) {
	hash := hashed(t, "secret123")

	t.Run("wrong current password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByID", mock.Anything, testExec, staffID).Return(&model.User{ID: staffID, PasswordHash: hash}, nil)

		_, err := f.service().ChangePassword(staffContext(), "nope12345", "newpass123")
		assert.Equal(t, common.KindValidation, common.KindOf(err))
	})

	t.Run("new session carries the new epoch", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByID", mock.Anything, testExec, staffID).Return(&model.User{ID: staffID, PasswordHash: hash, SessionEpoch: 1}, nil)
		f.users.On("UpdatePassword", mock.Anything, testExec, staffID, mock.AnythingOfType("string")).Return(int64(2), nil)
		f.sessions.On("Create", mock.MatchedBy(func(u *model.User) bool { return u.SessionEpoch == 2 })).
			Return("fresh", time.Now(), nil)

		result, err := f.service().ChangePassword(staffContext(), "secret123", "newpass123")
		require.NoError(t, err)
		assert.Equal(t, "fresh", result.Token)
	})
}
