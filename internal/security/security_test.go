package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"document-management-server/config"
	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/ports/portsmock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestManager() *SessionManager {
	return NewSessionManager(config.SessionConfig{
		SecretKey:  "test-secret",
		TTL:        7 * 24 * time.Hour,
		CookieName: "session",
	}, false)
}

func TestSessionManager_CreateAndParse(t *testing.T) {
	manager := newTestManager()
	user := &model.User{ID: 7, Role: model.RoleAdmin, SessionEpoch: 3}

	token, expiresAt, err := manager.Create(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	session, ok := manager.Parse(token)
	require.True(t, ok)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, model.RoleAdmin, session.Role)
	assert.Equal(t, int64(3), session.Epoch)
	assert.True(t, session.IsAdmin())
}

func TestSessionManager_ParseRejectsBadTokens(t *testing.T) {
	manager := newTestManager()
	user := &model.User{ID: 7, Role: model.RoleStaff}

	token, _, err := manager.Create(user)
	require.NoError(t, err)

	other := NewSessionManager(config.SessionConfig{SecretKey: "another-secret", TTL: time.Hour, CookieName: "session"}, false)
	foreign, _, err := other.Create(user)
	require.NoError(t, err)

	expired := newTestManager()
	expired.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	stale, _, err := expired.Create(user)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 7,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    issuer,
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 7,
		Role:   "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    issuer,
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":          "",
		"garbage":        "not-a-token",
		"tampered":       token[:len(token)-2] + "xx",
		"wrong secret":   foreign,
		"expired":        stale,
		"none algorithm": unsigned,
		"unknown role":   badRole,
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			session, ok := manager.Parse(tok)
			assert.False(t, ok)
			assert.Nil(t, session)
		})
	}
}

func TestSessionManager_Cookies(t *testing.T) {
	manager := NewSessionManager(config.SessionConfig{SecretKey: "k", TTL: time.Hour, CookieName: "session"}, true)

	rec := httptest.NewRecorder()
	manager.SetCookie(rec, "tok", time.Now().Add(time.Hour))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	rec = httptest.NewRecorder()
	manager.ClearCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestSessionMiddleware(t *testing.T) {
	manager := newTestManager()
	exec := &sqlx.DB{}

	token, _, err := manager.Create(&model.User{ID: 5, Role: model.RoleStaff, SessionEpoch: 1})
	require.NoError(t, err)

	tests := []struct {
		name       string
		cookie     string
		user       *model.User
		lookupErr  error
		wantStatus int
		wantUser   int64
	}{
		{name: "valid session", cookie: token, user: &model.User{ID: 5, Role: model.RoleStaff, SessionEpoch: 1}, wantStatus: http.StatusOK, wantUser: 5},
		{name: "epoch bumped after password reset", cookie: token, user: &model.User{ID: 5, Role: model.RoleStaff, SessionEpoch: 2}, wantStatus: http.StatusUnauthorized},
		{name: "deleted user", cookie: token, lookupErr: common.ErrNotFound, wantStatus: http.StatusUnauthorized},
		{name: "no cookie", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(portsmock.UserRepository)
			tx := new(portsmock.Transactor)
			tx.On("DB").Return(exec).Maybe()
			if tt.cookie != "" {
				users.On("FindByID", mock.Anything, exec, int64(5)).Return(tt.user, tt.lookupErr)
			}

			var seen int64
			handler := SessionMiddleware(manager, users, tx)(RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				session, _ := SessionFromContext(r.Context())
				seen = session.UserID
				w.WriteHeader(http.StatusOK)
			})))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, seen)
			users.AssertExpectations(t)
		})
	}
}

func TestSessionMiddleware_UsesCurrentRole(t *testing.T) {
	manager := newTestManager()
	exec := &sqlx.DB{}
	token, _, err := manager.Create(&model.User{ID: 5, Role: model.RoleAdmin})
	require.NoError(t, err)

	users := new(portsmock.UserRepository)
	tx := new(portsmock.Transactor)
	tx.On("DB").Return(exec)
	users.On("FindByID", mock.Anything, exec, int64(5)).Return(&model.User{ID: 5, Role: model.RoleStaff}, nil)

	var role model.Role
	handler := SessionMiddleware(manager, users, tx)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := SessionFromContext(r.Context())
		role = session.Role
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, model.RoleStaff, role)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))

	assert.NoError(t, ValidatePassword("abcdefg1"))
	for _, bad := range []string{"short1", "allletters", "12345678"} {
		err := ValidatePassword(bad)
		assert.Equal(t, common.KindValidation, common.KindOf(err), bad)
	}
}
