package security

import (
	"fmt"
	"net/http"
	"time"

	"document-management-server/config"
	"document-management-server/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "document-management-server"

type Claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	Epoch  int64  `json:"epoch"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies the signed session cookie.
type SessionManager struct {
	secretKey  []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewSessionManager(cfg config.SessionConfig, secure bool) *SessionManager {
	return &SessionManager{
		secretKey:  []byte(cfg.SecretKey),
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
		secure:     secure,
		now:        time.Now,
	}
}

// Create : signs a token binding the user, role and current session epoch
func (m *SessionManager) Create(user *model.User) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)
	claims := Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		Epoch:  user.SessionEpoch,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Issuer:    issuer,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// Parse : any failure (signature, algorithm, expiry, payload) yields no session
func (m *SessionManager) Parse(token string) (*model.Session, bool) {
	if token == "" {
		return nil, false
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, false
	}

	role, err := model.ParseRole(claims.Role)
	if err != nil || claims.UserID <= 0 {
		return nil, false
	}

	return &model.Session{
		UserID:    claims.UserID,
		Role:      role,
		Epoch:     claims.Epoch,
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}

func (m *SessionManager) SetCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionManager) tokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
