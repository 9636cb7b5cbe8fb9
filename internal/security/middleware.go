package security

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/ports"
	"document-management-server/internal/util"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionMiddleware attaches the verified session to the request context. A
// token whose epoch no longer matches the user's is treated as absent.
func SessionMiddleware(manager *SessionManager, users ports.UserRepository, tx ports.Transactor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := manager.Parse(manager.tokenFromRequest(r))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindByID(r.Context(), tx.DB(), session.UserID)
			switch {
			case errors.Is(err, common.ErrNotFound):
				next.ServeHTTP(w, r)
				return
			case err != nil:
				slog.ErrorContext(r.Context(), "session lookup failed", "user_id", session.UserID, "error", err)
				util.WriteError(w, r, common.Internal("session lookup failed", err))
				return
			}
			if user.SessionEpoch != session.Epoch {
				next.ServeHTTP(w, r)
				return
			}

			session.Role = user.Role
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RequireSession answers 401 when no session is attached.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			util.HandleError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

func SessionFromContext(ctx context.Context) (*model.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*model.Session)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}

// CurrentSession is SessionFromContext for services: no session is Unauthorized.
func CurrentSession(ctx context.Context) (*model.Session, error) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return nil, common.Unauthorized("Unauthorized")
	}
	return session, nil
}
