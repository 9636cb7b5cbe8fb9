package service

import (
	"context"
	"log/slog"
	"time"

	"document-management-server/internal/model"
)

// LogDelivery stands in for e-mail: reset secrets are written to the log, and
// only outside production.
type LogDelivery struct {
	production bool
}

func NewLogDelivery(production bool) *LogDelivery {
	return &LogDelivery{production: production}
}

func (d *LogDelivery) DeliverResetToken(ctx context.Context, user *model.User, secret string, expiresAt time.Time) error {
	if d.production {
		slog.InfoContext(ctx, "password reset requested", "user_id", user.ID, "expires_at", expiresAt)
		return nil
	}
	slog.InfoContext(ctx, "password reset requested",
		"user_id", user.ID, "email", user.Email, "token", secret, "expires_at", expiresAt)
	return nil
}
