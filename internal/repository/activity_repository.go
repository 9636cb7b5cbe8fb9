package repository

import (
	"context"

	"document-management-server/config"
	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type ActivityRepository struct {
	*config.Database
}

func NewActivityRepository(database *config.Database) *ActivityRepository {
	return &ActivityRepository{database}
}

// Append : activity_logs is insert-only
func (r *ActivityRepository) Append(ctx context.Context, exec sqlx.ExtContext, entry *model.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (user_id, action, details)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := exec.QueryRowxContext(ctx, query, entry.UserID, entry.Action, entry.Details).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return translate("[ActivityRepo] append activity", err)
	}
	return nil
}

func (r *ActivityRepository) RecentByUser(ctx context.Context, exec sqlx.ExtContext, userID int64, limit int) ([]model.ActivityLog, error) {
	query := `
		SELECT id, user_id, action, details, created_at
		FROM activity_logs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	entries := []model.ActivityLog{}
	if err := sqlx.SelectContext(ctx, exec, &entries, query, userID, limit); err != nil {
		return nil, translate("[ActivityRepo] recent activity", err)
	}
	return entries, nil
}
