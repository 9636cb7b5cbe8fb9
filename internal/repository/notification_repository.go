package repository

import (
	"context"

	"document-management-server/config"
	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type NotificationRepository struct {
	*config.Database
}

func NewNotificationRepository(database *config.Database) *NotificationRepository {
	return &NotificationRepository{database}
}

func (r *NotificationRepository) Create(ctx context.Context, exec sqlx.ExtContext, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, type, link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, read, created_at
	`
	err := exec.QueryRowxContext(ctx, query,
		notification.UserID, notification.Title, notification.Message, notification.Type, notification.Link).
		Scan(&notification.ID, &notification.Read, &notification.CreatedAt)
	if err != nil {
		return translate("[NotificationRepo] insert notification", err)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, exec sqlx.ExtContext, userID int64, limit int) ([]model.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, read, link, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	notifications := []model.Notification{}
	if err := sqlx.SelectContext(ctx, exec, &notifications, query, userID, limit); err != nil {
		return nil, translate("[NotificationRepo] list notifications", err)
	}
	return notifications, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, exec sqlx.ExtContext, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`
	if err := sqlx.GetContext(ctx, exec, &count, query, userID); err != nil {
		return 0, translate("[NotificationRepo] count unread", err)
	}
	return count, nil
}

// MarkRead : scoped to the recipient; false when no such notification is theirs
func (r *NotificationRepository) MarkRead(ctx context.Context, exec sqlx.ExtContext, id, userID int64) (bool, error) {
	res, err := exec.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, translate("[NotificationRepo] mark read", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, translate("[NotificationRepo] mark read", err)
	}
	return n > 0, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, exec sqlx.ExtContext, userID int64) (int64, error) {
	res, err := exec.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	if err != nil {
		return 0, translate("[NotificationRepo] mark all read", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, translate("[NotificationRepo] mark all read", err)
	}
	return n, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id, userID int64) (bool, error) {
	res, err := exec.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, translate("[NotificationRepo] delete notification", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, translate("[NotificationRepo] delete notification", err)
	}
	return n > 0, nil
}
