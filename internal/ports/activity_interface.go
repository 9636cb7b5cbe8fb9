package ports

import (
	"context"

	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type ActivityRepository interface {
	Append(ctx context.Context, exec sqlx.ExtContext, entry *model.ActivityLog) error
	RecentByUser(ctx context.Context, exec sqlx.ExtContext, userID int64, limit int) ([]model.ActivityLog, error)
}

// ActivityRecorder appends audit entries after a successful operation.
// Failures are logged by the implementation and never returned.
type ActivityRecorder interface {
	Record(ctx context.Context, userID int64, action, details string)
}

type ActivityService interface {
	ActivityRecorder
	Recent(ctx context.Context, userID int64, limit int) ([]model.ActivityLog, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, notification *model.Notification) error
	ListByUser(ctx context.Context, exec sqlx.ExtContext, userID int64, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context, exec sqlx.ExtContext, userID int64) (int, error)
	MarkRead(ctx context.Context, exec sqlx.ExtContext, id, userID int64) (bool, error)
	MarkAllRead(ctx context.Context, exec sqlx.ExtContext, userID int64) (int64, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, id, userID int64) (bool, error)
}

// Notifier creates a notification for a user. Failures are logged, not returned.
type Notifier interface {
	Notify(ctx context.Context, userID int64, title, message, kind string, link *string)
}

type NotificationService interface {
	Notifier
	List(ctx context.Context, limit int) ([]model.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id int64) error
}
