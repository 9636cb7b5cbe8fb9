package service

import (
	"context"
	"log/slog"

	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/ports"
	"document-management-server/internal/security"
)

const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
)

type NotificationService struct {
	tx                     ports.Transactor
	notificationRepository ports.NotificationRepository
}

func NewNotificationService(tx ports.Transactor, notificationRepository ports.NotificationRepository) *NotificationService {
	return &NotificationService{
		tx:                     tx,
		notificationRepository: notificationRepository,
	}
}

// Notify : stores the notification; delivery beyond the inbox is a log line
func (s *NotificationService) Notify(ctx context.Context, userID int64, title, message, kind string, link *string) {
	notification := &model.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
		Link:    link,
	}
	if err := s.notificationRepository.Create(ctx, s.tx.DB(), notification); err != nil {
		slog.WarnContext(ctx, "[NotificationService] failed to create notification", "user_id", userID, "error", err)
		return
	}
	slog.InfoContext(ctx, "[NotificationService] notification delivered",
		"user_id", userID, "notification_id", notification.ID, "title", title)
}

func (s *NotificationService) List(ctx context.Context, limit int) ([]model.Notification, error) {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notificationRepository.ListByUser(ctx, s.tx.DB(), session.UserID, pageLimit(limit))
	if err != nil {
		return nil, common.Internal("[NotificationService] failed to list notifications", err)
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return 0, err
	}
	count, err := s.notificationRepository.CountUnread(ctx, s.tx.DB(), session.UserID)
	if err != nil {
		return 0, common.Internal("[NotificationService] failed to count notifications", err)
	}
	return count, nil
}

// MarkRead : another user's notification is reported as missing
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return err
	}
	ok, err := s.notificationRepository.MarkRead(ctx, s.tx.DB(), id, session.UserID)
	if err != nil {
		return common.Internal("[NotificationService] failed to mark notification", err)
	}
	if !ok {
		return common.NotFound("Notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if _, err := s.notificationRepository.MarkAllRead(ctx, s.tx.DB(), session.UserID); err != nil {
		return common.Internal("[NotificationService] failed to mark notifications", err)
	}
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return err
	}
	ok, err := s.notificationRepository.Delete(ctx, s.tx.DB(), id, session.UserID)
	if err != nil {
		return common.Internal("[NotificationService] failed to delete notification", err)
	}
	if !ok {
		return common.NotFound("Notification not found")
	}
	return nil
}
