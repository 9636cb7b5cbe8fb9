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
	defaultPageSize = 20
	maxPageSize     = 100
)

type ActivityService struct {
	tx                 ports.Transactor
	activityRepository ports.ActivityRepository
}

func NewActivityService(tx ports.Transactor, activityRepository ports.ActivityRepository) *ActivityService {
	return &ActivityService{
		tx:                 tx,
		activityRepository: activityRepository,
	}
}

// Record : appended after the triggering operation committed and never rolled
// back with it. A failed write is logged and dropped.
func (s *ActivityService) Record(ctx context.Context, userID int64, action, details string) {
	entry := &model.ActivityLog{
		UserID:  &userID,
		Action:  action,
		Details: details,
	}
	if err := s.activityRepository.Append(ctx, s.tx.DB(), entry); err != nil {
		slog.WarnContext(ctx, "[ActivityService] failed to record activity",
			"user_id", userID, "action", action, "error", err)
	}
}

// Recent : newest first; users read their own log, admins anyone's
func (s *ActivityService) Recent(ctx context.Context, userID int64, limit int) ([]model.ActivityLog, error) {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID && !session.IsAdmin() {
		return nil, common.Forbidden("You can only view your own activity")
	}

	entries, err := s.activityRepository.RecentByUser(ctx, s.tx.DB(), userID, pageLimit(limit))
	if err != nil {
		return nil, common.Internal("[ActivityService] failed to load activity", err)
	}
	return entries, nil
}

func pageLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultPageSize
	case limit > maxPageSize:
		return maxPageSize
	default:
		return limit
	}
}

func pageOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
