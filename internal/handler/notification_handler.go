package handler

import (
	"net/http"

	"document-management-server/internal/model"
	"document-management-server/internal/model/requestresponse"
	"document-management-server/internal/ports"
	"document-management-server/internal/util"
)

type NotificationHandler struct {
	ports.NotificationService
}

func NewNotificationHandler(notificationService ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService}
}

// ListNotifications godoc
// @Summary Own notifications, newest first
// @Tags Notifications
// @Produce json
// @Param limit query int false "Number of entries, default 20"
// @Success 200 {array} model.Notification
// @Router /api/notifications [get]
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.NotificationService.List(r.Context(), queryInt(r, "limit"))
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	util.WriteJSON(w, http.StatusOK, notifications)
}

// UnreadCount godoc
// @Summary Number of unread notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} requestresponse.UnreadCountResponse
// @Router /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.NotificationService.UnreadCount(r.Context())
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.UnreadCountResponse{Count: count})
}

// MarkRead godoc
// @Summary Mark one notification as read
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification id"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err := h.NotificationService.MarkRead(r.Context(), id); err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Notification marked as read"})
}

// MarkAllRead godoc
// @Summary Mark every notification as read
// @Tags Notifications
// @Produce json
// @Success 200 {object} requestresponse.MessageResponse
// @Router /api/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationService.MarkAllRead(r.Context()); err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "All notifications marked as read"})
}

// DeleteNotification godoc
// @Summary Delete a notification
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification id"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err := h.NotificationService.Delete(r.Context(), id); err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Notification deleted"})
}
