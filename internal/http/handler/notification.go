package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/http/dto"
	"churchthreads.app/api/internal/service"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List accepts ?unread=true and ?limit=<n>.
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	limit := int32(service.DefaultNotificationLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 1 {
			badRequest(c, "invalid limit")
			return
		}
		limit = int32(parsed)
	}

	notifications, err := h.notifications.ListForUser(c.Request.Context(), currentUser(c), unreadOnly, limit)
	if err != nil {
		respondError(c, err, "failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": dto.ToNotificationResponses(notifications)})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	notificationID, ok := paramID(c, "notificationId")
	if !ok {
		return
	}

	n, err := h.notifications.MarkAsRead(c.Request.Context(), currentUser(c), notificationID)
	if err != nil {
		respondError(c, err, "failed to mark notification as read")
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationResponse(n))
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	updated, err := h.notifications.MarkAllAsRead(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err, "failed to mark notifications as read")
		return
	}
	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}
