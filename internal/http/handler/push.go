package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/http/dto"
	"churchthreads.app/api/internal/service"
)

type PushHandler struct {
	pushService service.PushService
}

func NewPushHandler(pushService service.PushService) *PushHandler {
	return &PushHandler{pushService: pushService}
}

func (h *PushHandler) VAPIDPublicKey(c *gin.Context) {
	key := h.pushService.VAPIDPublicKey()
	if key == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications are not configured"})
		return
	}
	c.JSON(http.StatusOK, dto.VAPIDKeyResponse{PublicKey: key})
}

func (h *PushHandler) Subscribe(c *gin.Context) {
	var req dto.PushSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "endpoint is required")
		return
	}

	_, err := h.pushService.Subscribe(c.Request.Context(), currentUser(c), req.Endpoint, req.Keys.P256dh, req.Keys.Auth)
	if err != nil {
		respondError(c, err, "failed to save push subscription")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PushHandler) Unsubscribe(c *gin.Context) {
	var req dto.PushUnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "endpoint is required")
		return
	}

	if err := h.pushService.Unsubscribe(c.Request.Context(), currentUser(c), req.Endpoint); err != nil {
		respondError(c, err, "failed to remove push subscription")
		return
	}
	c.Status(http.StatusNoContent)
}
