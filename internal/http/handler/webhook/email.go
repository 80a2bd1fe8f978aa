package webhook

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/service"
)

// maxWebhookBody caps what we read from the email provider.
const maxWebhookBody = 1 << 20

type EmailWebhookHandler struct {
	events service.EmailEventService
}

func NewEmailWebhookHandler(events service.EmailEventService) *EmailWebhookHandler {
	return &EmailWebhookHandler{events: events}
}

func (h *EmailWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	if err := h.events.Handle(ctx, c.Request.Header, body); err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrInvalidSignature):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		default:
			slog.ErrorContext(ctx, "failed to handle email webhook", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process webhook"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
