package router

import (
	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/http/handler/webhook"
)

func WebhookRouter(rg *gin.RouterGroup, h *webhook.EmailWebhookHandler) {
	rg.POST("/email", h.HandleEvent)
}
