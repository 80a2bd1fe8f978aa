package router

import (
	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/http/handler"
)

func UserRouter(rg *gin.RouterGroup, requireAuth gin.HandlerFunc, users *handler.UserHandler, push *handler.PushHandler) {
	rg.GET("/push/vapid-public-key", push.VAPIDPublicKey)

	authed := rg.Group("")
	authed.Use(requireAuth)
	{
		authed.GET("/me", users.Me)
		authed.PATCH("/me", users.UpdateMe)
		authed.POST("/push/subscriptions", push.Subscribe)
		authed.DELETE("/push/subscriptions", push.Unsubscribe)
	}
}
