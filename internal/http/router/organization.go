package router

import (
	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/http/handler"
	"churchthreads.app/api/internal/http/middleware"
)

type OrgHandlers struct {
	Organizations *handler.OrganizationHandler
	Feeds         *handler.FeedHandler
	Threads       *handler.ThreadHandler
	Invitations   *handler.InvitationHandler
	Registration  *handler.RegistrationHandler
	Notifications *handler.NotificationHandler
}

// OrganizationRouter mounts everything under /orgs. Invite lookup and
// registration are public and rate limited; the rest needs a member of :orgId.
func OrganizationRouter(rg *gin.RouterGroup, requireAuth, rateLimit gin.HandlerFunc, h OrgHandlers) {
	rg.GET("/by-subdomain/:subdomain", h.Organizations.GetBySubdomain)
	rg.GET("/:orgId/invites/lookup", rateLimit, h.Invitations.Lookup)
	rg.POST("/:orgId/register", rateLimit, h.Registration.Register)

	org := rg.Group("/:orgId")
	org.Use(requireAuth, middleware.RequireOrgMember())

	feeds := org.Group("/feeds")
	{
		feeds.GET("", h.Feeds.List)
		feeds.POST("", h.Feeds.Create)
		feeds.GET("/open", h.Feeds.ListOpen)
		feeds.GET("/invitable", h.Feeds.ListInvitable)
		feeds.GET("/name-exists", h.Feeds.NameExists)
		feeds.GET("/:feedId", h.Feeds.Get)
		feeds.POST("/:feedId/join", h.Feeds.Join)
		feeds.DELETE("/:feedId/members/:userId", h.Feeds.RemoveMember)
		feeds.GET("/:feedId/threads", h.Threads.List)
		feeds.POST("/:feedId/threads", h.Threads.Create)
	}

	threads := org.Group("/threads")
	{
		threads.GET("/:threadId", h.Threads.Get)
		threads.GET("/:threadId/messages", h.Threads.ListMessages)
		threads.POST("/:threadId/messages", h.Threads.CreateMessage)
	}

	invites := org.Group("/invites")
	{
		invites.GET("", h.Invitations.List)
		invites.POST("", h.Invitations.Create)
		invites.POST("/email", h.Invitations.SendEmail)
		invites.DELETE("/:inviteId", h.Invitations.Revoke)
	}

	notifications := org.Group("/notifications")
	{
		notifications.GET("", h.Notifications.List)
		notifications.POST("/read-all", h.Notifications.MarkAllAsRead)
		notifications.POST("/:notificationId/read", h.Notifications.MarkAsRead)
	}
}
