package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/http/dto"
	"churchthreads.app/api/internal/service"
)

type FeedHandler struct {
	feedService service.FeedService
}

func NewFeedHandler(feedService service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

func (h *FeedHandler) Create(c *gin.Context) {
	var req dto.CreateFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	feed, err := h.feedService.Create(c.Request.Context(), currentUser(c), service.CreateFeedParams{
		Name:              req.Name,
		Description:       req.Description,
		Privacy:           req.Privacy,
		MemberPermissions: req.MemberPermissions,
	})
	if err != nil {
		respondError(c, err, "failed to create feed")
		return
	}

	resp := dto.ToFeedResponse(feed)
	owner := true
	resp.Owner = &owner
	c.JSON(http.StatusCreated, resp)
}

func (h *FeedHandler) List(c *gin.Context) {
	feeds, err := h.feedService.ListForUser(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err, "failed to list feeds")
		return
	}
	c.JSON(http.StatusOK, gin.H{"feeds": dto.ToMemberFeedResponses(feeds)})
}

func (h *FeedHandler) ListOpen(c *gin.Context) {
	feeds, err := h.feedService.ListOpen(c.Request.Context(), currentUser(c).OrgID)
	if err != nil {
		respondError(c, err, "failed to list open feeds")
		return
	}
	c.JSON(http.StatusOK, gin.H{"feeds": dto.ToFeedResponses(feeds)})
}

func (h *FeedHandler) ListInvitable(c *gin.Context) {
	feeds, err := h.feedService.ListInvitable(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err, "failed to list feeds")
		return
	}
	c.JSON(http.StatusOK, gin.H{"feeds": dto.ToFeedResponses(feeds)})
}

func (h *FeedHandler) NameExists(c *gin.Context) {
	exists, err := h.feedService.NameExists(c.Request.Context(), currentUser(c).OrgID, c.Query("name"))
	if err != nil {
		respondError(c, err, "failed to check feed name")
		return
	}
	c.JSON(http.StatusOK, dto.NameExistsResponse{Exists: exists})
}

func (h *FeedHandler) Get(c *gin.Context) {
	feedID, ok := paramID(c, "feedId")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	user := currentUser(c)

	feed, err := h.feedService.Get(ctx, user, feedID)
	if err != nil {
		respondError(c, err, "failed to get feed")
		return
	}
	perms, err := h.feedService.Permissions(ctx, user, feedID)
	if err != nil {
		respondError(c, err, "failed to get feed")
		return
	}

	resp := dto.ToFeedResponse(feed)
	if perms.IsMember {
		resp.Owner = &perms.IsOwner
	}
	c.JSON(http.StatusOK, dto.FeedDetailResponse{Feed: resp, Permissions: perms})
}

func (h *FeedHandler) Join(c *gin.Context) {
	feedID, ok := paramID(c, "feedId")
	if !ok {
		return
	}

	membership, err := h.feedService.Join(c.Request.Context(), currentUser(c), feedID)
	if err != nil {
		respondError(c, err, "failed to join feed")
		return
	}
	c.JSON(http.StatusOK, dto.ToMembershipResponse(membership))
}

func (h *FeedHandler) RemoveMember(c *gin.Context) {
	feedID, ok := paramID(c, "feedId")
	if !ok {
		return
	}
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	if err := h.feedService.RemoveMember(c.Request.Context(), currentUser(c), feedID, userID); err != nil {
		respondError(c, err, "failed to remove member")
		return
	}
	c.Status(http.StatusNoContent)
}
