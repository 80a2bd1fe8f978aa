package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/http/dto"
	"churchthreads.app/api/internal/service"
)

type InvitationHandler struct {
	invService service.InvitationService
}

func NewInvitationHandler(invService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invService: invService}
}

func (h *InvitationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := paramID(c, "orgId")
	if !ok {
		return
	}
	var req dto.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: type must be email or link")
		return
	}
	feedIDs, err := dto.ParseIDs(req.FeedIDs)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	inv, inviteURL, err := h.invService.Create(ctx, currentUser(c), service.CreateInviteParams{
		OrgID:   orgID,
		Type:    req.Type,
		Name:    req.Name,
		Email:   req.Email,
		FeedIDs: feedIDs,
	})
	if err != nil {
		respondError(c, err, "failed to create invitation")
		return
	}

	slog.InfoContext(ctx, "invitation created",
		"invite_id", inv.ID,
		"type", inv.Type,
	)

	c.JSON(http.StatusCreated, dto.CreateInviteResponse{
		Invite: dto.ToInviteResponse(inv),
		URL:    inviteURL,
	})
}

// SendEmail invites a batch of addresses. The response lists the outcome per
// recipient; it is 200 even when some of them failed.
func (h *InvitationHandler) SendEmail(c *gin.Context) {
	orgID, ok := paramID(c, "orgId")
	if !ok {
		return
	}
	var req dto.SendEmailInvitesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: recipients are required")
		return
	}
	feedIDs, err := dto.ParseIDs(req.FeedIDs)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	recipients := make([]service.InviteRecipient, len(req.Recipients))
	for i, r := range req.Recipients {
		recipients[i] = service.InviteRecipient{Email: r.Email, Name: r.Name}
	}

	results, err := h.invService.CreateAndSendEmailInvitations(c.Request.Context(), currentUser(c), orgID, feedIDs, recipients)
	if err != nil {
		respondError(c, err, "failed to send invitations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *InvitationHandler) List(c *gin.Context) {
	invites, err := h.invService.ListForOrg(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err, "failed to list invitations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invites": dto.ToInviteResponses(invites)})
}

func (h *InvitationHandler) Revoke(c *gin.Context) {
	inviteID, ok := paramID(c, "inviteId")
	if !ok {
		return
	}

	if err := h.invService.Revoke(c.Request.Context(), currentUser(c), inviteID); err != nil {
		respondError(c, err, "failed to revoke invitation")
		return
	}
	c.Status(http.StatusNoContent)
}

// Lookup tells the registration page who an invite was addressed to. Public.
func (h *InvitationHandler) Lookup(c *gin.Context) {
	orgID, ok := paramID(c, "orgId")
	if !ok {
		return
	}

	lookup, err := h.invService.Lookup(c.Request.Context(), orgID, c.Query("token"))
	if err != nil {
		respondError(c, err, "failed to look up invitation")
		return
	}
	c.JSON(http.StatusOK, lookup)
}
