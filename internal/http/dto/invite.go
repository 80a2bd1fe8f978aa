package dto

import (
	"time"

	"churchthreads.app/api/internal/model"
)

type CreateInviteRequest struct {
	Type    model.InviteType `json:"type" binding:"required,oneof=email link"`
	Name    *string          `json:"name,omitempty"`
	Email   *string          `json:"email,omitempty"`
	FeedIDs []string         `json:"feed_ids"`
}

type InviteRecipientRequest struct {
	Email string  `json:"email" binding:"required"`
	Name  *string `json:"name,omitempty"`
}

type SendEmailInvitesRequest struct {
	FeedIDs    []string                 `json:"feed_ids"`
	Recipients []InviteRecipientRequest `json:"recipients" binding:"required,min=1,max=50,dive"`
}

type InviteResponse struct {
	ID         int64            `json:"id,string"`
	Type       model.InviteType `json:"type"`
	Name       *string          `json:"name,omitempty"`
	Email      *string          `json:"email,omitempty"`
	FeedIDs    []string         `json:"feed_ids"`
	CreatedBy  int64            `json:"created_by,string"`
	ExpiresAt  time.Time        `json:"expires_at"`
	MaxUses    *int32           `json:"max_uses,omitempty"`
	UseCount   int32            `json:"use_count"`
	LastUsedAt *time.Time       `json:"last_used_at,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

type CreateInviteResponse struct {
	Invite *InviteResponse `json:"invite"`
	URL    string          `json:"url"`
}

type RegisterRequest struct {
	Token string `json:"token" binding:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func ToInviteResponse(inv *model.Invite) *InviteResponse {
	return &InviteResponse{
		ID:         inv.ID,
		Type:       inv.Type,
		Name:       inv.Name,
		Email:      inv.Email,
		FeedIDs:    FormatIDs(inv.FeedIDs),
		CreatedBy:  inv.CreatedBy,
		ExpiresAt:  inv.ExpiresAt,
		MaxUses:    inv.MaxUses,
		UseCount:   inv.UseCount,
		LastUsedAt: inv.LastUsedAt,
		CreatedAt:  inv.CreatedAt,
	}
}

func ToInviteResponses(invites []model.Invite) []*InviteResponse {
	out := make([]*InviteResponse, len(invites))
	for i := range invites {
		out[i] = ToInviteResponse(&invites[i])
	}
	return out
}
