package dto

import (
	"time"

	"churchthreads.app/api/internal/model"
)

type CreateFeedRequest struct {
	Name              string                   `json:"name"`
	Description       *string                  `json:"description,omitempty"`
	Privacy           model.FeedPrivacy        `json:"privacy"`
	MemberPermissions []model.MemberPermission `json:"member_permissions"`
}

type FeedResponse struct {
	ID                int64                    `json:"id,string"`
	OrgID             int64                    `json:"org_id,string"`
	Name              string                   `json:"name"`
	Description       *string                  `json:"description,omitempty"`
	Privacy           model.FeedPrivacy        `json:"privacy"`
	MemberPermissions []model.MemberPermission `json:"member_permissions"`
	Owner             *bool                    `json:"owner,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
}

type FeedDetailResponse struct {
	Feed        *FeedResponse         `json:"feed"`
	Permissions model.FeedPermissions `json:"permissions"`
}

type MembershipResponse struct {
	UserID int64 `json:"user_id,string"`
	FeedID int64 `json:"feed_id,string"`
	Owner  bool  `json:"owner"`
}

type NameExistsResponse struct {
	Exists bool `json:"exists"`
}

func ToFeedResponse(f *model.Feed) *FeedResponse {
	perms := f.MemberPermissions
	if perms == nil {
		perms = []model.MemberPermission{}
	}
	return &FeedResponse{
		ID:                f.ID,
		OrgID:             f.OrgID,
		Name:              f.Name,
		Description:       f.Description,
		Privacy:           f.Privacy,
		MemberPermissions: perms,
		CreatedAt:         f.CreatedAt,
	}
}

func ToFeedResponses(feeds []model.Feed) []*FeedResponse {
	out := make([]*FeedResponse, len(feeds))
	for i := range feeds {
		out[i] = ToFeedResponse(&feeds[i])
	}
	return out
}

func ToMemberFeedResponses(feeds []model.FeedWithMembership) []*FeedResponse {
	out := make([]*FeedResponse, len(feeds))
	for i := range feeds {
		resp := ToFeedResponse(&feeds[i].Feed)
		owner := feeds[i].Owner
		resp.Owner = &owner
		out[i] = resp
	}
	return out
}

func ToMembershipResponse(m *model.UserFeed) *MembershipResponse {
	return &MembershipResponse{UserID: m.UserID, FeedID: m.FeedID, Owner: m.Owner}
}
