package model

import (
	"slices"
	"time"
)

type FeedPrivacy string

const (
	// FeedPrivate is visible to members only.
	FeedPrivate FeedPrivacy = "private"
	// FeedPublic is visible to the whole organization; joining needs an invite.
	FeedPublic FeedPrivacy = "public"
	// FeedOpen can be joined by anyone in the organization.
	FeedOpen FeedPrivacy = "open"
)

type MemberPermission string

const (
	PermissionPost    MemberPermission = "post"
	PermissionMessage MemberPermission = "message"
)

func ValidFeedPrivacy(p FeedPrivacy) bool {
	return p == FeedPrivate || p == FeedPublic || p == FeedOpen
}

func ValidMemberPermission(p MemberPermission) bool {
	return p == PermissionPost || p == PermissionMessage
}

type Feed struct {
	ID                int64              `json:"id"`
	OrgID             int64              `json:"org_id"`
	Name              string             `json:"name"`
	Description       *string            `json:"description,omitempty"`
	Privacy           FeedPrivacy        `json:"privacy"`
	MemberPermissions []MemberPermission `json:"member_permissions"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (f *Feed) Allows(p MemberPermission) bool {
	return slices.Contains(f.MemberPermissions, p)
}

// UserFeed is a feed membership.
type UserFeed struct {
	UserID    int64     `json:"user_id"`
	FeedID    int64     `json:"feed_id"`
	OrgID     int64     `json:"org_id"`
	Owner     bool      `json:"owner"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeedWithMembership is a feed as seen by one of its members.
type FeedWithMembership struct {
	Feed
	Owner bool `json:"owner"`
}

// FeedPermissions is what a user may do in a feed.
type FeedPermissions struct {
	IsMember   bool `json:"is_member"`
	IsOwner    bool `json:"is_owner"`
	CanPost    bool `json:"can_post"`
	CanMessage bool `json:"can_message"`
}
