package model

import "time"

type InviteType string

const (
	InviteTypeEmail InviteType = "email"
	InviteTypeLink  InviteType = "link"
)

type Invite struct {
	ID         int64      `json:"id"`
	OrgID      int64      `json:"org_id"`
	Type       InviteType `json:"type"`
	Name       *string    `json:"name,omitempty"`
	Email      *string    `json:"email,omitempty"`
	FeedIDs    []int64    `json:"feed_ids"`
	Token      string     `json:"-"`
	CreatedBy  int64      `json:"created_by"`
	ExpiresAt  time.Time  `json:"expires_at"`
	MaxUses    *int32     `json:"max_uses,omitempty"`
	UseCount   int32      `json:"use_count"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IsExpired reports whether the invite can no longer be used, either because
// its expiry passed or because every allowed use has been consumed.
func (i *Invite) IsExpired(now time.Time) bool {
	if i.ExpiresAt.Before(now) {
		return true
	}
	return i.MaxUses != nil && i.UseCount >= *i.MaxUses
}
