package store

import (
	"context"
	"errors"
	"time"

	"churchthreads.app/api/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetByHost(ctx context.Context, host string) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
}

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByWorkOSID(ctx context.Context, workosID string) (*model.User, error)
	GetByOrgAndEmail(ctx context.Context, orgID int64, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, id int64, name string, channels []model.NotificationChannel) (*model.User, error)
	SetWorkOSID(ctx context.Context, id int64, workosID string) (*model.User, error)
	SetImage(ctx context.Context, id int64, imageID *int64) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	ListAdmins(ctx context.Context, orgID int64) ([]model.User, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.User, error)
}

// FeedStore defines the contract for feed data access
type FeedStore interface {
	GetByID(ctx context.Context, id int64) (*model.Feed, error)
	GetByOrgAndName(ctx context.Context, orgID int64, name string) (*model.Feed, error)
	Create(ctx context.Context, feed *model.Feed) error
	ListByOrg(ctx context.Context, orgID int64) ([]model.Feed, error)
	ListOpen(ctx context.Context, orgID int64) ([]model.Feed, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Feed, error)
	ListForUser(ctx context.Context, userID int64) ([]model.FeedWithMembership, error)
	ListOwned(ctx context.Context, userID int64) ([]model.Feed, error)
}

// MembershipStore defines the contract for user/feed membership data access
type MembershipStore interface {
	Get(ctx context.Context, userID, feedID int64) (*model.UserFeed, error)
	// Upsert adds a membership. An existing owner flag is never cleared.
	Upsert(ctx context.Context, m *model.UserFeed) error
	// Delete reports whether a membership was removed.
	Delete(ctx context.Context, userID, feedID int64) (bool, error)
	ListMemberIDs(ctx context.Context, feedID int64) ([]int64, error)
	ListOwnerIDs(ctx context.Context, feedID int64) ([]int64, error)
}

// ThreadStore defines the contract for thread data access
type ThreadStore interface {
	GetByID(ctx context.Context, id int64) (*model.Thread, error)
	Create(ctx context.Context, thread *model.Thread) error
	// ListByFeed returns threads newest first. before=0 starts at the newest.
	ListByFeed(ctx context.Context, feedID, before int64, limit int32) ([]model.Thread, error)
}

// MessageStore defines the contract for message data access
type MessageStore interface {
	Create(ctx context.Context, msg *model.Message) error
	ListByThread(ctx context.Context, threadID int64) ([]model.Message, error)
	// ListParticipantIDs returns the thread poster plus everyone who replied.
	ListParticipantIDs(ctx context.Context, threadID int64) ([]int64, error)
}

// InviteStore defines the contract for invite data access
type InviteStore interface {
	GetByID(ctx context.Context, id int64) (*model.Invite, error)
	GetByToken(ctx context.Context, token string) (*model.Invite, error)
	// GetActiveByEmail returns an unexpired, not used up invite for email in the org.
	GetActiveByEmail(ctx context.Context, orgID int64, email string) (*model.Invite, error)
	Create(ctx context.Context, invite *model.Invite) error
	// ConsumeUse atomically records one use. ErrNotFound means the invite
	// was expired or already used up.
	ConsumeUse(ctx context.Context, id int64) (*model.Invite, error)
	Delete(ctx context.Context, id int64) error
	ListByOrg(ctx context.Context, orgID int64) ([]model.Invite, error)
	DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error)
}

// UploadStore defines the contract for upload data access
type UploadStore interface {
	GetByID(ctx context.Context, id int64) (*model.Upload, error)
	GetAvatarByUser(ctx context.Context, userID int64) (*model.Upload, error)
	Create(ctx context.Context, upload *model.Upload) error
	Delete(ctx context.Context, id int64) error
}

// NotificationStore defines the contract for in-app notification data access
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	GetValidByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) // checks expiry
	Create(ctx context.Context, session *model.Session) error
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// PushSubscriptionStore defines the contract for web push subscription data access
type PushSubscriptionStore interface {
	Upsert(ctx context.Context, sub *model.PushSubscription) error
	DeleteForUser(ctx context.Context, userID int64, endpoint string) error
	DeleteByEndpoint(ctx context.Context, endpoint string) error
	ListByUsers(ctx context.Context, userIDs []int64) ([]model.PushSubscription, error)
}

// EmailStore defines the contract for outbound email and delivery event data access
type EmailStore interface {
	Create(ctx context.Context, email *model.Email) error
	GetByMessageID(ctx context.Context, messageID string) (*model.Email, error)
	GetByJobAndUser(ctx context.Context, jobKey string, userID int64) (*model.Email, error)
	UpdateStatus(ctx context.Context, id int64, status model.EmailStatus) (*model.Email, error)
	CreateEvent(ctx context.Context, event *model.EmailEvent) error
}
