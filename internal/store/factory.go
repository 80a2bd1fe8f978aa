package store

import (
	"churchthreads.app/api/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.queries)
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Feeds() FeedStore {
	return newFeedStore(s.queries)
}

func (s *Stores) Memberships() MembershipStore {
	return newMembershipStore(s.queries)
}

func (s *Stores) Threads() ThreadStore {
	return newThreadStore(s.queries)
}

func (s *Stores) Messages() MessageStore {
	return newMessageStore(s.queries)
}

func (s *Stores) Invites() InviteStore {
	return newInviteStore(s.queries)
}

func (s *Stores) Uploads() UploadStore {
	return newUploadStore(s.queries)
}

func (s *Stores) Notifications() NotificationStore {
	return newNotificationStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) PushSubscriptions() PushSubscriptionStore {
	return newPushSubscriptionStore(s.queries)
}

func (s *Stores) Emails() EmailStore {
	return newEmailStore(s.queries)
}
