package model

import (
	"encoding/json"
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationNewThread        NotificationType = "new_thread_in_member_feed"
	NotificationNewMessage       NotificationType = "new_message_in_thread"
	NotificationNewFeedMember    NotificationType = "new_feed_member"
	NotificationUserRegistration NotificationType = "user_registration"
)

func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationNewThread, NotificationNewMessage, NotificationNewFeedMember, NotificationUserRegistration:
		return true
	}
	return false
}

// NotificationData is the payload shared by in-app notifications, email and push.
// Which fields are set depends on the notification type.
type NotificationData struct {
	FeedID   *int64 `json:"feed_id,string,omitempty"`
	ThreadID *int64 `json:"thread_id,string,omitempty"`
	// ActorID is the user whose action caused the notification.
	ActorID   *int64 `json:"actor_id,string,omitempty"`
	ActorName string `json:"actor_name,omitempty"`
	FeedName  string `json:"feed_name,omitempty"`
	Preview   string `json:"preview,omitempty"`
}

type Notification struct {
	ID        int64            `json:"id"`
	OrgID     int64            `json:"org_id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Data      json.RawMessage  `json:"data"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Path is the app page a notification links to, relative to the org host.
func (d NotificationData) Path(t NotificationType) string {
	switch {
	case t == NotificationUserRegistration:
		return "/admin/users"
	case d.FeedID != nil && d.ThreadID != nil:
		return fmt.Sprintf("/feeds/%d/threads/%d", *d.FeedID, *d.ThreadID)
	case d.FeedID != nil:
		return fmt.Sprintf("/feeds/%d", *d.FeedID)
	}
	return "/"
}
