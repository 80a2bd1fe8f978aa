package push

import (
	"fmt"

	"churchthreads.app/api/internal/model"
)

const maxBodyLength = 120

// NewPayload builds the notification shown by the browser.
func NewPayload(orgHost string, t model.NotificationType, d model.NotificationData) Payload {
	actor := d.ActorName
	if actor == "" {
		actor = "Someone"
	}

	p := Payload{
		URL:  "https://" + orgHost + d.Path(t),
		Type: string(t),
	}

	switch t {
	case model.NotificationNewThread:
		p.Title = fmt.Sprintf("%s posted in %s", actor, d.FeedName)
		p.Body = d.Preview
	case model.NotificationNewMessage:
		p.Title = fmt.Sprintf("%s replied in %s", actor, d.FeedName)
		p.Body = d.Preview
		if d.ThreadID != nil {
			// Replaces the previous notification for the same thread.
			p.Tag = fmt.Sprintf("thread-%d", *d.ThreadID)
		}
	case model.NotificationNewFeedMember:
		p.Title = d.FeedName
		p.Body = fmt.Sprintf("%s joined %s", actor, d.FeedName)
	case model.NotificationUserRegistration:
		p.Title = "New user registered"
		p.Body = fmt.Sprintf("%s just joined your organization", actor)
	default:
		p.Title = "ChurchThreads"
	}

	if r := []rune(p.Body); len(r) > maxBodyLength {
		p.Body = string(r[:maxBodyLength-3]) + "..."
	}
	return p
}
