package queue

import (
	"encoding/json"
	"strconv"
	"strings"
)

type TaskType string

const (
	// TaskTypeEmailNotification sends one notification email per recipient.
	TaskTypeEmailNotification TaskType = "email_notification"
	// TaskTypePushNotification sends web push to every subscription of each recipient.
	TaskTypePushNotification TaskType = "push_notification"
)

type Task struct {
	TaskType         TaskType
	OrgID            int64
	NotificationType string
	// JobKey identifies the scheduled dispatch the task came from; email
	// delivery is idempotent per (JobKey, recipient).
	JobKey       string
	RecipientIDs []int64
	Data         json.RawMessage
	TraceID      *string
	Attempt      int
}

func formatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func parseIDs(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
