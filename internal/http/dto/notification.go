package dto

import (
	"encoding/json"
	"time"

	"churchthreads.app/api/internal/model"
)

type NotificationResponse struct {
	ID        int64                  `json:"id,string"`
	Type      model.NotificationType `json:"type"`
	Data      json.RawMessage        `json:"data"`
	Read      bool                   `json:"read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

func ToNotificationResponse(n *model.Notification) *NotificationResponse {
	data := n.Data
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	return &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Data:      data,
		Read:      n.ReadAt != nil,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func ToNotificationResponses(notifications []model.Notification) []*NotificationResponse {
	out := make([]*NotificationResponse, len(notifications))
	for i := range notifications {
		out[i] = ToNotificationResponse(&notifications[i])
	}
	return out
}
