package model

import (
	"slices"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// NotificationChannel is a delivery channel a user has opted into.
type NotificationChannel string

const (
	ChannelPush  NotificationChannel = "push"
	ChannelEmail NotificationChannel = "email"
)

// DefaultNotificationChannels are assigned at registration.
var DefaultNotificationChannels = []NotificationChannel{ChannelPush, ChannelEmail}

type User struct {
	ID                   int64                 `json:"id"`
	OrgID                int64                 `json:"org_id"`
	Email                string                `json:"email"`
	Name                 string                `json:"name"`
	Role                 Role                  `json:"role"`
	WorkOSID             *string               `json:"-"`
	ImageID              *int64                `json:"image_id,omitempty"`
	NotificationChannels []NotificationChannel `json:"notification_channels"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Wants(channel NotificationChannel) bool {
	return slices.Contains(u.NotificationChannels, channel)
}

func ValidNotificationChannel(c NotificationChannel) bool {
	return c == ChannelPush || c == ChannelEmail
}
