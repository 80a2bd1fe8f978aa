package dto

import (
	"time"

	"churchthreads.app/api/internal/model"
)

type UpdateProfileRequest struct {
	Name                 string                      `json:"name" binding:"max=255"`
	NotificationChannels []model.NotificationChannel `json:"notification_channels"`
}

type UserResponse struct {
	ID                   int64                       `json:"id,string"`
	OrgID                int64                       `json:"org_id,string"`
	Name                 string                      `json:"name"`
	Email                string                      `json:"email"`
	Role                 model.Role                  `json:"role"`
	ImageID              *int64                      `json:"image_id,omitempty,string"`
	NotificationChannels []model.NotificationChannel `json:"notification_channels"`
	CreatedAt            time.Time                   `json:"created_at"`
}

func ToUserResponse(u *model.User) *UserResponse {
	channels := u.NotificationChannels
	if channels == nil {
		channels = []model.NotificationChannel{}
	}
	return &UserResponse{
		ID:                   u.ID,
		OrgID:                u.OrgID,
		Name:                 u.Name,
		Email:                u.Email,
		Role:                 u.Role,
		ImageID:              u.ImageID,
		NotificationChannels: channels,
		CreatedAt:            u.CreatedAt,
	}
}
