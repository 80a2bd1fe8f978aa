package model

import "time"

type Thread struct {
	ID        int64     `json:"id"`
	OrgID     int64     `json:"org_id"`
	FeedID    int64     `json:"feed_id"`
	PosterID  int64     `json:"poster_id"`
	Content   string    `json:"content"`
	PostedAt  time.Time `json:"posted_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID        int64     `json:"id"`
	OrgID     int64     `json:"org_id"`
	ThreadID  int64     `json:"thread_id"`
	SenderID  int64     `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
