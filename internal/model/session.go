package model

import "time"

type Session struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	// Token is the cookie value. It is only known when the session is created;
	// the database keeps TokenHash.
	Token     string    `json:"-"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
