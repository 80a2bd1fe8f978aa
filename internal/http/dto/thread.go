package dto

import (
	"strconv"
	"time"

	"churchthreads.app/api/internal/model"
)

type CreateContentRequest struct {
	// Content is a TipTap document serialized as JSON.
	Content string `json:"content" binding:"required"`
}

type ThreadResponse struct {
	ID       int64     `json:"id,string"`
	FeedID   int64     `json:"feed_id,string"`
	PosterID int64     `json:"poster_id,string"`
	Content  string    `json:"content"`
	PostedAt time.Time `json:"posted_at"`
}

type ThreadPageResponse struct {
	Threads    []*ThreadResponse `json:"threads"`
	NextCursor *string           `json:"next_cursor,omitempty"`
}

type MessageResponse struct {
	ID        int64     `json:"id,string"`
	ThreadID  int64     `json:"thread_id,string"`
	SenderID  int64     `json:"sender_id,string"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func ToThreadResponse(t *model.Thread) *ThreadResponse {
	return &ThreadResponse{
		ID:       t.ID,
		FeedID:   t.FeedID,
		PosterID: t.PosterID,
		Content:  t.Content,
		PostedAt: t.PostedAt,
	}
}

// ToThreadPage sets a cursor only when the page came back full.
func ToThreadPage(threads []model.Thread, limit int32) *ThreadPageResponse {
	page := &ThreadPageResponse{Threads: make([]*ThreadResponse, len(threads))}
	for i := range threads {
		page.Threads[i] = ToThreadResponse(&threads[i])
	}
	if limit > 0 && len(threads) == int(limit) {
		cursor := strconv.FormatInt(threads[len(threads)-1].ID, 10)
		page.NextCursor = &cursor
	}
	return page
}

func ToMessageResponse(m *model.Message) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func ToMessageResponses(messages []model.Message) []*MessageResponse {
	out := make([]*MessageResponse, len(messages))
	for i := range messages {
		out[i] = ToMessageResponse(&messages[i])
	}
	return out
}
