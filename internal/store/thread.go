package store

import (
	"context"

	"churchthreads.app/api/core/db/sqlc"
	"churchthreads.app/api/internal/model"
)

type threadStore struct {
	queries *sqlc.Queries
}

func newThreadStore(queries *sqlc.Queries) ThreadStore {
	return &threadStore{queries: queries}
}

func (s *threadStore) GetByID(ctx context.Context, id int64) (*model.Thread, error) {
	row, err := s.queries.GetThread(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toThreadModel(row), nil
}

func (s *threadStore) Create(ctx context.Context, thread *model.Thread) error {
	row, err := s.queries.CreateThread(ctx, sqlc.CreateThreadParams{
		ID:       thread.ID,
		OrgID:    thread.OrgID,
		FeedID:   thread.FeedID,
		PosterID: thread.PosterID,
		Content:  thread.Content,
	})
	if err != nil {
		return err
	}
	*thread = *toThreadModel(row)
	return nil
}

func (s *threadStore) ListByFeed(ctx context.Context, feedID, before int64, limit int32) ([]model.Thread, error) {
	rows, err := s.queries.ListThreadsByFeed(ctx, sqlc.ListThreadsByFeedParams{
		FeedID:   feedID,
		Before:   before,
		RowLimit: limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Thread, len(rows))
	for i, row := range rows {
		result[i] = *toThreadModel(row)
	}
	return result, nil
}

func toThreadModel(row sqlc.Thread) *model.Thread {
	return &model.Thread{
		ID:        row.ID,
		OrgID:     row.OrgID,
		FeedID:    row.FeedID,
		PosterID:  row.PosterID,
		Content:   row.Content,
		PostedAt:  row.PostedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

type messageStore struct {
	queries *sqlc.Queries
}

func newMessageStore(queries *sqlc.Queries) MessageStore {
	return &messageStore{queries: queries}
}

func (s *messageStore) Create(ctx context.Context, msg *model.Message) error {
	row, err := s.queries.CreateMessage(ctx, sqlc.CreateMessageParams{
		ID:       msg.ID,
		OrgID:    msg.OrgID,
		ThreadID: msg.ThreadID,
		SenderID: msg.SenderID,
		Content:  msg.Content,
	})
	if err != nil {
		return err
	}
	*msg = *toMessageModel(row)
	return nil
}

func (s *messageStore) ListByThread(ctx context.Context, threadID int64) ([]model.Message, error) {
	rows, err := s.queries.ListMessagesByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Message, len(rows))
	for i, row := range rows {
		result[i] = *toMessageModel(row)
	}
	return result, nil
}

func (s *messageStore) ListParticipantIDs(ctx context.Context, threadID int64) ([]int64, error) {
	return s.queries.ListThreadParticipantIDs(ctx, threadID)
}

func toMessageModel(row sqlc.Message) *model.Message {
	return &model.Message{
		ID:        row.ID,
		OrgID:     row.OrgID,
		ThreadID:  row.ThreadID,
		SenderID:  row.SenderID,
		Content:   row.Content,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
