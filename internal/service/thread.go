package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"churchthreads.app/api/common/content"
	"churchthreads.app/api/common/id"
	"churchthreads.app/api/common/validation"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/store"
)

const (
	DefaultThreadPageSize = 20
	MaxThreadPageSize     = 100

	previewLength = 100
)

type ThreadService interface {
	CreateThread(ctx context.Context, user *model.User, feedID int64, body string) (*model.Thread, error)
	// ListThreads pages newest first. cursor is the id of the last thread of
	// the previous page, 0 for the first page.
	ListThreads(ctx context.Context, user *model.User, feedID, cursor int64, limit int32) ([]model.Thread, error)
	GetThread(ctx context.Context, user *model.User, threadID int64) (*model.Thread, error)
	CreateMessage(ctx context.Context, user *model.User, threadID int64, body string) (*model.Message, error)
	ListMessages(ctx context.Context, user *model.User, threadID int64) ([]model.Message, error)
}

type threadService struct {
	threadStore   store.ThreadStore
	messageStore  store.MessageStore
	feeds         FeedService
	notifications NotificationService
}

func NewThreadService(
	threadStore store.ThreadStore,
	messageStore store.MessageStore,
	feeds FeedService,
	notifications NotificationService,
) ThreadService {
	return &threadService{
		threadStore:   threadStore,
		messageStore:  messageStore,
		feeds:         feeds,
		notifications: notifications,
	}
}

func (s *threadService) CreateThread(ctx context.Context, user *model.User, feedID int64, body string) (*model.Thread, error) {
	if err := checkValid(validation.ValidateContent(body)); err != nil {
		return nil, err
	}

	feed, err := s.feeds.Get(ctx, user, feedID)
	if err != nil {
		return nil, err
	}
	perms, err := s.feeds.Permissions(ctx, user, feedID)
	if err != nil {
		return nil, err
	}
	if !perms.CanPost {
		return nil, ErrForbidden
	}

	now := time.Now()
	thread := &model.Thread{
		ID:       id.New(),
		OrgID:    feed.OrgID,
		FeedID:   feed.ID,
		PosterID: user.ID,
		Content:  body,
		PostedAt: now,
	}
	if err := s.threadStore.Create(ctx, thread); err != nil {
		slog.ErrorContext(ctx, "failed to create thread", "error", err, "feed_id", feedID)
		return nil, fmt.Errorf("creating thread: %w", err)
	}

	slog.InfoContext(ctx, "thread created", "thread_id", thread.ID, "feed_id", feed.ID)

	err = s.notifications.Send(ctx, feed.OrgID, model.NotificationNewThread, model.NotificationData{
		FeedID:    &feed.ID,
		ThreadID:  &thread.ID,
		ActorID:   &user.ID,
		ActorName: user.Name,
		FeedName:  feed.Name,
		Preview:   content.ToPlainText(body, previewLength),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to notify feed members", "error", err, "thread_id", thread.ID)
	}
	return thread, nil
}

func (s *threadService) ListThreads(ctx context.Context, user *model.User, feedID, cursor int64, limit int32) ([]model.Thread, error) {
	if _, err := s.feeds.Get(ctx, user, feedID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultThreadPageSize
	}
	limit = min(limit, MaxThreadPageSize)

	threads, err := s.threadStore.ListByFeed(ctx, feedID, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("listing threads: %w", err)
	}
	return threads, nil
}

func (s *threadService) GetThread(ctx context.Context, user *model.User, threadID int64) (*model.Thread, error) {
	thread, _, err := s.loadThread(ctx, user, threadID)
	return thread, err
}

// loadThread returns a thread the user may read together with its feed.
func (s *threadService) loadThread(ctx context.Context, user *model.User, threadID int64) (*model.Thread, *model.Feed, error) {
	thread, err := s.threadStore.GetByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrThreadNotFound
		}
		return nil, nil, fmt.Errorf("getting thread: %w", err)
	}
	if thread.OrgID != user.OrgID {
		return nil, nil, ErrThreadNotFound
	}

	feed, err := s.feeds.Get(ctx, user, thread.FeedID)
	if err != nil {
		if errors.Is(err, ErrFeedNotFound) {
			return nil, nil, ErrThreadNotFound
		}
		return nil, nil, err
	}
	return thread, feed, nil
}

func (s *threadService) CreateMessage(ctx context.Context, user *model.User, threadID int64, body string) (*model.Message, error) {
	if err := checkValid(validation.ValidateContent(body)); err != nil {
		return nil, err
	}

	thread, feed, err := s.loadThread(ctx, user, threadID)
	if err != nil {
		return nil, err
	}
	perms, err := s.feeds.Permissions(ctx, user, feed.ID)
	if err != nil {
		return nil, err
	}
	if !perms.CanMessage {
		return nil, ErrForbidden
	}

	msg := &model.Message{
		ID:       id.New(),
		OrgID:    thread.OrgID,
		ThreadID: thread.ID,
		SenderID: user.ID,
		Content:  body,
	}
	if err := s.messageStore.Create(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to create message", "error", err, "thread_id", threadID)
		return nil, fmt.Errorf("creating message: %w", err)
	}

	slog.InfoContext(ctx, "message created", "message_id", msg.ID, "thread_id", thread.ID)

	err = s.notifications.Send(ctx, thread.OrgID, model.NotificationNewMessage, model.NotificationData{
		FeedID:    &feed.ID,
		ThreadID:  &thread.ID,
		ActorID:   &user.ID,
		ActorName: user.Name,
		FeedName:  feed.Name,
		Preview:   content.ToPlainText(body, previewLength),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to notify thread participants", "error", err, "thread_id", thread.ID)
	}
	return msg, nil
}

func (s *threadService) ListMessages(ctx context.Context, user *model.User, threadID int64) ([]model.Message, error) {
	if _, _, err := s.loadThread(ctx, user, threadID); err != nil {
		return nil, err
	}

	messages, err := s.messageStore.ListByThread(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return messages, nil
}
