package store

import (
	"context"

	"churchthreads.app/api/core/db/sqlc"
	"churchthreads.app/api/internal/model"
)

type notificationStore struct {
	queries *sqlc.Queries
}

func newNotificationStore(queries *sqlc.Queries) NotificationStore {
	return &notificationStore{queries: queries}
}

func (s *notificationStore) Create(ctx context.Context, n *model.Notification) error {
	data := []byte(n.Data)
	if len(data) == 0 {
		data = []byte("{}")
	}
	row, err := s.queries.CreateNotification(ctx, sqlc.CreateNotificationParams{
		ID:     n.ID,
		OrgID:  n.OrgID,
		UserID: n.UserID,
		Type:   string(n.Type),
		Data:   data,
	})
	if err != nil {
		return err
	}
	*n = *toNotificationModel(row)
	return nil
}

func (s *notificationStore) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	rows, err := s.queries.ListNotificationsByUser(ctx, sqlc.ListNotificationsByUserParams{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		RowLimit:   limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Notification, len(rows))
	for i, row := range rows {
		result[i] = *toNotificationModel(row)
	}
	return result, nil
}

func (s *notificationStore) MarkRead(ctx context.Context, id, userID int64) (*model.Notification, error) {
	row, err := s.queries.MarkNotificationRead(ctx, sqlc.MarkNotificationReadParams{
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toNotificationModel(row), nil
}

func (s *notificationStore) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.queries.MarkAllNotificationsRead(ctx, userID)
}

func toNotificationModel(row sqlc.Notification) *model.Notification {
	return &model.Notification{
		ID:        row.ID,
		OrgID:     row.OrgID,
		UserID:    row.UserID,
		Type:      model.NotificationType(row.Type),
		Data:      row.Data,
		ReadAt:    timePtr(row.ReadAt),
		CreatedAt: row.CreatedAt.Time,
	}
}
