package store

import (
	"context"

	"churchthreads.app/api/core/db/sqlc"
	"churchthreads.app/api/internal/model"
)

type pushSubscriptionStore struct {
	queries *sqlc.Queries
}

func newPushSubscriptionStore(queries *sqlc.Queries) PushSubscriptionStore {
	return &pushSubscriptionStore{queries: queries}
}

func (s *pushSubscriptionStore) Upsert(ctx context.Context, sub *model.PushSubscription) error {
	row, err := s.queries.UpsertPushSubscription(ctx, sqlc.UpsertPushSubscriptionParams{
		ID:       sub.ID,
		UserID:   sub.UserID,
		Endpoint: sub.Endpoint,
		P256dh:   sub.P256dh,
		Auth:     sub.Auth,
	})
	if err != nil {
		return err
	}
	*sub = *toPushSubscriptionModel(row)
	return nil
}

func (s *pushSubscriptionStore) DeleteForUser(ctx context.Context, userID int64, endpoint string) error {
	return s.queries.DeletePushSubscriptionForUser(ctx, sqlc.DeletePushSubscriptionForUserParams{
		UserID:   userID,
		Endpoint: endpoint,
	})
}

func (s *pushSubscriptionStore) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	return s.queries.DeletePushSubscriptionByEndpoint(ctx, endpoint)
}

func (s *pushSubscriptionStore) ListByUsers(ctx context.Context, userIDs []int64) ([]model.PushSubscription, error) {
	if len(userIDs) == 0 {
		return []model.PushSubscription{}, nil
	}
	rows, err := s.queries.ListPushSubscriptionsByUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	result := make([]model.PushSubscription, len(rows))
	for i, row := range rows {
		result[i] = *toPushSubscriptionModel(row)
	}
	return result, nil
}

func toPushSubscriptionModel(row sqlc.PushSubscription) *model.PushSubscription {
	return &model.PushSubscription{
		ID:        row.ID,
		UserID:    row.UserID,
		Endpoint:  row.Endpoint,
		P256dh:    row.P256dh,
		Auth:      row.Auth,
		CreatedAt: row.CreatedAt.Time,
	}
}
