package store

import (
	"context"

	"churchthreads.app/api/core/db/sqlc"
	"churchthreads.app/api/internal/model"
)

type membershipStore struct {
	queries *sqlc.Queries
}

func newMembershipStore(queries *sqlc.Queries) MembershipStore {
	return &membershipStore{queries: queries}
}

func (s *membershipStore) Get(ctx context.Context, userID, feedID int64) (*model.UserFeed, error) {
	row, err := s.queries.GetUserFeed(ctx, sqlc.GetUserFeedParams{
		UserID: userID,
		FeedID: feedID,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toUserFeedModel(row), nil
}

func (s *membershipStore) Upsert(ctx context.Context, m *model.UserFeed) error {
	row, err := s.queries.UpsertUserFeed(ctx, sqlc.UpsertUserFeedParams{
		UserID: m.UserID,
		FeedID: m.FeedID,
		OrgID:  m.OrgID,
		Owner:  m.Owner,
	})
	if err != nil {
		return err
	}
	*m = *toUserFeedModel(row)
	return nil
}

func (s *membershipStore) Delete(ctx context.Context, userID, feedID int64) (bool, error) {
	n, err := s.queries.DeleteUserFeed(ctx, sqlc.DeleteUserFeedParams{
		UserID: userID,
		FeedID: feedID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *membershipStore) ListMemberIDs(ctx context.Context, feedID int64) ([]int64, error) {
	return s.queries.ListFeedMemberIDs(ctx, feedID)
}

func (s *membershipStore) ListOwnerIDs(ctx context.Context, feedID int64) ([]int64, error) {
	return s.queries.ListFeedOwnerIDs(ctx, feedID)
}

func toUserFeedModel(row sqlc.UserFeed) *model.UserFeed {
	return &model.UserFeed{
		UserID:    row.UserID,
		FeedID:    row.FeedID,
		OrgID:     row.OrgID,
		Owner:     row.Owner,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
