package store

import (
	"context"

	"churchthreads.app/api/core/db/sqlc"
	"churchthreads.app/api/internal/model"
)

type feedStore struct {
	queries *sqlc.Queries
}

func newFeedStore(queries *sqlc.Queries) FeedStore {
	return &feedStore{queries: queries}
}

func (s *feedStore) GetByID(ctx context.Context, id int64) (*model.Feed, error) {
	row, err := s.queries.GetFeed(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toFeedModel(row), nil
}

func (s *feedStore) GetByOrgAndName(ctx context.Context, orgID int64, name string) (*model.Feed, error) {
	row, err := s.queries.GetFeedByOrgAndName(ctx, sqlc.GetFeedByOrgAndNameParams{
		OrgID: orgID,
		Name:  name,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toFeedModel(row), nil
}

func (s *feedStore) Create(ctx context.Context, feed *model.Feed) error {
	row, err := s.queries.CreateFeed(ctx, sqlc.CreateFeedParams{
		ID:                feed.ID,
		OrgID:             feed.OrgID,
		Name:              feed.Name,
		Description:       feed.Description,
		Privacy:           string(feed.Privacy),
		MemberPermissions: toStrings(feed.MemberPermissions),
	})
	if err != nil {
		return err
	}
	*feed = *toFeedModel(row)
	return nil
}

func (s *feedStore) ListByOrg(ctx context.Context, orgID int64) ([]model.Feed, error) {
	rows, err := s.queries.ListOrgFeeds(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return toFeedModels(rows), nil
}

func (s *feedStore) ListOpen(ctx context.Context, orgID int64) ([]model.Feed, error) {
	rows, err := s.queries.ListOpenFeeds(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return toFeedModels(rows), nil
}

func (s *feedStore) ListByIDs(ctx context.Context, ids []int64) ([]model.Feed, error) {
	if len(ids) == 0 {
		return []model.Feed{}, nil
	}
	rows, err := s.queries.ListFeedsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toFeedModels(rows), nil
}

func (s *feedStore) ListForUser(ctx context.Context, userID int64) ([]model.FeedWithMembership, error) {
	rows, err := s.queries.ListUserFeedsWithMembership(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.FeedWithMembership, len(rows))
	for i, row := range rows {
		result[i] = model.FeedWithMembership{
			Feed: *toFeedModel(sqlc.Feed{
				ID:                row.ID,
				OrgID:             row.OrgID,
				Name:              row.Name,
				Description:       row.Description,
				Privacy:           row.Privacy,
				MemberPermissions: row.MemberPermissions,
				CreatedAt:         row.CreatedAt,
				UpdatedAt:         row.UpdatedAt,
			}),
			Owner: row.Owner,
		}
	}
	return result, nil
}

func (s *feedStore) ListOwned(ctx context.Context, userID int64) ([]model.Feed, error) {
	rows, err := s.queries.ListOwnedFeeds(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toFeedModels(rows), nil
}

func toFeedModel(row sqlc.Feed) *model.Feed {
	return &model.Feed{
		ID:                row.ID,
		OrgID:             row.OrgID,
		Name:              row.Name,
		Description:       row.Description,
		Privacy:           model.FeedPrivacy(row.Privacy),
		MemberPermissions: fromStrings[model.MemberPermission](row.MemberPermissions),
		CreatedAt:         row.CreatedAt.Time,
		UpdatedAt:         row.UpdatedAt.Time,
	}
}

func toFeedModels(rows []sqlc.Feed) []model.Feed {
	result := make([]model.Feed, len(rows))
	for i, row := range rows {
		result[i] = *toFeedModel(row)
	}
	return result
}
