package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"churchthreads.app/api/core/db/sqlc"
	"churchthreads.app/api/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByWorkOSID(ctx context.Context, workosID string) (*model.User, error) {
	row, err := s.queries.GetUserByWorkOSID(ctx, &workosID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByOrgAndEmail(ctx context.Context, orgID int64, email string) (*model.User, error) {
	row, err := s.queries.GetUserByOrgAndEmail(ctx, sqlc.GetUserByOrgAndEmailParams{
		OrgID: orgID,
		Email: email,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toUserModel(row), nil
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row, err := s.queries.CreateUser(ctx, sqlc.CreateUserParams{
		ID:                   user.ID,
		OrgID:                user.OrgID,
		Email:                user.Email,
		Name:                 user.Name,
		Role:                 string(user.Role),
		NotificationChannels: toStrings(user.NotificationChannels),
	})
	if err != nil {
		return err
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) UpdateProfile(ctx context.Context, id int64, name string, channels []model.NotificationChannel) (*model.User, error) {
	row, err := s.queries.UpdateUserProfile(ctx, sqlc.UpdateUserProfileParams{
		ID:                   id,
		Name:                 name,
		NotificationChannels: toStrings(channels),
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) SetWorkOSID(ctx context.Context, id int64, workosID string) (*model.User, error) {
	row, err := s.queries.SetUserWorkOSID(ctx, sqlc.SetUserWorkOSIDParams{
		ID:       id,
		WorkosID: &workosID,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) SetImage(ctx context.Context, id int64, imageID *int64) (*model.User, error) {
	row, err := s.queries.SetUserImage(ctx, sqlc.SetUserImageParams{
		ID:      id,
		ImageID: imageID,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteUser(ctx, id)
}

func (s *userStore) ListAdmins(ctx context.Context, orgID int64) ([]model.User, error) {
	rows, err := s.queries.ListOrgAdmins(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return toUserModels(rows), nil
}

func (s *userStore) ListByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	rows, err := s.queries.ListUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toUserModels(rows), nil
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:                   row.ID,
		OrgID:                row.OrgID,
		Email:                row.Email,
		Name:                 row.Name,
		Role:                 model.Role(row.Role),
		WorkOSID:             row.WorkosID,
		ImageID:              row.ImageID,
		NotificationChannels: fromStrings[model.NotificationChannel](row.NotificationChannels),
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
	}
}

func toUserModels(rows []sqlc.User) []model.User {
	result := make([]model.User, len(rows))
	for i, row := range rows {
		result[i] = *toUserModel(row)
	}
	return result
}
