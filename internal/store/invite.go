package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"churchthreads.app/api/core/db/sqlc"
	"churchthreads.app/api/internal/model"
)

type inviteStore struct {
	queries *sqlc.Queries
}

func newInviteStore(queries *sqlc.Queries) InviteStore {
	return &inviteStore{queries: queries}
}

func (s *inviteStore) Create(ctx context.Context, inv *model.Invite) error {
	row, err := s.queries.CreateInvite(ctx, sqlc.CreateInviteParams{
		ID:        inv.ID,
		OrgID:     inv.OrgID,
		Type:      string(inv.Type),
		Name:      inv.Name,
		Email:     inv.Email,
		FeedIds:   inv.FeedIDs,
		Token:     inv.Token,
		CreatedBy: inv.CreatedBy,
		ExpiresAt: timestamptz(inv.ExpiresAt),
		MaxUses:   inv.MaxUses,
	})
	if err != nil {
		return err
	}
	*inv = *toInviteModel(row)
	return nil
}

func (s *inviteStore) GetByID(ctx context.Context, id int64) (*model.Invite, error) {
	row, err := s.queries.GetInvite(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInviteModel(row), nil
}

func (s *inviteStore) GetByToken(ctx context.Context, token string) (*model.Invite, error) {
	row, err := s.queries.GetInviteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInviteModel(row), nil
}

func (s *inviteStore) GetActiveByEmail(ctx context.Context, orgID int64, email string) (*model.Invite, error) {
	row, err := s.queries.GetActiveInviteByOrgAndEmail(ctx, sqlc.GetActiveInviteByOrgAndEmailParams{
		OrgID: orgID,
		Email: email,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInviteModel(row), nil
}

func (s *inviteStore) ConsumeUse(ctx context.Context, id int64) (*model.Invite, error) {
	row, err := s.queries.ConsumeInviteUse(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInviteModel(row), nil
}

func (s *inviteStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteInvite(ctx, id)
}

func (s *inviteStore) ListByOrg(ctx context.Context, orgID int64) ([]model.Invite, error) {
	rows, err := s.queries.ListInvitesByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return toInviteModels(rows), nil
}

func (s *inviteStore) DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error) {
	return s.queries.DeleteInvitesExpiredBefore(ctx, timestamptz(before))
}

func toInviteModel(row sqlc.Invite) *model.Invite {
	return &model.Invite{
		ID:         row.ID,
		OrgID:      row.OrgID,
		Type:       model.InviteType(row.Type),
		Name:       row.Name,
		Email:      row.Email,
		FeedIDs:    row.FeedIds,
		Token:      row.Token,
		CreatedBy:  row.CreatedBy,
		ExpiresAt:  row.ExpiresAt.Time,
		MaxUses:    row.MaxUses,
		UseCount:   row.UseCount,
		LastUsedAt: timePtr(row.LastUsedAt),
		CreatedAt:  row.CreatedAt.Time,
	}
}

func toInviteModels(rows []sqlc.Invite) []model.Invite {
	result := make([]model.Invite, len(rows))
	for i, row := range rows {
		result[i] = *toInviteModel(row)
	}
	return result
}
