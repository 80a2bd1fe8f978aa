package store

import (
	"context"

	"churchthreads.app/api/core/db/sqlc"
	"churchthreads.app/api/internal/model"
)

type emailStore struct {
	queries *sqlc.Queries
}

func newEmailStore(queries *sqlc.Queries) EmailStore {
	return &emailStore{queries: queries}
}

func (s *emailStore) Create(ctx context.Context, email *model.Email) error {
	row, err := s.queries.CreateEmail(ctx, sqlc.CreateEmailParams{
		ID:        email.ID,
		OrgID:     email.OrgID,
		UserID:    email.UserID,
		JobKey:    email.JobKey,
		MessageID: email.MessageID,
		ToAddress: email.ToAddress,
		Subject:   email.Subject,
		Status:    string(email.Status),
	})
	if err != nil {
		return err
	}
	*email = *toEmailModel(row)
	return nil
}

func (s *emailStore) GetByMessageID(ctx context.Context, messageID string) (*model.Email, error) {
	row, err := s.queries.GetEmailByMessageID(ctx, messageID)
	if err != nil {
		return nil, notFound(err)
	}
	return toEmailModel(row), nil
}

func (s *emailStore) GetByJobAndUser(ctx context.Context, jobKey string, userID int64) (*model.Email, error) {
	row, err := s.queries.GetEmailByJobAndUser(ctx, sqlc.GetEmailByJobAndUserParams{
		JobKey: &jobKey,
		UserID: &userID,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toEmailModel(row), nil
}

func (s *emailStore) UpdateStatus(ctx context.Context, id int64, status model.EmailStatus) (*model.Email, error) {
	row, err := s.queries.UpdateEmailStatus(ctx, sqlc.UpdateEmailStatusParams{
		ID:     id,
		Status: string(status),
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toEmailModel(row), nil
}

func (s *emailStore) CreateEvent(ctx context.Context, event *model.EmailEvent) error {
	row, err := s.queries.CreateEmailEvent(ctx, sqlc.CreateEmailEventParams{
		ID:        event.ID,
		EmailID:   event.EmailID,
		EventType: event.EventType,
		Payload:   event.Payload,
	})
	if err != nil {
		return err
	}
	event.ReceivedAt = row.ReceivedAt.Time
	return nil
}

func toEmailModel(row sqlc.Email) *model.Email {
	return &model.Email{
		ID:        row.ID,
		OrgID:     row.OrgID,
		UserID:    row.UserID,
		JobKey:    row.JobKey,
		MessageID: row.MessageID,
		ToAddress: row.ToAddress,
		Subject:   row.Subject,
		Status:    model.EmailStatus(row.Status),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
