package store

import (
	"context"

	"churchthreads.app/api/core/db/sqlc"
	"churchthreads.app/api/internal/model"
)

type uploadStore struct {
	queries *sqlc.Queries
}

func newUploadStore(queries *sqlc.Queries) UploadStore {
	return &uploadStore{queries: queries}
}

func (s *uploadStore) GetByID(ctx context.Context, id int64) (*model.Upload, error) {
	row, err := s.queries.GetUpload(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toUploadModel(row), nil
}

func (s *uploadStore) GetAvatarByUser(ctx context.Context, userID int64) (*model.Upload, error) {
	row, err := s.queries.GetAvatarUploadByUser(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return toUploadModel(row), nil
}

func (s *uploadStore) Create(ctx context.Context, upload *model.Upload) error {
	row, err := s.queries.CreateUpload(ctx, sqlc.CreateUploadParams{
		ID:            upload.ID,
		OrgID:         upload.OrgID,
		UserID:        upload.UserID,
		StorageKey:    upload.StorageKey,
		Source:        string(upload.Source),
		SourceID:      upload.SourceID,
		FileExtension: upload.FileExtension,
		MimeType:      upload.MimeType,
		SizeBytes:     upload.SizeBytes,
	})
	if err != nil {
		return err
	}
	*upload = *toUploadModel(row)
	return nil
}

func (s *uploadStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteUpload(ctx, id)
}

func toUploadModel(row sqlc.Upload) *model.Upload {
	return &model.Upload{
		ID:            row.ID,
		OrgID:         row.OrgID,
		UserID:        row.UserID,
		StorageKey:    row.StorageKey,
		Source:        model.UploadSource(row.Source),
		SourceID:      row.SourceID,
		FileExtension: row.FileExtension,
		MimeType:      row.MimeType,
		SizeBytes:     row.SizeBytes,
		CreatedAt:     row.CreatedAt.Time,
	}
}
