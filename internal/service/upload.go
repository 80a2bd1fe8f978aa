package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"churchthreads.app/api/common"
	"churchthreads.app/api/common/id"
	"churchthreads.app/api/common/metrics"
	"churchthreads.app/api/common/validation"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/storage"
	"churchthreads.app/api/internal/store"
)

const AvatarSize = 256

type UploadParams struct {
	OrgID    int64
	Source   model.UploadSource
	SourceID *int64
	FeedID   *int64
	FileName string
	Reader   io.Reader
}

type UploadResult struct {
	UploadID int64  `json:"uploadId,string"`
	URL      string `json:"url"`
}

type UploadService interface {
	Upload(ctx context.Context, user *model.User, params UploadParams) (*UploadResult, error)
}

type uploadService struct {
	uploadStore store.UploadStore
	txRunner    TxRunner
	feeds       FeedService
	blobs       storage.BlobStore
}

func NewUploadService(uploadStore store.UploadStore, txRunner TxRunner, feeds FeedService, blobs storage.BlobStore) UploadService {
	return &uploadService{
		uploadStore: uploadStore,
		txRunner:    txRunner,
		feeds:       feeds,
		blobs:       blobs,
	}
}

func (s *uploadService) Upload(ctx context.Context, user *model.User, params UploadParams) (*UploadResult, error) {
	if params.OrgID != user.OrgID {
		return nil, ErrForbidden
	}
	if !model.ValidUploadSource(params.Source) {
		return nil, &ValidationError{Fields: []validation.FieldError{{Field: "source", Message: "Invalid upload source"}}}
	}

	if err := s.authorize(ctx, user, params); err != nil {
		return nil, err
	}

	// One byte past the limit is enough to reject an oversized file.
	data, err := io.ReadAll(io.LimitReader(params.Reader, validation.MaxUploadBytes()+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	detected := mimetype.Detect(data)
	mimeType := detected.String()
	source := string(params.Source)
	if err := checkValid(validation.ValidateFile(int64(len(data)), mimeType, params.FileName, source)); err != nil {
		return nil, err
	}
	// The stored extension follows the content, never the client's name.
	ext := strings.TrimPrefix(detected.Extension(), ".")

	if params.Source == model.UploadSourceAvatar {
		data = resizeAvatar(ctx, data, ext)
	}

	key := storage.Key(user.OrgID, source, common.FileNameSlug(params.FileName), ext)
	size, err := s.blobs.Put(ctx, key, bytes.NewReader(data))
	if err != nil {
		slog.ErrorContext(ctx, "failed to store upload", "error", err, "key", key)
		return nil, fmt.Errorf("storing upload: %w", err)
	}

	upload := &model.Upload{
		ID:            id.New(),
		OrgID:         user.OrgID,
		UserID:        user.ID,
		StorageKey:    key,
		Source:        params.Source,
		SourceID:      params.SourceID,
		FileExtension: ext,
		MimeType:      mimeType,
		SizeBytes:     size,
	}

	var replaced *model.Upload
	if params.Source == model.UploadSourceAvatar {
		upload.SourceID = &user.ID
		replaced, err = s.replaceAvatar(ctx, user, upload)
	} else {
		err = s.uploadStore.Create(ctx, upload)
	}
	if err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			slog.WarnContext(ctx, "failed to delete orphaned blob", "error", delErr, "key", key)
		}
		return nil, fmt.Errorf("recording upload: %w", err)
	}

	if replaced != nil {
		if err := s.blobs.Delete(ctx, replaced.StorageKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "failed to delete previous avatar blob", "error", err, "key", replaced.StorageKey)
		}
	}

	metrics.RecordUpload(source, size)
	slog.InfoContext(ctx, "file uploaded",
		"upload_id", upload.ID,
		"source", source,
		"mime_type", mimeType,
		"size_bytes", size,
	)

	return &UploadResult{UploadID: upload.ID, URL: s.blobs.URL(key)}, nil
}

func (s *uploadService) authorize(ctx context.Context, user *model.User, params UploadParams) error {
	if params.Source == model.UploadSourceAvatar {
		return nil
	}
	if params.FeedID == nil {
		return ErrFeedIDRequired
	}

	perms, err := s.feeds.Permissions(ctx, user, *params.FeedID)
	if err != nil {
		return err
	}
	if params.Source == model.UploadSourceThread && !perms.CanPost {
		return ErrForbidden
	}
	if params.Source == model.UploadSourceMessage && !perms.CanMessage {
		return ErrForbidden
	}
	return nil
}

// replaceAvatar swaps the user's avatar record and returns the previous one.
func (s *uploadService) replaceAvatar(ctx context.Context, user *model.User, upload *model.Upload) (*model.Upload, error) {
	var previous *model.Upload
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		old, err := stores.Uploads().GetAvatarByUser(ctx, user.ID)
		switch {
		case err == nil:
			if err := stores.Uploads().Delete(ctx, old.ID); err != nil {
				return fmt.Errorf("deleting previous avatar: %w", err)
			}
			previous = old
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("getting previous avatar: %w", err)
		}

		if err := stores.Uploads().Create(ctx, upload); err != nil {
			return fmt.Errorf("creating avatar upload: %w", err)
		}
		if _, err := stores.Users().SetImage(ctx, user.ID, &upload.ID); err != nil {
			return fmt.Errorf("setting user image: %w", err)
		}
		return nil
	})
	return previous, err
}

// resizeAvatar crops the image to a square AvatarSize thumbnail. Formats the
// imaging package cannot decode or encode are stored as uploaded.
func resizeAvatar(ctx context.Context, data []byte, ext string) []byte {
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return data
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		slog.DebugContext(ctx, "avatar not decodable, storing original", "error", err)
		return data
	}

	thumb := imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format); err != nil {
		slog.WarnContext(ctx, "failed to encode avatar, storing original", "error", err)
		return data
	}
	return buf.Bytes()
}
