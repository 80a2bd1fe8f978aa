package model

import "time"

type UploadSource string

const (
	UploadSourceThread  UploadSource = "thread"
	UploadSourceMessage UploadSource = "message"
	UploadSourceAvatar  UploadSource = "avatar"
)

func ValidUploadSource(s UploadSource) bool {
	return s == UploadSourceThread || s == UploadSourceMessage || s == UploadSourceAvatar
}

type Upload struct {
	ID            int64        `json:"id"`
	OrgID         int64        `json:"org_id"`
	UserID        int64        `json:"user_id"`
	StorageKey    string       `json:"storage_key"`
	Source        UploadSource `json:"source"`
	SourceID      *int64       `json:"source_id,omitempty"`
	FileExtension string       `json:"file_extension"`
	MimeType      string       `json:"mime_type"`
	SizeBytes     int64        `json:"size_bytes"`
	CreatedAt     time.Time    `json:"created_at"`
}
