package dto

import "mime/multipart"

// UploadForm is the multipart body of POST /upload.
type UploadForm struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	FileName string                `form:"fileName"`
	OrgID    int64                 `form:"orgId" binding:"required"`
	Source   string                `form:"source" binding:"required"`
	SourceID *int64                `form:"sourceId"`
	FeedID   *int64                `form:"feedId"`
}
