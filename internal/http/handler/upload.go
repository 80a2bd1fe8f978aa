package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/common/validation"
	"churchthreads.app/api/internal/http/dto"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/service"
)

// multipartOverhead leaves room for the non-file form fields.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploadService service.UploadService
}

func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload accepts multipart form fields file, fileName, orgId, source and the
// optional sourceId and feedId. Answers {uploadId, url} or {error}.
func (h *UploadHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, validation.MaxUploadBytes()+multipartOverhead)

	var form dto.UploadForm
	if err := c.ShouldBind(&form); err != nil {
		slog.WarnContext(ctx, "invalid upload form", "error", err)
		badRequest(c, "file, orgId and source are required")
		return
	}

	file, err := form.File.Open()
	if err != nil {
		slog.ErrorContext(ctx, "failed to open uploaded file", "error", err)
		badRequest(c, "could not read file")
		return
	}
	defer file.Close()

	fileName := form.FileName
	if fileName == "" {
		fileName = form.File.Filename
	}

	result, err := h.uploadService.Upload(ctx, currentUser(c), service.UploadParams{
		OrgID:    form.OrgID,
		Source:   model.UploadSource(form.Source),
		SourceID: form.SourceID,
		FeedID:   form.FeedID,
		FileName: fileName,
		Reader:   file,
	})
	if err != nil {
		respondError(c, err, "failed to upload file")
		return
	}

	c.JSON(http.StatusOK, result)
}
