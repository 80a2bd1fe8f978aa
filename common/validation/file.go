package validation

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Upload sources, mirrored from model.UploadSource so this package stays
// free of internal imports.
const (
	SourceThread  = "thread"
	SourceMessage = "message"
	SourceAvatar  = "avatar"
)

const (
	MiB = 1 << 20

	AvatarMaxBytes  = 5 * MiB
	ThreadMaxBytes  = 10 * MiB
	MessageMaxBytes = 10 * MiB
)

var AllowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"image/heic",
	"image/heif",
}

var sizeLimits = map[string]int64{
	SourceAvatar:  AvatarMaxBytes,
	SourceThread:  ThreadMaxBytes,
	SourceMessage: MessageMaxBytes,
}

var gifNotAllowedFor = []string{SourceAvatar}

// MaxUploadBytes is the largest file any source accepts.
func MaxUploadBytes() int64 {
	var largest int64
	for _, limit := range sizeLimits {
		largest = max(largest, limit)
	}
	return largest
}

// ValidateFile checks an upload's size, detected MIME type and file name for
// the given source.
func ValidateFile(size int64, mimeType, fileName, source string) Result {
	res := Result{Valid: true}

	limit, ok := sizeLimits[source]
	if !ok {
		res.add("source", "Invalid upload source")
		return res
	}

	if size <= 0 {
		res.add("file", "File is empty")
	} else if size > limit {
		res.add("file", "File is too large. Maximum size is %s", humanSize(limit))
	}

	baseType := strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])
	if !slices.Contains(AllowedImageTypes, baseType) {
		res.add("file", "File type %s is not allowed", displayType(baseType))
	} else if baseType == "image/gif" && slices.Contains(gifNotAllowedFor, source) {
		res.add("file", "GIFs are not allowed for %s uploads", source)
	}

	if FileExtension(fileName) == "" {
		res.add("file_name", "File name must have an extension")
	}

	return res
}

// FileExtension returns the lower-case extension without the dot.
func FileExtension(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}

func humanSize(n int64) string {
	return fmt.Sprintf("%dMB", n/MiB)
}

func displayType(t string) string {
	if t == "" {
		return "unknown"
	}
	return t
}
