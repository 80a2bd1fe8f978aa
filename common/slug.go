package common

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
)

const maxSlugLength = 60

var (
	ErrEmptySlug = errors.New("slug cannot be empty")
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify lower-cases input and collapses everything outside [a-z0-9] into
// single hyphens. When input yields nothing, fallback is slugified instead.
func Slugify(input, fallback string) (string, error) {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}

// FileNameSlug turns an uploaded file name into a storage-safe basename
// without its extension, e.g. "Sunday Service (1).JPG" -> "sunday-service-1".
func FileNameSlug(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	slug, err := Slugify(base, "file")
	if err != nil {
		return "file"
	}
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}

func slugify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	slug := nonSlugChars.ReplaceAllString(lower, "-")
	return strings.Trim(slug, "-")
}
