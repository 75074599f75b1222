package storage

import (
	"context"
	"path/filepath"
	"strings"

	"kitchen-guide/internal/model"
)

// Store persists uploaded image bytes and hands back a URL reference.
// Implementations must not leave a usable reference behind on failure.
type Store interface {
	// Save validates and persists content under a freshly generated name
	// derived from the original filename's extension, returning the URL
	// the image is served from.
	Save(ctx context.Context, content []byte, originalFilename string) (string, error)
}

// validExtensions is the closed set of accepted image formats.
var validExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"webp": true,
}

// ValidImageExtension reports whether the filename carries an accepted
// image extension.
func ValidImageExtension(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return validExtensions[strings.ToLower(ext)]
}

// ContentType maps a filename to its image MIME type.
func ContentType(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	}
	return "application/octet-stream"
}

// validate applies the shared upload checks before any write is attempted.
func validate(content []byte, originalFilename string, maxBytes int64) (string, error) {
	if !ValidImageExtension(originalFilename) {
		return "", model.ErrUnsupportedMediaType
	}
	if int64(len(content)) > maxBytes {
		return "", model.ErrPayloadTooLarge
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalFilename), "."))
	return ext, nil
}
