package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kitchen-guide/internal/model"
)

// localStore writes uploads under a directory served at /static/uploads.
type localStore struct {
	uploadDir string
	maxBytes  int64
	logger    zerolog.Logger
}

// NewLocalStore creates a filesystem-backed image store. The upload
// directory is created if it does not exist.
func NewLocalStore(uploadDir string, maxBytes int64, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", uploadDir, err)
	}

	logger = logger.With().Str("component", "local-store").Logger()
	logger.Info().Str("upload_dir", uploadDir).Msg("local image store initialised")

	return &localStore{
		uploadDir: uploadDir,
		maxBytes:  maxBytes,
		logger:    logger,
	}, nil
}

// Save writes the content to <uploadDir>/<uuid>.<ext> and returns the
// relative URL path it is served from.
func (s *localStore) Save(ctx context.Context, content []byte, originalFilename string) (string, error) {
	ext, err := validate(content, originalFilename, s.maxBytes)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s.%s", uuid.New(), ext)
	path := filepath.Join(s.uploadDir, filename)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write uploaded file")
		// Discard any partial write so no dangling reference survives.
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}

	s.logger.Debug().
		Str("path", path).
		Int("bytes", len(content)).
		Msg("uploaded file written")

	return "/static/uploads/" + filename, nil
}
