package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Config describes where files land on disk and the public path they are
// served from.
type Config struct {
	Dir       string
	URLPrefix string
}

// Service implements the FileStorage interface against the local filesystem.
// Files are written to a temporary name first and renamed into place, so a
// failed write never leaves a partial file behind.
type Service struct {
	dir       string
	urlPrefix string
	logger    zerolog.Logger
}

// New constructs a disk-backed storage service, creating the directory if needed.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("upload directory must be provided")
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	prefix := cfg.URLPrefix
	if prefix == "" {
		prefix = "/uploads"
	}

	return &Service{
		dir:       cfg.Dir,
		urlPrefix: prefix,
		logger:    logger.With().Str("component", "localfs").Logger(),
	}, nil
}

// Upload persists the payload under the given name and returns the public URL.
func (s *Service) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	destination := filepath.Join(s.dir, filepath.Base(name))

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, reader); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	if err := os.Rename(tmp.Name(), destination); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to move upload into place: %w", err)
	}

	s.logger.Info().Str("file", filepath.Base(name)).Msg("file stored on disk")

	return s.urlPrefix + "/" + filepath.Base(name), nil
}

// Dir returns the directory files are persisted to, for static serving.
func (s *Service) Dir() string {
	return s.dir
}
