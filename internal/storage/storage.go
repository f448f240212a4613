package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage persists uploaded binaries (avatars, audit screenshots) and
// returns a URL the frontend can embed.
type Storage interface {
	Save(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
}

// MaxUploadSize caps a single upload at 10 MiB.
const MaxUploadSize = 10 << 20

var allowedContentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
}

func ValidateFileSize(size int64) error {
	if size > MaxUploadSize {
		return fmt.Errorf("file size %d exceeds maximum allowed size of %d bytes", size, MaxUploadSize)
	}
	return nil
}

func ValidateContentType(contentType string) error {
	for _, allowed := range allowedContentTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("content type %s is not allowed", contentType)
}

// LocalStorage writes uploads to a directory on disk, for single-node
// deployments without an object store.
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalStorage) Save(_ context.Context, filename, _ string, body io.Reader, _ int64) (string, error) {
	name := uuid.New().String() + filepath.Ext(filename)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return fmt.Sprintf("%s/%s", s.baseURL, name), nil
}
