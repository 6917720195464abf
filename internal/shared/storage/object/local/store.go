package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-screener/internal/shared/storage/object"
)

// Store implements object.Uploader using the local filesystem. It exists for
// development and tests; the S3 store is the production backend.
type Store struct {
	baseDir string
}

// New creates a new local uploader rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Upload writes the payload to disk and returns a file:// URL.
func (s *Store) Upload(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := filepath.Clean(name)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object name %q", name)
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	fullPath := filepath.Join(s.baseDir, clean)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}

	abs, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

var _ object.Uploader = (*Store)(nil)
