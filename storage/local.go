package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader stores files on the local filesystem, for development and
// single-host deployments. Files land under Dir and are served from
// BaseURL + "/uploads/".
type LocalUploader struct {
	dir     string
	baseURL string
}

// NewLocalUploader returns an uploader writing under dir. baseURL is the
// externally reachable origin, e.g. "https://shop.example.com".
func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Dir returns the upload root, for static serving and backups.
func (u *LocalUploader) Dir() string {
	return u.dir
}

func (u *LocalUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Keys are server-generated, but reject traversal anyway.
	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}

	path := filepath.Join(u.dir, cleaned)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/%s", u.baseURL, cleaned), nil
}
