// Package storage provides the object storage port for uploaded artwork
// files, with Google Cloud Storage and local-disk implementations.
package storage

import (
	"context"
	"io"
)

// Uploader stores a file under a key and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (url string, err error)
}
