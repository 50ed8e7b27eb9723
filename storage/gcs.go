package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GCSUploader writes artwork files to a Google Cloud Storage bucket.
type GCSUploader struct {
	client *storage.Client
	bucket string
	log    *zap.SugaredLogger
}

// NewGCSUploader builds a GCS-backed uploader from the environment.
// GCS_BUCKET is required; GCS_CREDENTIALS_FILE is optional and falls
// back to application default credentials.
func NewGCSUploader(ctx context.Context, log *zap.SugaredLogger) (*GCSUploader, error) {
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("GCS_BUCKET is not set")
	}

	var opts []option.ClientOption
	if creds := os.Getenv("GCS_CREDENTIALS_FILE"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	log.Infow("object storage initialized", "backend", "gcs", "bucket", bucket)
	return &GCSUploader{client: client, bucket: bucket, log: log}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	w := u.client.Bucket(u.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", key, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, key), nil
}
