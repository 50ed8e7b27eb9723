package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalUploaderUpload(t *testing.T) {
	dir := t.TempDir()
	up := NewLocalUploader(dir, "https://shop.example.com/")

	url, err := up.Upload(context.Background(), "dtf-orders/123-abc-logo.png", "image/png",
		strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://shop.example.com/uploads/dtf-orders/123-abc-logo.png" {
		t.Fatalf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "dtf-orders", "123-abc-logo.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("content = %q", data)
	}
}

func TestLocalUploaderRejectsTraversal(t *testing.T) {
	up := NewLocalUploader(t.TempDir(), "http://localhost:8080")

	for _, key := range []string{"../escape.png", "/etc/passwd", "a/../../b.png"} {
		if _, err := up.Upload(context.Background(), key, "image/png", strings.NewReader("x")); err == nil {
			t.Fatalf("key %q accepted", key)
		}
	}
}

func TestLocalUploaderCanceledContext(t *testing.T) {
	up := NewLocalUploader(t.TempDir(), "http://localhost:8080")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := up.Upload(ctx, "dtf-orders/a.png", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
