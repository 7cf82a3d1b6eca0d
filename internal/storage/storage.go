// Package storage abstracts where uploaded images end up: a local directory
// served under /static during development, or a MinIO bucket in production.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketplace/internal/config"
)

// FileStore saves an uploaded file and returns the URL path clients use to
// fetch it back.
type FileStore interface {
	Save(ctx context.Context, prefix, filename string, r io.Reader, size int64) (string, error)
}

// New picks the implementation from config.
func New(cfg config.StorageConfig) (FileStore, error) {
	switch cfg.Driver {
	case "minio":
		return NewMinioStore(cfg)
	case "local", "":
		return NewLocalStore(cfg.LocalDir), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// uniqueName keeps the extension but replaces the rest, so user-supplied
// names never reach the filesystem or bucket.
func uniqueName(prefix, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%s_%s_%d%s", prefix, uuid.New().String()[:8], time.Now().Unix(), ext)
}

func contentTypeForExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
