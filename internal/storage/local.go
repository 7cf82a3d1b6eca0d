package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	return &LocalStore{baseDir: baseDir}
}

// Dir returns the directory the HTTP server should expose under /static.
func (s *LocalStore) Dir() string { return s.baseDir }

func (s *LocalStore) Save(ctx context.Context, prefix, filename string, r io.Reader, size int64) (string, error) {
	name := uniqueName(prefix, filename)

	dir := filepath.Join(s.baseDir, prefix)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	return "/static/" + prefix + "/" + name, nil
}
