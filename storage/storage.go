package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage is the blob store the importer uploads audio to. Upload returns
// the URL the stored object is reachable at.
type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type localStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage creates a Storage backed by a directory on disk, serving
// objects under the given base URL
func NewLocalStorage(dir, baseURL string) (Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %v", err)
	}

	return &localStorage{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *localStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write media file: %v", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *localStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open media file: %v", err)
	}
	return f, nil
}

func (s *localStorage) Delete(_ context.Context, key string) error {
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil {
		return fmt.Errorf("failed to delete media file: %v", err)
	}
	return nil
}

// KeyFromURL recovers the storage key from an upload URL
func KeyFromURL(url string) string {
	idx := strings.LastIndex(url, "/")
	if idx < 0 {
		return url
	}
	return url[idx+1:]
}
