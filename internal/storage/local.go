package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes images below a directory that the router serves at BaseURL.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "recipes"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalStore) Save(ctx context.Context, data []byte, contentType string) (string, error) {
	key := objectKey(contentType)
	if err := os.WriteFile(filepath.Join(s.Dir, filepath.FromSlash(key)), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return s.BaseURL + "/" + key, nil
}
