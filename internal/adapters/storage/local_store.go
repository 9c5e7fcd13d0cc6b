package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore implements the object store provider on the local filesystem.
// Used by the CLI and in tests; object keys map to paths under the root.
type LocalStore struct {
	root string
}

// NewLocalStore creates a filesystem-backed store rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{root: dir}
}

// Upload copies a local file to {root}/{objectKey}.
func (s *LocalStore) Upload(_ context.Context, localPath, objectKey string) error {
	return copyFile(localPath, filepath.Join(s.root, filepath.FromSlash(objectKey)))
}

// Download copies {root}/{objectKey} to a local file.
func (s *LocalStore) Download(_ context.Context, objectKey, localPath string) error {
	return copyFile(filepath.Join(s.root, filepath.FromSlash(objectKey)), localPath)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return out.Close()
}
