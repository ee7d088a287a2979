package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	DefaultLocalBasePath   = "uploads/portfolio"
	DefaultLocalPublicPath = "/uploads/portfolio"
)

// LocalStorage keeps files under one directory served statically at publicPath.
type LocalStorage struct {
	basePath   string
	publicPath string
}

// NewLocalStorage creates the root directory once.
func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = DefaultLocalBasePath
	}
	publicPath := cfg.PublicPath
	if publicPath == "" {
		publicPath = DefaultLocalPublicPath
	}
	publicPath = "/" + strings.Trim(publicPath, "/")

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage path: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath:   abs,
		publicPath: publicPath,
	}, nil
}

func (s *LocalStorage) BasePath() string   { return s.basePath }
func (s *LocalStorage) PublicPath() string { return s.publicPath }

// Put writes into a temp file inside the root and renames it into place.
func (s *LocalStorage) Put(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (BlobRef, error) {
	if err := validateName(name); err != nil {
		return BlobRef{}, err
	}
	if err := ctx.Err(); err != nil {
		return BlobRef{}, err
	}

	tmp, err := os.CreateTemp(s.basePath, ".upload-*")
	if err != nil {
		return BlobRef{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := io.Copy(tmp, reader); err != nil {
		_ = tmp.Close()
		cleanup()
		return BlobRef{}, fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return BlobRef{}, fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		cleanup()
		return BlobRef{}, fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.basePath, name)); err != nil {
		cleanup()
		return BlobRef{}, fmt.Errorf("failed to move file into place: %w", err)
	}

	return BlobRef{URL: path.Join(s.publicPath, name)}, nil
}

// Delete resolves the file from the URL. Missing files are ignored.
func (s *LocalStorage) Delete(ctx context.Context, ref BlobRef) error {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists reports whether the referenced file is on disk.
func (s *LocalStorage) Exists(ref BlobRef) (bool, error) {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *LocalStorage) resolve(ref BlobRef) (string, error) {
	prefix := s.publicPath + "/"
	if !strings.HasPrefix(ref.URL, prefix) {
		return "", fmt.Errorf("%w: %q is outside %s", ErrInvalidRef, ref.URL, s.publicPath)
	}
	name := strings.TrimPrefix(ref.URL, prefix)
	if err := validateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, name), nil
}

// validateName only admits a single path element.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: bad storage name %q", ErrInvalidRef, name)
	}
	return nil
}
