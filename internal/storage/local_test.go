package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{BasePath: filepath.Join(t.TempDir(), "uploads", "portfolio")})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_PutAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestLocal(t)

	ref, err := s.Put(ctx, "photo-1-2.jpg", strings.NewReader("jpeg bytes"), 10, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/portfolio/photo-1-2.jpg", ref.URL)
	assert.Empty(t, ref.PublicID)

	data, err := os.ReadFile(filepath.Join(s.BasePath(), "photo-1-2.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	require.NoError(t, s.Delete(ctx, ref))
	exists, err := s.Exists(ref)
	require.NoError(t, err)
	assert.False(t, exists)

	// already gone
	assert.NoError(t, s.Delete(ctx, ref))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestLocalStorage_FailedPutLeavesNothing(t *testing.T) {
	s := newTestLocal(t)

	_, err := s.Put(context.Background(), "broken.mp4", failingReader{}, 100, "video/mp4")
	require.Error(t, err)

	entries, err := os.ReadDir(s.BasePath())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	s := newTestLocal(t)

	_, err := s.Put(ctx, "../evil.jpg", strings.NewReader("x"), 1, "image/jpeg")
	assert.ErrorIs(t, err, ErrInvalidRef)

	for _, url := range []string{
		"/uploads/portfolio/../../secret",
		"/uploads/portfolio/",
		"/etc/passwd",
		"",
	} {
		assert.ErrorIs(t, s.Delete(ctx, BlobRef{URL: url}), ErrInvalidRef, url)
	}
}

func TestLocalStorage_CustomPublicPath(t *testing.T) {
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), PublicPath: "media/"})
	require.NoError(t, err)

	ref, err := s.Put(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/media/a.png", ref.URL)
}
