package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryObjects is an in-memory ObjectClient.
type memoryObjects struct {
	mu        sync.Mutex
	objects   map[string][]byte
	putErr    error
	deleteErr map[string]error
	deletes   []string
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: map[string][]byte{}, deleteErr: map[string]error{}}
}

func (m *memoryObjects) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memoryObjects) DeleteObject(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, key)
	if err, ok := m.deleteErr[key]; ok {
		return err
	}
	if _, ok := m.objects[key]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, key)
	return nil
}

func (m *memoryObjects) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestRemoteStorage_PutLayout(t *testing.T) {
	client := newMemoryObjects()
	s := NewRemoteStorage(client, "")

	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 5000)...)
	ref, err := s.Put(context.Background(), "cover-1-2.png", bytes.NewReader(body), int64(len(body)), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/portfolio/image/cover-1-2.png", ref.URL)
	assert.Equal(t, "portfolio/cover-1-2.png", ref.PublicID)
	assert.Equal(t, body, client.objects["portfolio/image/cover-1-2.png"], "sniffed head must be replayed")
}

func TestRemoteStorage_DetectionOverridesDeclaredType(t *testing.T) {
	client := newMemoryObjects()
	s := NewRemoteStorage(client, "work")

	// real PNG bytes declared as video land under image/
	_, err := s.Put(context.Background(), "a.mp4", bytes.NewReader(pngHeader), int64(len(pngHeader)), "video/mp4")
	require.NoError(t, err)
	assert.Contains(t, client.objects, "work/image/a.mp4")

	// undetectable bytes fall back to the declared type
	_, err = s.Put(context.Background(), "b.mp4", strings.NewReader("plain text"), 10, "video/mp4")
	require.NoError(t, err)
	assert.Contains(t, client.objects, "work/video/b.mp4")
}

func TestRemoteStorage_PutFailure(t *testing.T) {
	client := newMemoryObjects()
	client.putErr = errors.New("503 slow down")
	s := NewRemoteStorage(client, "portfolio")

	_, err := s.Put(context.Background(), "a.jpg", bytes.NewReader(pngHeader), 1, "image/jpeg")
	require.Error(t, err)
	assert.Empty(t, client.objects)
}

func TestRemoteStorage_DeleteTriesBothTypes(t *testing.T) {
	ctx := context.Background()
	client := newMemoryObjects()
	s := NewRemoteStorage(client, "portfolio")

	ref, err := s.Put(ctx, "clip.mp4", strings.NewReader("not sniffable"), 13, "video/mp4")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, ref))
	assert.Equal(t, []string{"portfolio/image/clip.mp4", "portfolio/video/clip.mp4"}, client.deletes)
	assert.Empty(t, client.objects)

	// both interpretations already gone
	assert.NoError(t, s.Delete(ctx, ref))
}

func TestRemoteStorage_DeleteErrors(t *testing.T) {
	ctx := context.Background()
	client := newMemoryObjects()
	s := NewRemoteStorage(client, "portfolio")
	ref := BlobRef{PublicID: "portfolio/x.jpg"}

	// failure on the non-matching interpretation is swallowed
	client.objects["portfolio/image/x.jpg"] = []byte("x")
	client.deleteErr["portfolio/video/x.jpg"] = errors.New("boom")
	assert.NoError(t, s.Delete(ctx, ref))

	// nothing deleted and a real failure surfaces
	client.deleteErr["portfolio/image/x.jpg"] = errors.New("forbidden")
	assert.Error(t, s.Delete(ctx, ref))

	assert.ErrorIs(t, s.Delete(ctx, BlobRef{URL: "https://cdn.example.com/a"}), ErrInvalidRef)
}
