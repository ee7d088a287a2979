package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studio_backend/internal/media"
	"studio_backend/internal/models"
	"studio_backend/internal/repositories"
	"studio_backend/internal/storage"
)

// memoryBlobs is a BlobStore that behaves like the remote backend.
type memoryBlobs struct {
	mu        sync.Mutex
	objects   map[string][]byte
	puts      []string
	deletes   []storage.BlobRef
	failPutAt int // 1-based; 0 disables
	deleteErr error
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{objects: map[string][]byte{}}
}

func (m *memoryBlobs) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (storage.BlobRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts = append(m.puts, name)
	if m.failPutAt > 0 && len(m.puts) == m.failPutAt {
		return storage.BlobRef{}, errors.New("remote store unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return storage.BlobRef{}, err
	}
	id := "portfolio/" + name
	m.objects[id] = data
	return storage.BlobRef{URL: "https://cdn.test/" + id, PublicID: id}, nil
}

func (m *memoryBlobs) Delete(ctx context.Context, ref storage.BlobRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, ref)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, ref.PublicID)
	return nil
}

func (m *memoryBlobs) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// failingAppendRepo fails the commit step.
type failingAppendRepo struct {
	repositories.PortfolioRepository
}

func (failingAppendRepo) AppendMedia(db *gorm.DB, portfolioID string, media []models.Media) error {
	return errors.New("connection lost")
}

func candidate(filename, mime string, content string) media.Candidate {
	return media.Candidate{
		Filename: filename,
		MimeType: mime,
		Size:     int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func sizedCandidate(filename, mime string, size int64) media.Candidate {
	c := candidate(filename, mime, "x")
	c.Size = size
	return c
}

func createTestPortfolio(t *testing.T, db *gorm.DB, repo repositories.PortfolioRepository) *models.Portfolio {
	t.Helper()
	title := fmt.Sprintf("Case study %s", t.Name())
	p, err := models.NewPortfolio(models.PortfolioFields{Title: &title})
	require.NoError(t, err)
	require.NoError(t, repo.Create(db, p))
	return p
}
