package workers

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"studio_backend/internal/logger"
	"studio_backend/internal/repositories"
	"studio_backend/internal/storage"

	"gorm.io/gorm"
)

const tempFilePrefix = ".upload-"

// OrphanWorker removes files under the local storage root that no media
// entry references, e.g. blobs left behind by a failed compensating delete.
// Files younger than grace are kept so in-flight uploads are never touched.
type OrphanWorker struct {
	db       *gorm.DB
	repo     repositories.PortfolioRepository
	local    *storage.LocalStorage
	blobs    storage.BlobStore
	interval time.Duration
	grace    time.Duration
	now      func() time.Time
}

// NewOrphanWorker deletes through blobs so removals are observed like any
// other delete; local is used for listing.
func NewOrphanWorker(
	db *gorm.DB,
	repo repositories.PortfolioRepository,
	local *storage.LocalStorage,
	blobs storage.BlobStore,
	interval, grace time.Duration,
) *OrphanWorker {
	return &OrphanWorker{
		db:       db,
		repo:     repo,
		local:    local,
		blobs:    blobs,
		interval: interval,
		grace:    grace,
		now:      time.Now,
	}
}

// Start запускает периодическую очистку
func (w *OrphanWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *OrphanWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Orphan worker stopped")
			return
		case <-ticker.C:
			removed, err := w.SweepOnce(ctx)
			if err != nil {
				logger.Error("Orphan sweep failed", "error", err)
			} else if removed > 0 {
				logger.Info("Removed orphaned upload files", "count", removed)
			}
		}
	}
}

// SweepOnce returns how many files were removed.
func (w *OrphanWorker) SweepOnce(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.local.BasePath())
	if err != nil {
		return 0, fmt.Errorf("list storage root: %w", err)
	}

	cutoff := w.now().Add(-w.grace)
	removed := 0
	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		// leftovers of an interrupted Put
		if strings.HasPrefix(e.Name(), tempFilePrefix) {
			if err := os.Remove(filepath.Join(w.local.BasePath(), e.Name())); err == nil {
				removed++
			}
			continue
		}
		candidates = append(candidates, e.Name())
	}
	if len(candidates) == 0 {
		return removed, nil
	}

	// by file name, so rows stored under an earlier public path still count
	referenced, err := w.repo.ReferencedFileNames(w.db.WithContext(ctx), candidates)
	if err != nil {
		return removed, fmt.Errorf("look up references: %w", err)
	}

	for _, name := range candidates {
		if referenced[name] {
			continue
		}
		ref := storage.BlobRef{URL: path.Join(w.local.PublicPath(), name)}
		if err := w.blobs.Delete(ctx, ref); err != nil {
			logger.Warn("Failed to remove orphaned file", "file", name, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
