package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// BlobStore persists uploaded bytes and hands back a reference the
// portfolio keeps in its media list.
type BlobStore interface {
	// Put writes the object under the given storage name. On error nothing
	// is visible under that name.
	Put(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (BlobRef, error)

	// Delete removes the object. Deleting something already gone is not an error.
	Delete(ctx context.Context, ref BlobRef) error
}

// BlobRef identifies a stored object. Local objects have no PublicID and are
// addressed by URL.
type BlobRef struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

var ErrInvalidRef = errors.New("invalid blob reference")

// Config holds storage configuration
type Config struct {
	Type            string // local, s3, cloudflare_r2, gcs
	BasePath        string // local root directory
	PublicPath      string // local URL prefix
	BaseURL         string // public URL base for remote objects
	Folder          string // remote key prefix
	Bucket          string // s3 / r2 / gcs
	Region          string // s3
	AccessKey       string // s3 / r2
	SecretKey       string // s3 / r2
	Endpoint        string // r2, custom s3, gcs emulator
	CredentialsFile string // gcs: path or inline JSON
	PublicRead      bool   // s3: public-read ACL
}

// NewStorage creates a new storage instance based on configuration.
// Every backend is wrapped with the observer.
func NewStorage(ctx context.Context, cfg Config, observer Observer) (BlobStore, error) {
	if observer == nil {
		observer = NopObserver{}
	}

	var (
		store BlobStore
		err   error
	)
	switch cfg.Type {
	case "", "local":
		cfg.Type = "local"
		store, err = NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		var client *S3Client
		client, err = NewS3Client(cfg)
		if err == nil {
			store = NewRemoteStorage(client, cfg.Folder)
		}
	case "gcs":
		var client *GCSClient
		client, err = NewGCSClient(ctx, cfg)
		if err == nil {
			store = NewRemoteStorage(client, cfg.Folder)
		}
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	return Instrument(store, cfg.Type, observer), nil
}

// Close releases backend clients held by store. Local storage holds none.
func Close(store BlobStore) error {
	if remote, ok := unwrap(store).(*RemoteStorage); ok {
		if c, ok := remote.client.(io.Closer); ok {
			return c.Close()
		}
	}
	return nil
}

// AsLocal returns the local backend behind any decorators.
func AsLocal(store BlobStore) (*LocalStorage, bool) {
	local, ok := unwrap(store).(*LocalStorage)
	return local, ok
}

func unwrap(store BlobStore) BlobStore {
	for {
		u, ok := store.(interface{ Unwrap() BlobStore })
		if !ok {
			return store
		}
		store = u.Unwrap()
	}
}
