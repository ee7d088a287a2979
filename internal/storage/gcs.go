package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSClient implements ObjectClient for Google Cloud Storage.
type GCSClient struct {
	client  *gcs.Client
	bucket  string
	baseURL string
}

// NewGCSClient builds a client from a credentials file path, inline JSON, or
// application default credentials. A configured endpoint points at an
// emulator and disables auth.
func NewGCSClient(ctx context.Context, cfg Config) (*GCSClient, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required for gcs storage")
	}

	var opts []option.ClientOption
	switch creds := strings.TrimSpace(cfg.CredentialsFile); {
	case cfg.Endpoint != "":
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	case strings.HasPrefix(creds, "{"):
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	case creds != "":
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + cfg.Bucket
	}

	return &GCSClient{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// PutObject streams into a resumable writer. The object becomes visible
// only when Close succeeds; on copy failure the context is cancelled so the
// upload is abandoned.
func (c *GCSClient) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := c.client.Bucket(c.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, body); err != nil {
		cancel()
		_ = w.Close()
		return fmt.Errorf("gcs write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs finalize: %w", err)
	}
	return nil
}

func (c *GCSClient) DeleteObject(ctx context.Context, key string) error {
	err := c.client.Bucket(c.bucket).Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return ErrObjectNotFound
	}
	if err != nil {
		return fmt.Errorf("gcs delete: %w", err)
	}
	return nil
}

func (c *GCSClient) PublicURL(key string) string {
	return c.baseURL + "/" + key
}

func (c *GCSClient) Close() error {
	return c.client.Close()
}
