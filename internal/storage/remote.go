package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	DefaultRemoteFolder = "portfolio"

	resourceImage = "image"
	resourceVideo = "video"

	// bytes read for content sniffing
	sniffLength = 3072
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectClient is the minimal object-store surface the remote backend needs.
type ObjectClient interface {
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// DeleteObject returns ErrObjectNotFound when the key does not exist,
	// if the backend can tell.
	DeleteObject(ctx context.Context, key string) error
	PublicURL(key string) string
}

// RemoteStorage lays objects out as {folder}/{image|video}/{name}. The public
// id is {folder}/{name}, so the resource type is not recoverable from it and
// Delete tries both.
type RemoteStorage struct {
	client ObjectClient
	folder string
}

func NewRemoteStorage(client ObjectClient, folder string) *RemoteStorage {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = DefaultRemoteFolder
	}
	return &RemoteStorage{client: client, folder: folder}
}

func (s *RemoteStorage) Put(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (BlobRef, error) {
	if err := validateName(name); err != nil {
		return BlobRef{}, err
	}

	resourceType, body, err := detectResourceType(reader, contentType)
	if err != nil {
		return BlobRef{}, fmt.Errorf("failed to read upload: %w", err)
	}

	key := path.Join(s.folder, resourceType, name)
	if err := s.client.PutObject(ctx, key, body, size, contentType); err != nil {
		return BlobRef{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return BlobRef{
		URL:      s.client.PublicURL(key),
		PublicID: path.Join(s.folder, name),
	}, nil
}

// Delete removes the object under both resource-type interpretations. It
// fails only if neither delete succeeded and at least one failed for a
// reason other than not-found.
func (s *RemoteStorage) Delete(ctx context.Context, ref BlobRef) error {
	if ref.PublicID == "" {
		return fmt.Errorf("%w: remote reference has no public id", ErrInvalidRef)
	}
	dir, name := path.Split(ref.PublicID)
	if err := validateName(name); err != nil {
		return err
	}

	var errs []error
	deleted := false
	for _, resourceType := range []string{resourceImage, resourceVideo} {
		key := path.Join(dir, resourceType, name)
		err := s.client.DeleteObject(ctx, key)
		switch {
		case err == nil:
			deleted = true
		case errors.Is(err, ErrObjectNotFound):
		default:
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	if deleted || len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("failed to delete %s: %w", ref.PublicID, errors.Join(errs...))
}

// detectResourceType sniffs the head of the stream and returns a reader that
// replays it. Content that is neither image nor video falls back to the
// declared type.
func detectResourceType(reader io.Reader, contentType string) (string, io.Reader, error) {
	head := make([]byte, sniffLength)
	n, err := io.ReadFull(reader, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, err
	}
	head = head[:n]
	body := io.MultiReader(bytes.NewReader(head), reader)

	if rt := resourceTypeOf(mimetype.Detect(head).String()); rt != "" {
		return rt, body, nil
	}
	if rt := resourceTypeOf(contentType); rt != "" {
		return rt, body, nil
	}
	return resourceImage, body, nil
}

func resourceTypeOf(mimeType string) string {
	mt := strings.ToLower(mimeType)
	switch {
	case strings.HasPrefix(mt, "image/"):
		return resourceImage
	case strings.HasPrefix(mt, "video/"):
		return resourceVideo
	default:
		return ""
	}
}
