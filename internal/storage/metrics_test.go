package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument_RecordsOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	observer, err := NewPrometheusObserver("test_blob", reg)
	require.NoError(t, err)

	client := newMemoryObjects()
	store := Instrument(NewRemoteStorage(client, "portfolio"), "gcs", observer)
	ctx := context.Background()

	ref, err := store.Put(ctx, "a.mp4", strings.NewReader("0123456789"), 10, "video/mp4")
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, ref))

	client.putErr = errors.New("down")
	_, err = store.Put(ctx, "b.mp4", strings.NewReader("x"), 1, "video/mp4")
	require.Error(t, err)

	assert.Equal(t, 10.0, testutil.ToFloat64(observer.bytes.WithLabelValues("gcs")))
	assert.Equal(t, 1.0, testutil.ToFloat64(observer.errors.WithLabelValues("gcs", "put")))
	assert.Equal(t, 0.0, testutil.ToFloat64(observer.errors.WithLabelValues("gcs", "delete")))
}

func TestNewPrometheusObserver_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPrometheusObserver("dup", reg)
	require.NoError(t, err)
	second, err := NewPrometheusObserver("dup", reg)
	require.NoError(t, err)

	first.RecordPut("local", 0, 5, nil)
	assert.Equal(t, 5.0, testutil.ToFloat64(second.bytes.WithLabelValues("local")))
}

func TestNewStorage_Selection(t *testing.T) {
	store, err := NewStorage(context.Background(), Config{Type: "local", BasePath: t.TempDir()}, nil)
	require.NoError(t, err)
	_, ok := store.(*instrumented).Unwrap().(*LocalStorage)
	assert.True(t, ok)

	_, err = NewStorage(context.Background(), Config{Type: "ftp"}, nil)
	assert.Error(t, err)

	_, err = NewStorage(context.Background(), Config{Type: "cloudflare_r2", Bucket: "b"}, nil)
	assert.Error(t, err, "r2 requires an endpoint")
}

type closingObjects struct {
	*memoryObjects
	closed bool
}

func (c *closingObjects) Close() error {
	c.closed = true
	return nil
}

func TestAsLocalAndClose(t *testing.T) {
	local := newTestLocal(t)
	wrapped := Instrument(local, "local", NopObserver{})

	got, ok := AsLocal(wrapped)
	require.True(t, ok)
	assert.Same(t, local, got)
	assert.NoError(t, Close(wrapped))

	objects := &closingObjects{memoryObjects: newMemoryObjects()}
	remote := Instrument(NewRemoteStorage(objects, ""), "gcs", NopObserver{})
	_, ok = AsLocal(remote)
	assert.False(t, ok)
	require.NoError(t, Close(remote))
	assert.True(t, objects.closed)
}
