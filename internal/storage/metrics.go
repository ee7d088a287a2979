package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer captures telemetry for blob store operations.
type Observer interface {
	RecordPut(backend string, duration time.Duration, sizeBytes int64, err error)
	RecordDelete(backend string, duration time.Duration, err error)
}

// PrometheusObserver exports blob store metrics to Prometheus.
type PrometheusObserver struct {
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
	bytes    *prometheus.CounterVec
}

// NewPrometheusObserver registers put/delete metrics. Collectors that are
// already registered are reused.
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "blob_store"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Latency of blob store operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"backend", "operation"}))
	if err != nil {
		return nil, err
	}
	opErrors, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_errors_total",
		Help:      "Count of failed blob store operations.",
	}, []string{"backend", "operation"}))
	if err != nil {
		return nil, err
	}
	bytes, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stored_bytes_total",
		Help:      "Cumulative payload size successfully written.",
	}, []string{"backend"}))
	if err != nil {
		return nil, err
	}

	return &PrometheusObserver{duration: duration, errors: opErrors, bytes: bytes}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register storage metric: %w", err)
	}
	return c, nil
}

func (o *PrometheusObserver) RecordPut(backend string, duration time.Duration, sizeBytes int64, err error) {
	if o == nil {
		return
	}
	o.duration.WithLabelValues(backend, "put").Observe(duration.Seconds())
	if err != nil {
		o.errors.WithLabelValues(backend, "put").Inc()
		return
	}
	if sizeBytes > 0 {
		o.bytes.WithLabelValues(backend).Add(float64(sizeBytes))
	}
}

func (o *PrometheusObserver) RecordDelete(backend string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.duration.WithLabelValues(backend, "delete").Observe(duration.Seconds())
	if err != nil {
		o.errors.WithLabelValues(backend, "delete").Inc()
	}
}

type NopObserver struct{}

func (NopObserver) RecordPut(string, time.Duration, int64, error) {}

func (NopObserver) RecordDelete(string, time.Duration, error) {}

// instrumented decorates a BlobStore with an Observer.
type instrumented struct {
	BlobStore
	backend  string
	observer Observer
}

// Instrument wraps store so every Put and Delete is reported to observer.
func Instrument(store BlobStore, backend string, observer Observer) BlobStore {
	return &instrumented{BlobStore: store, backend: backend, observer: observer}
}

// Unwrap returns the decorated store.
func (s *instrumented) Unwrap() BlobStore { return s.BlobStore }

func (s *instrumented) Put(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (BlobRef, error) {
	start := time.Now()
	ref, err := s.BlobStore.Put(ctx, name, reader, size, contentType)
	s.observer.RecordPut(s.backend, time.Since(start), size, err)
	return ref, err
}

func (s *instrumented) Delete(ctx context.Context, ref BlobRef) error {
	start := time.Now()
	err := s.BlobStore.Delete(ctx, ref)
	s.observer.RecordDelete(s.backend, time.Since(start), err)
	return err
}
