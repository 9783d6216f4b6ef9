// File: internal/metrics/metrics.go
package metrics

import (
	"context"
	"fmt"
	"time"

	"unistore/pkg/common"
	"unistore/pkg/storage"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation label values
const (
	OpUpload   = "upload"
	OpPresign  = "presign"
	OpDownload = "download"
	OpDelete   = "delete"
)

const (
	resultSuccess = "success"
	resultError   = "error"
)

// Recorder owns the operation metrics of one process
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// Registers the operation metrics on reg, or on a fresh registry when reg is nil
func NewRecorder(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := &Recorder{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "unistore_operations_total",
			Help: "Total number of storage operations by provider, operation and result",
		}, []string{"provider", "operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "unistore_operation_duration_seconds",
			Help:    "Storage operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider", "operation"}),
	}
	reg.MustRegister(r.operations, r.duration)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Writes every gathered metric in the Prometheus text format
func (r *Recorder) WriteTextFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("error writing metrics file: %w", err)
	}
	return nil
}

func (r *Recorder) observe(provider common.Provider, op string, start time.Time, err error) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	r.operations.WithLabelValues(string(provider), op, result).Inc()
	r.duration.WithLabelValues(string(provider), op).Observe(time.Since(start).Seconds())
}

// Wraps s so that every object operation is counted and timed
func (r *Recorder) Instrument(s storage.Storage) storage.Storage {
	return &instrumentedStorage{next: s, recorder: r}
}

type instrumentedStorage struct {
	next     storage.Storage
	recorder *Recorder
}

var _ storage.Storage = (*instrumentedStorage)(nil)

func (s *instrumentedStorage) ProviderName() common.Provider {
	return s.next.ProviderName()
}

func (s *instrumentedStorage) UploadFile(ctx context.Context, localPath, remotePath string) (url string, err error) {
	defer func(start time.Time) { s.recorder.observe(s.next.ProviderName(), OpUpload, start, err) }(time.Now())
	return s.next.UploadFile(ctx, localPath, remotePath)
}

func (s *instrumentedStorage) UploadPreSignedURL(ctx context.Context, remotePath string) (url string, err error) {
	defer func(start time.Time) { s.recorder.observe(s.next.ProviderName(), OpPresign, start, err) }(time.Now())
	return s.next.UploadPreSignedURL(ctx, remotePath)
}

func (s *instrumentedStorage) DownloadFile(ctx context.Context, remoteKey, localPath string) (err error) {
	defer func(start time.Time) { s.recorder.observe(s.next.ProviderName(), OpDownload, start, err) }(time.Now())
	return s.next.DownloadFile(ctx, remoteKey, localPath)
}

func (s *instrumentedStorage) DeleteFile(ctx context.Context, remoteKey string) (err error) {
	defer func(start time.Time) { s.recorder.observe(s.next.ProviderName(), OpDelete, start, err) }(time.Now())
	return s.next.DeleteFile(ctx, remoteKey)
}

func (s *instrumentedStorage) Close() error {
	return s.next.Close()
}
