// Package prometheus is the concrete Prometheus collector for
// pkg/metrics. Importing it for its side effect registers the
// constructor pkg/metrics.New calls:
//
//	import _ "github.com/lattixfs/s3adaptor/pkg/metrics/prometheus"
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lattixfs/s3adaptor/pkg/adaptor"
	"github.com/lattixfs/s3adaptor/pkg/metrics"
)

func init() {
	metrics.RegisterConstructor(func() adaptor.Metrics {
		return newCollector()
	})
}

// collector is the Prometheus implementation of adaptor.Metrics.
type collector struct {
	writeOps      *prometheus.CounterVec
	writeDuration *prometheus.HistogramVec
	writeBytes    prometheus.Histogram

	readOps      *prometheus.CounterVec
	readDuration *prometheus.HistogramVec
	readBytes    prometheus.Histogram

	versionBumpOps      *prometheus.CounterVec
	versionBumpDuration prometheus.Histogram

	chunkAllocOps      *prometheus.CounterVec
	chunkAllocDuration prometheus.Histogram
}

var durationBucketsMillis = []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000, 30000}

var bytesBuckets = []float64{4096, 65536, 1048576, 4194304, 16777216, 67108864}

func newCollector() *collector {
	reg := metrics.GetRegistry()

	return &collector{
		writeOps: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "s3adaptor_write_operations_total",
				Help: "Total number of Write calls by outcome",
			},
			[]string{"status"},
		),
		writeDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "s3adaptor_write_duration_milliseconds",
				Help:    "Duration of Write calls in milliseconds",
				Buckets: durationBucketsMillis,
			},
			[]string{"status"},
		),
		writeBytes: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "s3adaptor_write_bytes",
				Help:    "Distribution of bytes per Write call",
				Buckets: bytesBuckets,
			},
		),
		readOps: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "s3adaptor_read_operations_total",
				Help: "Total number of Read calls by outcome",
			},
			[]string{"status"},
		),
		readDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "s3adaptor_read_duration_milliseconds",
				Help:    "Duration of Read calls in milliseconds",
				Buckets: durationBucketsMillis,
			},
			[]string{"status"},
		),
		readBytes: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "s3adaptor_read_bytes",
				Help:    "Distribution of bytes per Read call",
				Buckets: bytesBuckets,
			},
		),
		versionBumpOps: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "s3adaptor_version_bump_operations_total",
				Help: "Total number of UpdateInodeS3Version calls by outcome",
			},
			[]string{"status"},
		),
		versionBumpDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "s3adaptor_version_bump_duration_milliseconds",
				Help:    "Duration of UpdateInodeS3Version calls in milliseconds",
				Buckets: durationBucketsMillis,
			},
		),
		chunkAllocOps: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "s3adaptor_chunk_alloc_operations_total",
				Help: "Total number of AllocateS3Chunk calls by outcome",
			},
			[]string{"status"},
		),
		chunkAllocDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "s3adaptor_chunk_alloc_duration_milliseconds",
				Help:    "Duration of AllocateS3Chunk calls in milliseconds",
				Buckets: durationBucketsMillis,
			},
		),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (c *collector) ObserveWrite(bytes int, duration time.Duration, err error) {
	s := status(err)
	c.writeOps.WithLabelValues(s).Inc()
	c.writeDuration.WithLabelValues(s).Observe(millis(duration))
	if bytes > 0 {
		c.writeBytes.Observe(float64(bytes))
	}
}

func (c *collector) ObserveRead(bytes int, duration time.Duration, err error) {
	s := status(err)
	c.readOps.WithLabelValues(s).Inc()
	c.readDuration.WithLabelValues(s).Observe(millis(duration))
	if bytes > 0 {
		c.readBytes.Observe(float64(bytes))
	}
}

func (c *collector) ObserveVersionBump(duration time.Duration, err error) {
	s := status(err)
	c.versionBumpOps.WithLabelValues(s).Inc()
	c.versionBumpDuration.Observe(millis(duration))
}

func (c *collector) ObserveChunkAlloc(duration time.Duration, err error) {
	s := status(err)
	c.chunkAllocOps.WithLabelValues(s).Inc()
	c.chunkAllocDuration.Observe(millis(duration))
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
