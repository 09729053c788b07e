package adaptor

import "time"

// Metrics provides observability for Write/Read operations. The interface
// lives in this package rather than a metrics package, so implementations
// can be Prometheus collectors, StatsD, or in-memory counters for tests
// without this package importing any of them. This is optional — an
// Adaptor constructed without WithMetrics uses a zero-overhead no-op.
type Metrics interface {
	// ObserveWrite records one completed Write call.
	ObserveWrite(bytes int, duration time.Duration, err error)

	// ObserveRead records one completed Read call.
	ObserveRead(bytes int, duration time.Duration, err error)

	// ObserveVersionBump records one UpdateInodeS3Version call.
	ObserveVersionBump(duration time.Duration, err error)

	// ObserveChunkAlloc records one AllocateS3Chunk call.
	ObserveChunkAlloc(duration time.Duration, err error)
}

// noopMetrics is the zero-overhead default when no Metrics is supplied.
type noopMetrics struct{}

func (noopMetrics) ObserveWrite(int, time.Duration, error)  {}
func (noopMetrics) ObserveRead(int, time.Duration, error)   {}
func (noopMetrics) ObserveVersionBump(time.Duration, error) {}
func (noopMetrics) ObserveChunkAlloc(time.Duration, error)  {}
