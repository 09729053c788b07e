// Package adaptor implements the client-side address-space translator: it
// maps logical (offset, length) I/O on an inode onto the object-store
// objects that back it, maintaining the inode's chunk index so later reads
// can reconstruct the latest content from possibly-overlapping writes.
//
// Adaptor is the top-level type; write.go and read.go hold the two
// orchestration paths, both built on the pure interval algebra in
// pkg/extent. This split — a thin driver type plus a package of pure
// helpers it calls into — keeps the interval math independently testable
// from the I/O orchestration that drives it.
package adaptor

import (
	"github.com/lattixfs/s3adaptor/pkg/capability"
	"github.com/lattixfs/s3adaptor/pkg/geometry"
)

// Adaptor is the translator. It is stateless and safe for concurrent use
// across distinct inodes, provided its injected capabilities are themselves
// concurrency-safe; callers must serialize calls against the same
// *inode.Inode themselves, since Write mutates it in place.
type Adaptor struct {
	geometry geometry.Geometry

	store     capability.ObjectStore
	versions  capability.VersionService
	allocator capability.ChunkAllocator

	metrics Metrics
}

// Config fixes an Adaptor's block/chunk geometry at construction. Optional
// collaborators are layered on afterward via variadic Option arguments
// rather than growing Config itself.
type Config struct {
	// BlockSize (B) is the object granularity in bytes.
	BlockSize uint64

	// ChunkSize (C) is the logical chunking granularity in bytes; must be a
	// positive multiple of BlockSize.
	ChunkSize uint64
}

// Option customizes Adaptor construction beyond the required capabilities.
type Option func(*Adaptor)

// WithMetrics installs a metrics sink the Adaptor reports Write/Read
// outcomes to. Without this option, Metrics calls are no-ops.
func WithMetrics(m Metrics) Option {
	return func(a *Adaptor) { a.metrics = m }
}

// New constructs an Adaptor. store, versions, and allocator are the three
// external capabilities the Adaptor treats as injected collaborators
// rather than hard-wired dependencies; see pkg/adaptor/adaptortest for
// in-memory fakes suitable for unit tests.
func New(cfg Config, store capability.ObjectStore, versions capability.VersionService, allocator capability.ChunkAllocator, opts ...Option) (*Adaptor, error) {
	g, err := geometry.New(cfg.BlockSize, cfg.ChunkSize)
	if err != nil {
		return nil, err
	}

	a := &Adaptor{
		geometry:  g,
		store:     store,
		versions:  versions,
		allocator: allocator,
		metrics:   noopMetrics{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.metrics == nil {
		a.metrics = noopMetrics{}
	}
	return a, nil
}
