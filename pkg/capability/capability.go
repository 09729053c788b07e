// Package capability defines the external collaborators the Adaptor treats
// as injected capabilities rather than hard-wired dependencies: the
// object-store transport, the metadata service's version-bump RPC, and the
// space-allocation service's chunk-id RPC.
//
// Injecting these as interfaces rather than depending on a concrete
// backend directly is what keeps the Adaptor's core unit-testable with
// in-memory fakes (see pkg/adaptor/adaptortest).
package capability

import "context"

// ObjectStore is the object-store transport the Adaptor drives with
// per-block operations. All three methods are synchronous from the
// Adaptor's point of view: they block until the backend responds or errors.
type ObjectStore interface {
	// Upload writes a brand-new object named name with the given content.
	// It returns the number of bytes written on success.
	Upload(ctx context.Context, name string, data []byte) (int, error)

	// Append appends data to the end of the existing object named name.
	// It returns the number of bytes appended on success.
	Append(ctx context.Context, name string, data []byte) (int, error)

	// Download reads length bytes starting at offset within the object
	// named name into dst. It returns the number of bytes read on success.
	Download(ctx context.Context, name string, dst []byte, offset, length uint64) (int, error)
}

// VersionService issues new generation counters for an inode's objects,
// invalidating stale objects without rewriting them. Implementations call
// out to the metadata service's version-bump RPC.
type VersionService interface {
	// UpdateInodeS3Version requests a new version for the given inode,
	// bumping its generation counter at the metadata service.
	UpdateInodeS3Version(ctx context.Context, fsid, inodeID uint64) (version uint64, err error)
}

// ChunkAllocator issues new chunk identifiers from the space-allocation
// service's chunk-id allocation RPC.
type ChunkAllocator interface {
	// AllocateS3Chunk requests a fresh chunk id for the given filesystem.
	AllocateS3Chunk(ctx context.Context, fsid uint64) (chunkID uint64, err error)
}
