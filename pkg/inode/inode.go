// Package inode defines the translator's data model: the Inode an Adaptor
// operates on, its ordered chunk index, and the ephemeral request/response
// types used by the read path.
//
// None of these types carry behavior beyond simple accessors; the interval
// algebra that reasons about them lives in pkg/extent, and the read/write
// orchestration lives in pkg/adaptor.
package inode

// ChunkInfo records one contiguous valid logical byte range backed by
// objects of a single (ChunkID, Version).
//
// Invariant: the range [Offset, Offset+Len) lies within a single chunk
// (the write path splits each write at chunk boundaries) and every
// block it touches is durably present in the object store under
// objectname.Name(ChunkID, blockIndex, Version).
type ChunkInfo struct {
	// ChunkID is the allocated chunk identifier backing this range.
	ChunkID uint64

	// Version is the inode generation at which this range was written.
	// Always <= the owning Inode's Version.
	Version uint64

	// Offset is the logical byte offset, within the inode, where this
	// range begins.
	Offset uint64

	// Len is the byte length of the range; it is the single source of
	// truth for the range's size.
	Len uint64
}

// End returns the exclusive end offset of the range, Offset+Len.
func (c ChunkInfo) End() uint64 {
	return c.Offset + c.Len
}

// Inode is the logical file the Adaptor translates I/O for. The caller owns
// it; Write mutates it in place (appending ChunkInfo entries, advancing
// Version), and Read only observes it.
type Inode struct {
	// FSID is the filesystem id this inode belongs to.
	FSID uint64

	// InodeID is this inode's id within its filesystem.
	InodeID uint64

	// Length is the current logical file length in bytes.
	Length uint64

	// Version is the current generation counter for this inode's objects.
	Version uint64

	// Chunks is the chunk index: an insertion-ordered (not offset-sorted)
	// sequence of ChunkInfo entries. Order matters — entries later in the
	// slice were written later, which is what lets the read path resolve
	// overlaps without storing timestamps (see pkg/extent.EffectiveCoverage).
	Chunks []ChunkInfo
}

// ReadRequest carries one ChunkInfo narrowed to the sub-range actually
// needed to satisfy a Read call, plus where in the caller's output buffer
// the fetched bytes belong.
type ReadRequest struct {
	// Chunk is the (already narrowed) range to fetch.
	Chunk ChunkInfo

	// ReadOffset is the offset into the caller's output buffer where this
	// request's bytes should land.
	ReadOffset uint64
}

// ReadResponse carries the bytes fetched for one ReadRequest.
type ReadResponse struct {
	// ReadOffset mirrors the originating ReadRequest's ReadOffset.
	ReadOffset uint64

	// Data holds the fetched bytes; len(Data) is the response's length.
	Data []byte
}
