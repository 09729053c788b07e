package adaptor

import (
	"errors"
	"fmt"
)

// Sentinel error kinds surfaced by the core. Callers should check for
// these with errors.Is; there is no local retry or rollback on any
// of them — a failure aborts the call immediately, leaving the inode with
// whatever chunk-index entries were already merged.
var (
	// ErrAllocFailure indicates the chunk-id allocator RPC failed or
	// returned a non-OK status.
	ErrAllocFailure = errors.New("chunk id allocation failed")

	// ErrVersionBumpFailure indicates the metadata service's version-bump
	// RPC failed or returned a non-OK status.
	ErrVersionBumpFailure = errors.New("inode version bump failed")

	// ErrStoreWriteFailure indicates an object-store Upload or Append
	// returned an error.
	ErrStoreWriteFailure = errors.New("object store write failed")

	// ErrStoreReadFailure indicates an object-store Download returned an
	// error.
	ErrStoreReadFailure = errors.New("object store read failed")
)

// Error wraps a sentinel error kind with the operational context needed to
// diagnose a failed Write or Read without losing errors.Is compatibility
// against the sentinel.
type Error struct {
	// Op names the operation that failed: "alloc", "version_bump",
	// "upload", "append", or "download".
	Op string

	// FSID and InodeID identify the inode the failing call was operating
	// against. They are set for alloc/version_bump failures and are zero
	// for upload/append/download failures.
	FSID, InodeID uint64

	// ChunkID and BlockIndex identify the block involved, when applicable
	// (zero for alloc/version_bump failures, which precede block I/O).
	ChunkID, BlockIndex uint64

	// Err is the wrapped sentinel error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("adaptor %s: %s (fsid=%d, inode=%d, chunk=%d, block=%d)",
		e.Op, e.Err, e.FSID, e.InodeID, e.ChunkID, e.BlockIndex)
}

// Unwrap returns the wrapped sentinel error, enabling errors.Is and
// errors.As to match through the wrapping.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, fsid, inodeID, chunkID, blockIndex uint64, err error) *Error {
	return &Error{
		Op:         op,
		FSID:       fsid,
		InodeID:    inodeID,
		ChunkID:    chunkID,
		BlockIndex: blockIndex,
		Err:        err,
	}
}
