package adaptor

import (
	"context"
	"time"

	"github.com/lattixfs/s3adaptor/internal/logger"
	"github.com/lattixfs/s3adaptor/internal/telemetry"
	"github.com/lattixfs/s3adaptor/pkg/extent"
	"github.com/lattixfs/s3adaptor/pkg/inode"
	"github.com/lattixfs/s3adaptor/pkg/objectname"
)

// Write maps a logical write at (offset, length) onto per-block object-store
// operations and merges the result into inode's chunk index.
//
// Preconditions: length > 0 and len(buf) >= length. Write mutates inode in
// place — appending or extending ChunkInfo entries and advancing
// inode.Version — and the caller must serialize calls against the same
// inode.
func (a *Adaptor) Write(ctx context.Context, in *inode.Inode, offset, length uint64, buf []byte) (int, error) {
	start := time.Now()
	ctx, span := telemetry.StartAdaptorSpan(ctx, "write", in.FSID, in.InodeID, telemetry.Offset(offset), telemetry.Length(length))
	defer span.End()

	lc := logger.NewLogContext(in.FSID, in.InodeID, "write")
	ctx = logger.WithContext(ctx, lc)
	logger.DebugCtx(ctx, "write start", logger.Offset(offset), logger.Length(length))

	n, err := a.write(ctx, in, offset, length, buf)
	a.metrics.ObserveWrite(n, time.Since(start), err)
	if err != nil {
		telemetry.RecordError(ctx, err)
		logger.ErrorCtx(ctx, "write failed", logger.Err(err))
		return n, err
	}
	logger.InfoCtx(ctx, "write complete", logger.BytesWritten(n), logger.Version(in.Version))
	return n, nil
}

func (a *Adaptor) write(ctx context.Context, in *inode.Inode, offset, length uint64, buf []byte) (int, error) {
	// firstWrite is fixed for the whole call: Write never updates
	// inode.Length itself, leaving that to the caller once bytesWritten is
	// known, so every chunk-id / version decision below must see the
	// pre-write length, not one mutated mid-loop.
	firstWrite := in.Length == 0

	version, appendFirstBlock, err := a.selectVersion(ctx, in, offset, length, firstWrite)
	if err != nil {
		return 0, err
	}

	index := a.geometry.ChunkIndex(offset)
	chunkPos := a.geometry.OffsetInChunk(offset)
	isAppend := appendFirstBlock

	var writeOffset uint64
	remaining := length

	for remaining > 0 {
		n := remaining
		if chunkPos+remaining > a.geometry.ChunkSize {
			n = a.geometry.ChunkSize - chunkPos
		}

		chunkID, err := a.getChunkID(ctx, in, index, firstWrite)
		if err != nil {
			return int(writeOffset), err
		}

		w, err := a.writeChunk(ctx, chunkID, version, chunkPos, buf[writeOffset:writeOffset+n], isAppend)
		if err != nil {
			return int(writeOffset), err
		}

		updateInodeChunkInfo(in, chunkID, version, index*a.geometry.ChunkSize+chunkPos, w)

		isAppend = false
		remaining -= w
		writeOffset += w
		index++
		chunkPos = 0
	}

	in.Version = version
	return int(writeOffset), nil
}

// selectVersion decides the version an incoming write uses: zero for a
// first-ever write, a freshly-bumped version when the write overlaps
// existing content, or the current latest version (possibly eligible for
// append) otherwise. The returned bool is only meaningful for the first
// block sliced by the caller; append is never true for the write's later
// chunk-boundary crossings.
func (a *Adaptor) selectVersion(ctx context.Context, in *inode.Inode, offset, length uint64, firstWrite bool) (version uint64, appendFirstBlock bool, err error) {
	switch {
	case firstWrite:
		return 0, false, nil

	case extent.IsOverlap(in.Chunks, offset, length):
		bumpStart := time.Now()
		version, err = a.versions.UpdateInodeS3Version(ctx, in.FSID, in.InodeID)
		a.metrics.ObserveVersionBump(time.Since(bumpStart), err)
		if err != nil {
			return 0, false, newError("version_bump", in.FSID, in.InodeID, 0, 0, ErrVersionBumpFailure)
		}
		return version, false, nil

	default:
		version = in.Chunks[len(in.Chunks)-1].Version
		return version, extent.IsAppend(in.Chunks, offset, a.geometry), nil
	}
}

// getChunkID reuses the chunk id already backing logical chunk index idx,
// or allocates a fresh one.
func (a *Adaptor) getChunkID(ctx context.Context, in *inode.Inode, index uint64, firstWrite bool) (uint64, error) {
	if firstWrite {
		return a.allocChunkID(ctx, in)
	}

	for _, e := range in.Chunks {
		if a.geometry.ChunkIndex(e.Offset) == index {
			return e.ChunkID, nil
		}
	}

	return a.allocChunkID(ctx, in)
}

func (a *Adaptor) allocChunkID(ctx context.Context, in *inode.Inode) (uint64, error) {
	start := time.Now()
	chunkID, err := a.allocator.AllocateS3Chunk(ctx, in.FSID)
	a.metrics.ObserveChunkAlloc(time.Since(start), err)
	if err != nil {
		return 0, newError("alloc", in.FSID, in.InodeID, 0, 0, ErrAllocFailure)
	}
	return chunkID, nil
}

// writeChunk slices a chunk-local write of length len(data) starting at
// chunkPos into per-block object-store operations. Only the first block
// honors append; every subsequent block within this chunk-local write is a
// fresh Upload because it starts a block the store has never seen.
func (a *Adaptor) writeChunk(ctx context.Context, chunkID, version, chunkPos uint64, data []byte, isAppend bool) (uint64, error) {
	blockPos := a.geometry.OffsetInBlock(chunkPos)
	blockIndex := a.geometry.BlockIndexInChunk(chunkPos)

	var writeOffset uint64
	remaining := uint64(len(data))

	for remaining > 0 {
		n := remaining
		if blockPos+remaining > a.geometry.BlockSize {
			n = a.geometry.BlockSize - blockPos
		}

		name := objectname.Name(chunkID, blockIndex, version)
		slice := data[writeOffset : writeOffset+n]

		var (
			written int
			err     error
		)
		if isAppend {
			written, err = a.store.Append(ctx, name, slice)
			if err != nil {
				return writeOffset, newError("append", 0, 0, chunkID, blockIndex, ErrStoreWriteFailure)
			}
			isAppend = false
		} else {
			// Objects hold a block's bytes at their in-block offsets, which is
			// how Download and Append address them, so a write that starts
			// mid-block is preceded by blockPos zero bytes.
			payload := slice
			if blockPos > 0 {
				payload = make([]byte, blockPos+n)
				copy(payload[blockPos:], slice)
			}
			written, err = a.store.Upload(ctx, name, payload)
			if err != nil {
				return writeOffset, newError("upload", 0, 0, chunkID, blockIndex, ErrStoreWriteFailure)
			}
			written -= int(blockPos)
		}
		logger.Debug("wrote block", logger.ObjectName(name), logger.BytesWritten(written))

		remaining -= uint64(written)
		writeOffset += uint64(written)
		blockIndex++
		blockPos = 0
	}

	return writeOffset, nil
}

// updateInodeChunkInfo extends a matching, right-contiguous entry in
// place, or appends a new one. This coalesces only into a preceding entry
// that the incoming range is contiguous with on its right; it never merges
// into an entry that would become left-adjacent, and only the first match
// is used.
//
// It never touches in.Length: growing the inode's logical length from
// bytesWritten is the caller's responsibility, not this function's.
func updateInodeChunkInfo(in *inode.Inode, chunkID, version, offset, length uint64) {
	for i := range in.Chunks {
		e := &in.Chunks[i]
		if e.ChunkID != chunkID || e.Version != version {
			continue
		}
		if e.End() == offset {
			e.Len += length
			return
		}
	}

	in.Chunks = append(in.Chunks, inode.ChunkInfo{
		ChunkID: chunkID,
		Version: version,
		Offset:  offset,
		Len:     length,
	})
}
