package adaptor

import (
	"context"
	"sort"
	"time"

	"github.com/lattixfs/s3adaptor/internal/logger"
	"github.com/lattixfs/s3adaptor/internal/telemetry"
	"github.com/lattixfs/s3adaptor/pkg/extent"
	"github.com/lattixfs/s3adaptor/pkg/inode"
	"github.com/lattixfs/s3adaptor/pkg/objectname"
)

// Read reconstructs length bytes of inode's logical content starting at
// offset into buf, resolving overlapping versioned writes to their latest
// writer and zero-filling any region never written.
//
// buf must have at least length bytes of capacity from offset 0; Read
// writes into buf[0:length]. It returns the number of bytes produced, which
// is always length on success — there is no short read, only an error.
func (a *Adaptor) Read(ctx context.Context, in *inode.Inode, offset, length uint64, buf []byte) (int, error) {
	start := time.Now()
	ctx, span := telemetry.StartAdaptorSpan(ctx, "read", in.FSID, in.InodeID, telemetry.Offset(offset), telemetry.Length(length))
	defer span.End()

	lc := logger.NewLogContext(in.FSID, in.InodeID, "read")
	ctx = logger.WithContext(ctx, lc)
	logger.DebugCtx(ctx, "read start", logger.Offset(offset), logger.Length(length))

	n, err := a.read(ctx, in, offset, length, buf)
	a.metrics.ObserveRead(n, time.Since(start), err)
	if err != nil {
		telemetry.RecordError(ctx, err)
		logger.ErrorCtx(ctx, "read failed", logger.Err(err))
		return n, err
	}
	logger.InfoCtx(ctx, "read complete", logger.BytesRead(n))
	return n, nil
}

func (a *Adaptor) read(ctx context.Context, in *inode.Inode, offset, length uint64, buf []byte) (int, error) {
	coverage := extent.EffectiveCoverage(in.Chunks)
	sort.Slice(coverage, func(i, j int) bool { return coverage[i].Offset < coverage[j].Offset })

	requests := planReads(coverage, offset, length)

	for i := range buf[:length] {
		buf[i] = 0
	}

	for _, req := range requests {
		data, err := a.handleReadRequest(ctx, req)
		if err != nil {
			return 0, err
		}
		copy(buf[req.ReadOffset:], data)
	}

	return int(length), nil
}

// planReads synthesizes a read plan from chunks (already cut to
// non-overlapping, offset-sorted ranges) against the request window
// [offset, offset+length): every byte in the window is either covered by a
// narrowed inode.ReadRequest or left as an implicit hole, which the caller
// zero-fills before issuing any request.
func planReads(chunks []inode.ChunkInfo, offset, length uint64) []inode.ReadRequest {
	var requests []inode.ReadRequest

	readOffset := uint64(0)
	i := 0

	for length > 0 {
		if i == len(chunks) {
			break
		}
		c := chunks[i]

		switch {
		case offset+length <= c.Offset:
			// Window ends at or before the next chunk: the remainder is a hole.
			return requests

		case c.Offset >= offset && c.Offset < offset+length:
			// Chunk starts inside the window: the gap before it is a hole.
			hole := c.Offset - offset
			offset = c.Offset
			readOffset += hole
			length -= hole

			if offset+length <= c.End() {
				requests = append(requests, inode.ReadRequest{
					Chunk:      inode.ChunkInfo{ChunkID: c.ChunkID, Version: c.Version, Offset: offset, Len: length},
					ReadOffset: readOffset,
				})
				return requests
			}
			n := c.Len
			requests = append(requests, inode.ReadRequest{
				Chunk:      inode.ChunkInfo{ChunkID: c.ChunkID, Version: c.Version, Offset: offset, Len: n},
				ReadOffset: readOffset,
			})
			readOffset += n
			length -= n
			offset += n

		case c.Offset < offset && c.End() > offset:
			// Window starts inside the chunk.
			if offset+length <= c.End() {
				requests = append(requests, inode.ReadRequest{
					Chunk:      inode.ChunkInfo{ChunkID: c.ChunkID, Version: c.Version, Offset: offset, Len: length},
					ReadOffset: readOffset,
				})
				return requests
			}
			n := c.End() - offset
			requests = append(requests, inode.ReadRequest{
				Chunk:      inode.ChunkInfo{ChunkID: c.ChunkID, Version: c.Version, Offset: offset, Len: n},
				ReadOffset: readOffset,
			})
			offset += n
			length -= n
			readOffset += n

		default:
			// Chunk lies entirely before the window's current cursor: skip it.
		}
		i++
	}

	return requests
}

// handleReadRequest fetches one narrowed ReadRequest's bytes, issuing a
// sequence of per-block Download calls across the request's range.
// blockIndex/blockPos are computed from the request's chunk-relative
// offset, mirroring how writeChunk addresses the same bytes.
func (a *Adaptor) handleReadRequest(ctx context.Context, req inode.ReadRequest) ([]byte, error) {
	chunkPos := a.geometry.OffsetInChunk(req.Chunk.Offset)
	blockIndex := a.geometry.BlockIndexInChunk(chunkPos)
	blockPos := a.geometry.OffsetInBlock(chunkPos)

	out := make([]byte, req.Chunk.Len)
	var readOffset uint64
	remaining := req.Chunk.Len

	for remaining > 0 {
		n := remaining
		if blockPos+remaining > a.geometry.BlockSize {
			n = a.geometry.BlockSize - blockPos
		}

		name := objectname.Name(req.Chunk.ChunkID, blockIndex, req.Chunk.Version)
		read, err := a.store.Download(ctx, name, out[readOffset:readOffset+n], blockPos, n)
		if err != nil {
			return nil, newError("download", 0, 0, req.Chunk.ChunkID, blockIndex, ErrStoreReadFailure)
		}
		logger.Debug("read block", logger.ObjectName(name), logger.BytesRead(read))

		remaining -= uint64(read)
		readOffset += uint64(read)
		blockIndex++
		blockPos = 0
	}

	return out, nil
}
