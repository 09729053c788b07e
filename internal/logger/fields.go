package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging, kept consistent across the
// adaptor, its S3 client, and its RPC clients for log aggregation.
const (
	KeyTraceID = "trace_id"
	KeySpanID  = "span_id"

	KeyFSID      = "fsid"
	KeyInodeID   = "inode_id"
	KeyOperation = "operation"

	KeyOffset       = "offset"
	KeyLength       = "length"
	KeyBytesRead    = "bytes_read"
	KeyBytesWritten = "bytes_written"

	KeyChunkID    = "chunk_id"
	KeyBlockIndex = "block_index"
	KeyVersion    = "version"
	KeyObjectName = "object_name"

	KeyBucket     = "bucket"
	KeyAttempt    = "attempt"
	KeyMaxRetries = "max_retries"
	KeyDurationMs = "duration_ms"

	KeyErrorCode = "error_code"
)

// TraceID returns the trace_id attribute.
func TraceID(id string) slog.Attr { return slog.String(KeyTraceID, id) }

// SpanID returns the span_id attribute.
func SpanID(id string) slog.Attr { return slog.String(KeySpanID, id) }

// FSID returns the fsid attribute.
func FSID(id uint64) slog.Attr { return slog.Uint64(KeyFSID, id) }

// InodeID returns the inode_id attribute.
func InodeID(id uint64) slog.Attr { return slog.Uint64(KeyInodeID, id) }

// Operation returns the operation attribute.
func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }

// Offset returns the offset attribute.
func Offset(off uint64) slog.Attr { return slog.Uint64(KeyOffset, off) }

// Length returns the length attribute.
func Length(n uint64) slog.Attr { return slog.Uint64(KeyLength, n) }

// BytesRead returns the bytes_read attribute.
func BytesRead(n int) slog.Attr { return slog.Int(KeyBytesRead, n) }

// BytesWritten returns the bytes_written attribute.
func BytesWritten(n int) slog.Attr { return slog.Int(KeyBytesWritten, n) }

// ChunkID returns the chunk_id attribute.
func ChunkID(id uint64) slog.Attr { return slog.Uint64(KeyChunkID, id) }

// BlockIndex returns the block_index attribute.
func BlockIndex(idx uint64) slog.Attr { return slog.Uint64(KeyBlockIndex, idx) }

// Version returns the version attribute.
func Version(v uint64) slog.Attr { return slog.Uint64(KeyVersion, v) }

// ObjectName returns the object_name attribute.
func ObjectName(name string) slog.Attr { return slog.String(KeyObjectName, name) }

// Bucket returns the bucket attribute.
func Bucket(name string) slog.Attr { return slog.String(KeyBucket, name) }

// Attempt returns the attempt attribute.
func Attempt(n int) slog.Attr { return slog.Int(KeyAttempt, n) }

// MaxRetries returns the max_retries attribute.
func MaxRetries(n int) slog.Attr { return slog.Int(KeyMaxRetries, n) }

// DurationMs returns the duration_ms attribute.
func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

// Err returns the error attribute, or a no-op attribute if err is nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// ErrorCode returns the error_code attribute for a classified error kind.
func ErrorCode(code fmt.Stringer) slog.Attr {
	return slog.String(KeyErrorCode, code.String())
}
