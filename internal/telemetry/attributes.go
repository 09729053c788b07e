package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used by the Adaptor's own spans. Kept to this package
// rather than pkg/adaptor so a caller instrumenting its own spans around
// a Write/Read call can reuse the same keys.
const (
	AttrFSID       = "fs.id"
	AttrInodeID    = "fs.inode_id"
	AttrChunkID    = "fs.chunk_id"
	AttrVersion    = "fs.version"
	AttrOffset     = "fs.offset"
	AttrLength     = "fs.length"
	AttrBytes      = "fs.bytes"
	AttrBucket     = "storage.bucket"
	AttrObjectName = "storage.key"
	AttrRegion     = "storage.region"
)

func FSID(v uint64) attribute.KeyValue       { return attribute.Int64(AttrFSID, int64(v)) }
func InodeID(v uint64) attribute.KeyValue    { return attribute.Int64(AttrInodeID, int64(v)) }
func ChunkID(v uint64) attribute.KeyValue    { return attribute.Int64(AttrChunkID, int64(v)) }
func Version(v uint64) attribute.KeyValue    { return attribute.Int64(AttrVersion, int64(v)) }
func Offset(v uint64) attribute.KeyValue     { return attribute.Int64(AttrOffset, int64(v)) }
func Length(v uint64) attribute.KeyValue     { return attribute.Int64(AttrLength, int64(v)) }
func Bytes(v int) attribute.KeyValue         { return attribute.Int(AttrBytes, v) }
func Bucket(name string) attribute.KeyValue  { return attribute.String(AttrBucket, name) }
func ObjectName(key string) attribute.KeyValue {
	return attribute.String(AttrObjectName, key)
}
func Region(region string) attribute.KeyValue { return attribute.String(AttrRegion, region) }

// StartObjectStoreSpan starts a span for one ObjectStore operation
// (upload, append, download), tagged with the object name it targets.
func StartObjectStoreSpan(ctx context.Context, operation, objectName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append([]attribute.KeyValue{ObjectName(objectName)}, attrs...)
	return StartSpan(ctx, "objectstore."+operation, trace.WithAttributes(allAttrs...))
}

// StartAdaptorSpan starts a span for one Adaptor.Write or Adaptor.Read
// call, tagged with the inode it targets.
func StartAdaptorSpan(ctx context.Context, operation string, fsid, inodeID uint64, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append([]attribute.KeyValue{FSID(fsid), InodeID(inodeID)}, attrs...)
	return StartSpan(ctx, "adaptor."+operation, trace.WithAttributes(allAttrs...))
}
