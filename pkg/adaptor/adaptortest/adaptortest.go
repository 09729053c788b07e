// Package adaptortest provides in-memory fakes for the capability
// interfaces pkg/adaptor depends on: each fake is a plain map keyed by
// object or request identity, guarded by a mutex, with no persistence and
// no rollback beyond what each fake's own semantics require.
//
// These are test doubles only — they exist so pkg/adaptor's unit tests can
// exercise the write/read paths without a real S3 bucket or RPC transport.
package adaptortest

import (
	"context"
	"fmt"
	"sync"
)

// ObjectStore is an in-memory capability.ObjectStore. Each named object is
// a plain byte slice; Append grows it, Download reads a sub-range, and
// Upload replaces it wholesale — mirroring the real S3-backed semantics
// where Upload has no partial-overwrite facility.
type ObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// FailUpload, FailAppend, FailDownload let tests inject a failure for
	// the named object: every matching call fails while its entry is true.
	FailUpload   map[string]bool
	FailAppend   map[string]bool
	FailDownload map[string]bool
}

// NewObjectStore constructs an empty ObjectStore.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		objects:      make(map[string][]byte),
		FailUpload:   make(map[string]bool),
		FailAppend:   make(map[string]bool),
		FailDownload: make(map[string]bool),
	}
}

// Upload implements capability.ObjectStore.
func (s *ObjectStore) Upload(_ context.Context, name string, data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpload[name] {
		return 0, fmt.Errorf("adaptortest: injected upload failure for %q", name)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[name] = buf
	return len(data), nil
}

// Append implements capability.ObjectStore.
func (s *ObjectStore) Append(_ context.Context, name string, data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAppend[name] {
		return 0, fmt.Errorf("adaptortest: injected append failure for %q", name)
	}
	s.objects[name] = append(s.objects[name], data...)
	return len(data), nil
}

// Download implements capability.ObjectStore.
func (s *ObjectStore) Download(_ context.Context, name string, dst []byte, offset, length uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDownload[name] {
		return 0, fmt.Errorf("adaptortest: injected download failure for %q", name)
	}
	obj, ok := s.objects[name]
	if !ok {
		return 0, fmt.Errorf("adaptortest: object %q does not exist", name)
	}
	if offset > uint64(len(obj)) {
		return 0, fmt.Errorf("adaptortest: offset %d beyond object %q of length %d", offset, name, len(obj))
	}
	end := offset + length
	if end > uint64(len(obj)) {
		end = uint64(len(obj))
	}
	n := copy(dst, obj[offset:end])
	return n, nil
}

// Object returns a copy of the named object's current content, for
// assertions in tests. The second return is false if the object does not
// exist.
func (s *ObjectStore) Object(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[name]
	if !ok {
		return nil, false
	}
	buf := make([]byte, len(obj))
	copy(buf, obj)
	return buf, true
}

// VersionService is an in-memory capability.VersionService: each call
// returns a strictly incrementing counter starting at 1 (version 0 is
// reserved for the first write, which never calls this RPC).
type VersionService struct {
	mu      sync.Mutex
	next    uint64
	FailErr error
}

// NewVersionService constructs a VersionService whose first bump returns 1.
func NewVersionService() *VersionService {
	return &VersionService{next: 1}
}

// UpdateInodeS3Version implements capability.VersionService.
func (v *VersionService) UpdateInodeS3Version(_ context.Context, _, _ uint64) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.FailErr != nil {
		return 0, v.FailErr
	}
	version := v.next
	v.next++
	return version, nil
}

// ChunkAllocator is an in-memory capability.ChunkAllocator: each call
// returns a strictly incrementing chunk id starting at 0.
type ChunkAllocator struct {
	mu      sync.Mutex
	next    uint64
	FailErr error
}

// NewChunkAllocator constructs a ChunkAllocator whose first allocation
// returns chunk id 0.
func NewChunkAllocator() *ChunkAllocator {
	return &ChunkAllocator{}
}

// AllocateS3Chunk implements capability.ChunkAllocator.
func (c *ChunkAllocator) AllocateS3Chunk(_ context.Context, _ uint64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailErr != nil {
		return 0, c.FailErr
	}
	id := c.next
	c.next++
	return id, nil
}
