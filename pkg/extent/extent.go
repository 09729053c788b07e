// Package extent implements the interval algebra the translator needs to
// classify writes and to reconcile an inode's chunk index into a
// conflict-free view at read time: overlap/append detection and
// overwrite-cutting of older ranges by a newer one.
//
// Every function here is pure: it reasons about inode.ChunkInfo values and
// returns new ones, with no I/O and no mutation of its inputs. The write and
// read paths in pkg/adaptor are the only callers.
package extent

import (
	"github.com/lattixfs/s3adaptor/pkg/geometry"
	"github.com/lattixfs/s3adaptor/pkg/inode"
)

// Overlaps reports whether two ranges intersect: o < e.offset+e.len ∧
// e.offset < o+l, generalized to two arbitrary ranges.
func Overlaps(a, b inode.ChunkInfo) bool {
	return a.Offset < b.End() && b.Offset < a.End()
}

// IsOverlap reports whether the candidate range [offset, offset+length)
// intersects any entry already in chunks.
func IsOverlap(chunks []inode.ChunkInfo, offset, length uint64) bool {
	cand := inode.ChunkInfo{Offset: offset, Len: length}
	for _, e := range chunks {
		if Overlaps(cand, e) {
			return true
		}
	}
	return false
}

// IsAppend reports whether the candidate range begins exactly where some
// existing entry ends, and that junction falls within a single block, so the
// write can use the object store's Append instead of a fresh Upload.
// Callers must only rely on this when IsOverlap is false.
//
// The block compared against the append point is the one holding e's last
// written byte, not e's first byte: for a single-block entry the two
// coincide, but an entry spanning several blocks only has room to append
// into whichever block it last wrote into. Comparing against the first byte
// instead (as a literal reading of "e.offset / B" would) misclassifies an
// append into a multi-block entry's trailing partial block as a hole.
func IsAppend(chunks []inode.ChunkInfo, offset uint64, g geometry.Geometry) bool {
	for _, e := range chunks {
		if e.End() == offset && g.GlobalBlockIndex(e.End()-1) == g.GlobalBlockIndex(offset) {
			return true
		}
	}
	return false
}

// CutOverlap returns the fragments of older not shadowed by newer.
// Precondition: newer.Version >= older.Version. Each returned fragment
// inherits older's ChunkID and Version.
//
// The four cases below are a tagged decision over the possible overlap
// geometries, not a single chained conditional: left-partial,
// fully-contained, fully-covered, right-partial.
func CutOverlap(newer, older inode.ChunkInfo) []inode.ChunkInfo {
	fragment := func(start, end uint64) inode.ChunkInfo {
		return inode.ChunkInfo{
			ChunkID: older.ChunkID,
			Version: older.Version,
			Offset:  start,
			Len:     end - start,
		}
	}

	switch {
	case newer.Offset > older.Offset && newer.Offset < older.End():
		// newer starts strictly inside older.
		if newer.End() >= older.End() {
			// newer reaches or passes older's end: only a left remainder survives.
			return []inode.ChunkInfo{fragment(older.Offset, newer.Offset)}
		}
		// newer is strictly inside older: both a left and a right remainder survive.
		return []inode.ChunkInfo{
			fragment(older.Offset, newer.Offset),
			fragment(newer.End(), older.End()),
		}

	case newer.Offset <= older.Offset && newer.End() >= older.End():
		// newer covers older entirely: nothing survives.
		return nil

	default:
		// newer overlaps older's left side: newer.Offset <= older.Offset <
		// newer.End() < older.End(). Only a right remainder survives.
		return []inode.ChunkInfo{fragment(newer.End(), older.End())}
	}
}

// EffectiveCoverage resolves an inode's chunk index (stored in insertion
// order, later entries being more recent) into a set of non-overlapping
// ranges, each attributed to its latest writer. Every entry in chunks is
// folded in turn, cutting any already-accumulated range it overlaps
// (relying on later-in-list implying newer-or-equal version) before being
// appended itself.
//
// The result is unsorted; callers that need it ordered by offset (the read
// path does) must sort it themselves.
func EffectiveCoverage(chunks []inode.ChunkInfo) []inode.ChunkInfo {
	working := make([]inode.ChunkInfo, 0, len(chunks))

	for _, e := range chunks {
		next := make([]inode.ChunkInfo, 0, len(working)+1)
		for _, w := range working {
			if Overlaps(e, w) {
				next = append(next, CutOverlap(e, w)...)
			} else {
				next = append(next, w)
			}
		}
		next = append(next, e)
		working = next
	}

	return working
}
