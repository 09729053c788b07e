package extent

import (
	"reflect"
	"sort"
	"testing"

	"github.com/lattixfs/s3adaptor/pkg/geometry"
	"github.com/lattixfs/s3adaptor/pkg/inode"
)

func ci(chunkID, version, offset, length uint64) inode.ChunkInfo {
	return inode.ChunkInfo{ChunkID: chunkID, Version: version, Offset: offset, Len: length}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b inode.ChunkInfo
		want bool
	}{
		{"disjoint before", ci(0, 0, 0, 4), ci(0, 0, 4, 4), false},
		{"disjoint after", ci(0, 0, 4, 4), ci(0, 0, 0, 4), false},
		{"touching start", ci(0, 0, 0, 4), ci(0, 0, 4, 4), false},
		{"partial overlap", ci(0, 0, 0, 6), ci(0, 0, 4, 6), true},
		{"identical", ci(0, 0, 0, 6), ci(0, 0, 0, 6), true},
		{"contained", ci(0, 0, 2, 2), ci(0, 0, 0, 10), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Overlaps(c.a, c.b); got != c.want {
				t.Errorf("Overlaps(%v,%v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestIsOverlap(t *testing.T) {
	chunks := []inode.ChunkInfo{ci(1, 0, 0, 10)}
	if !IsOverlap(chunks, 4, 4) {
		t.Errorf("expected overlap")
	}
	if IsOverlap(chunks, 10, 5) {
		t.Errorf("expected no overlap (contiguous append point)")
	}
	if IsOverlap(chunks, 20, 5) {
		t.Errorf("expected no overlap (disjoint hole)")
	}
}

func TestIsAppend(t *testing.T) {
	g, err := geometry.New(4, 16)
	if err != nil {
		t.Fatal(err)
	}

	// Write ABCDEFGHIJ at [0,10): last byte (offset 9) falls in block 2
	// ([8,12)), which still has room for two more bytes.
	chunks := []inode.ChunkInfo{ci(1, 0, 0, 10)}

	if !IsAppend(chunks, 10, g) {
		t.Errorf("expected append at offset 10 (same block as entry's last byte)")
	}
	if IsAppend(chunks, 11, g) {
		t.Errorf("offset 11 does not immediately follow any entry's end")
	}
}

func TestIsAppend_MultiBlockEntry(t *testing.T) {
	g, err := geometry.New(4, 16)
	if err != nil {
		t.Fatal(err)
	}
	// Entry spans [2, 6): starts in block 0, last byte (offset 5) is in
	// block 1, which still has two bytes of room. The append point falls
	// in the same block as the entry's last byte, not its first.
	chunks := []inode.ChunkInfo{ci(1, 0, 2, 4)}
	if !IsAppend(chunks, 6, g) {
		t.Errorf("expected append: entry's last byte and the append point share block 1")
	}
}

func TestIsAppend_FullBlockRejected(t *testing.T) {
	g, err := geometry.New(4, 16)
	if err != nil {
		t.Fatal(err)
	}
	// Entry [0,4) exactly fills block 0; appending at offset 4 starts a
	// brand-new, empty block 1, so there is nothing to append to.
	chunks := []inode.ChunkInfo{ci(1, 0, 0, 4)}
	if IsAppend(chunks, 4, g) {
		t.Errorf("append should be rejected when the junction crosses into a fresh block")
	}
}

func TestCutOverlap_NewerStrictlyInside(t *testing.T) {
	older := ci(1, 0, 0, 20)
	newer := ci(1, 1, 8, 4) // [8,12) inside [0,20)

	got := CutOverlap(newer, older)
	want := []inode.ChunkInfo{
		ci(1, 0, 0, 8),
		ci(1, 0, 12, 8),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CutOverlap = %v, want %v", got, want)
	}
}

func TestCutOverlap_NewerInsideReachingEnd(t *testing.T) {
	older := ci(1, 0, 0, 20)
	newer := ci(1, 1, 8, 12) // [8,20) reaches older's end exactly

	got := CutOverlap(newer, older)
	want := []inode.ChunkInfo{ci(1, 0, 0, 8)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CutOverlap = %v, want %v", got, want)
	}
}

func TestCutOverlap_NewerCoversEntirely(t *testing.T) {
	older := ci(1, 0, 4, 8) // [4,12)
	newer := ci(1, 1, 0, 20)

	got := CutOverlap(newer, older)
	if len(got) != 0 {
		t.Errorf("CutOverlap = %v, want no fragments", got)
	}
}

func TestCutOverlap_NewerOverlapsLeft(t *testing.T) {
	older := ci(1, 0, 8, 12) // [8,20)
	newer := ci(1, 1, 0, 12) // [0,12)

	got := CutOverlap(newer, older)
	want := []inode.ChunkInfo{ci(1, 0, 12, 8)} // [12,20)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CutOverlap = %v, want %v", got, want)
	}
}

func TestEffectiveCoverage_NoOverlap(t *testing.T) {
	chunks := []inode.ChunkInfo{
		ci(1, 0, 0, 8),
		ci(1, 0, 8, 8),
	}
	got := EffectiveCoverage(chunks)
	sortByOffset(got)
	if !reflect.DeepEqual(got, chunks) {
		t.Errorf("EffectiveCoverage = %v, want %v", got, chunks)
	}
}

func TestEffectiveCoverage_OverwriteMiddle(t *testing.T) {
	// A full write followed by a middle overwrite at a newer version.
	v0 := ci(1, 0, 0, 20)
	v1 := ci(1, 1, 8, 4) // overwrite [8,12) at version 1

	got := EffectiveCoverage([]inode.ChunkInfo{v0, v1})
	sortByOffset(got)

	want := []inode.ChunkInfo{
		ci(1, 0, 0, 8),
		ci(1, 1, 8, 4),
		ci(1, 0, 12, 8),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EffectiveCoverage = %v, want %v", got, want)
	}
}

func TestEffectiveCoverage_LaterFullyShadowsEarlier(t *testing.T) {
	v0 := ci(1, 0, 0, 10)
	v1 := ci(2, 1, 0, 10) // full overwrite, new chunk id

	got := EffectiveCoverage([]inode.ChunkInfo{v0, v1})
	want := []inode.ChunkInfo{v1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EffectiveCoverage = %v, want %v", got, want)
	}
}

func sortByOffset(chunks []inode.ChunkInfo) {
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Offset < chunks[j].Offset })
}
