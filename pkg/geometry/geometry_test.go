package geometry

import "testing"

func testGeometry(t *testing.T) Geometry {
	g, err := New(4, 16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNew_InvalidSizes(t *testing.T) {
	cases := []struct {
		name       string
		block, chk uint64
	}{
		{"zero block", 0, 16},
		{"zero chunk", 4, 0},
		{"chunk not multiple of block", 4, 15},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.block, c.chk); err == nil {
				t.Fatalf("expected error for block=%d chunk=%d", c.block, c.chk)
			}
		})
	}
}

func TestChunkIndex(t *testing.T) {
	g := testGeometry(t)
	cases := []struct {
		offset uint64
		want   uint64
	}{
		{0, 0},
		{15, 0},
		{16, 1},
		{31, 1},
		{32, 2},
	}
	for _, c := range cases {
		if got := g.ChunkIndex(c.offset); got != c.want {
			t.Errorf("ChunkIndex(%d) = %d, want %d", c.offset, got, c.want)
		}
	}
}

func TestSameChunk(t *testing.T) {
	g := testGeometry(t)
	cases := []struct {
		offset, length uint64
		want           bool
	}{
		{0, 16, true},   // [0,16) -> last byte 15, chunk 0
		{0, 17, false},  // spills into chunk 1
		{14, 6, false},  // [14,20) spans chunk boundary at 16
		{14, 2, true},   // [14,16) stays in chunk 0
		{16, 16, true},  // entirely chunk 1
		{0, 0, true},    // zero length defined as trivially same chunk
	}
	for _, c := range cases {
		if got := g.SameChunk(c.offset, c.length); got != c.want {
			t.Errorf("SameChunk(%d,%d) = %v, want %v", c.offset, c.length, got, c.want)
		}
	}
}

func TestBlockIndexInChunk(t *testing.T) {
	g := testGeometry(t)
	cases := []struct {
		offsetInChunk uint64
		want          uint64
	}{
		{0, 0},
		{3, 0},
		{4, 1},
		{15, 3},
	}
	for _, c := range cases {
		if got := g.BlockIndexInChunk(c.offsetInChunk); got != c.want {
			t.Errorf("BlockIndexInChunk(%d) = %d, want %d", c.offsetInChunk, got, c.want)
		}
	}
}

func TestGlobalBlockIndex(t *testing.T) {
	g := testGeometry(t)
	if got := g.GlobalBlockIndex(10); got != 2 {
		t.Errorf("GlobalBlockIndex(10) = %d, want 2", got)
	}
	if got := g.GlobalBlockIndex(20); got != 5 {
		t.Errorf("GlobalBlockIndex(20) = %d, want 5", got)
	}
}

func TestBlocksPerChunk(t *testing.T) {
	g := testGeometry(t)
	if got := g.BlocksPerChunk(); got != 4 {
		t.Errorf("BlocksPerChunk() = %d, want 4", got)
	}
}

func TestChunkBounds(t *testing.T) {
	g := testGeometry(t)
	start, end := g.ChunkBounds(1)
	if start != 16 || end != 32 {
		t.Errorf("ChunkBounds(1) = (%d,%d), want (16,32)", start, end)
	}
}
