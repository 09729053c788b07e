package inode

import "testing"

func TestChunkInfo_End(t *testing.T) {
	c := ChunkInfo{Offset: 10, Len: 5}
	if got := c.End(); got != 15 {
		t.Errorf("End() = %d, want 15", got)
	}
}

func TestChunkInfo_End_Zero(t *testing.T) {
	c := ChunkInfo{Offset: 10, Len: 0}
	if got := c.End(); got != 10 {
		t.Errorf("End() = %d, want 10", got)
	}
}
