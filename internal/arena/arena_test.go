package arena

import "testing"

type testNode struct {
	pivot int
}

func TestArenaAllocIsStable(t *testing.T) {
	a := New[testNode](4)

	ptrs := make([]*testNode, 10)
	for i := range ptrs {
		n := a.Alloc()
		n.pivot = i
		ptrs[i] = n
	}

	for i, p := range ptrs {
		if p.pivot != i {
			t.Fatalf("pointer %d was clobbered: got pivot=%d", i, p.pivot)
		}
	}

	if got := a.Len(); got != 10 {
		t.Fatalf("Len() = %d, want 10", got)
	}
}

func TestArenaDefaultChunkSize(t *testing.T) {
	a := New[testNode](0)
	if a.chunkSize != DefaultChunkSize {
		t.Fatalf("chunkSize = %d, want %d", a.chunkSize, DefaultChunkSize)
	}
}

func TestArenaReset(t *testing.T) {
	a := New[testNode](4)
	for i := 0; i < 6; i++ {
		a.Alloc()
	}
	if got := a.Len(); got != 6 {
		t.Fatalf("Len() = %d, want 6", got)
	}

	a.Reset()
	if got := a.Len(); got != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", got)
	}

	n := a.Alloc()
	n.pivot = 42
	if got := a.Len(); got != 1 {
		t.Fatalf("Len() after post-reset Alloc = %d, want 1", got)
	}
}

func TestArenaGrowsAcrossChunks(t *testing.T) {
	a := New[testNode](2)
	for i := 0; i < 5; i++ {
		a.Alloc()
	}
	if got := len(a.chunks); got != 3 {
		t.Fatalf("chunk count = %d, want 3", got)
	}
}
