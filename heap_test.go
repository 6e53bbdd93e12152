package mesgo

import "testing"

func TestCellsOccupied(t *testing.T) {
	cases := []struct {
		length int
		want   Obj
	}{
		{0, 1},
		{1, 2},
		{16, 2},
		{17, 3},
		{32, 3},
	}
	for _, c := range cases {
		if got := cellsOccupied(c.length); got != c.want {
			t.Errorf("cellsOccupied(%d) = %d, want %d", c.length, got, c.want)
		}
	}
}

func TestHeapNeedsGCRespectsSafetyMargin(t *testing.T) {
	h := NewHeap(16, 1024)
	if h.needsGC() {
		t.Fatalf("freshly constructed heap should not need GC")
	}
	h.free = h.arenaSize - h.safety + 1
	if !h.needsGC() {
		t.Errorf("heap within safety margin of arenaSize should need GC")
	}
}

func TestHeapGrowIfNeededDoublesArena(t *testing.T) {
	h := NewHeap(16, 1024)
	h.free = h.arenaSize/2 + 1
	before := h.arenaSize
	h.growIfNeeded()
	if h.arenaSize != before*2 {
		t.Errorf("arenaSize after growIfNeeded = %d, want %d", h.arenaSize, before*2)
	}
}

func TestHeapGrowIfNeededCapsAtMaxArena(t *testing.T) {
	h := NewHeap(16, 20)
	h.free = h.arenaSize/2 + 1
	h.growIfNeeded()
	if h.arenaSize != 20 {
		t.Errorf("arenaSize after capped growth = %d, want 20", h.arenaSize)
	}
}

func TestAllocCellAdvancesFree(t *testing.T) {
	h := NewHeap(64, 1024)
	before := h.free
	idx := h.allocCell(TPair, 0, 0)
	if idx != before {
		t.Errorf("allocCell returned %d, want %d", idx, before)
	}
	if h.free != before+1 {
		t.Errorf("heap.free after allocCell = %d, want %d", h.free, before+1)
	}
}
