package mesgo

// semispace is one half of the two-space copying heap: a flat cell array
// plus the side tables that hold out-of-band payloads for byte- and
// vector-bearing cells. Keeping payloads in maps keyed by header index
// (rather than overlaying raw bytes onto trailing cell words, as the
// original C core does) lets Go's own allocator and garbage collector
// manage the payload memory while mesgo's copying collector still walks
// and relocates header indices exactly as spec §4.2 describes.
type semispace struct {
	cells []cell
	bytes map[Obj][]byte
	vecs  map[Obj][]Obj
}

func newSemispace(capacity Obj) *semispace {
	return &semispace{
		cells: make([]cell, capacity),
		bytes: make(map[Obj][]byte),
		vecs:  make(map[Obj][]Obj),
	}
}

// Heap owns the two semispaces and the bump-pointer/arena-growth state
// described in spec §3 and §4.1. It holds no VM roots of its own - those
// live on Interp - so Heap can be exercised and tested in isolation from
// the evaluator.
type Heap struct {
	active *semispace
	toSpc  *semispace // non-nil only while a collection is in progress

	free         Obj
	arenaSize    Obj
	maxArenaSize Obj
	safety       Obj
	jamSize      Obj

	// symbolMax is the index one past the last pre-seeded singleton/
	// keyword cell. Collection copies indices [1, symbolMax) first, in
	// order, so singletons keep stable low indices across a GC.
	symbolMax Obj
}

const defaultSafety = 1024

// NewHeap allocates the initial semispace. arenaCells is the number of
// cells in one semispace (spec §6.3 MES_ARENA); maxArenaCells bounds
// growth (MES_MAX_ARENA). The safety margin starts at defaultSafety, or at
// a quarter of arenaCells when that is smaller.
func NewHeap(arenaCells, maxArenaCells Obj) *Heap {
	if maxArenaCells < arenaCells {
		maxArenaCells = arenaCells
	}
	safety := Obj(defaultSafety)
	if safety > arenaCells/4 {
		safety = arenaCells / 4
	}
	h := &Heap{
		active:       newSemispace(arenaCells + defaultSafety),
		free:         1,
		arenaSize:    arenaCells,
		maxArenaSize: maxArenaCells,
		safety:       safety,
		jamSize:      defaultSafety,
	}
	return h
}

// needsGC reports whether the next allocation must be preceded by a
// collection, per invariant 5 of spec §3.3.
func (h *Heap) needsGC() bool {
	return h.free+h.safety > h.arenaSize
}

// cellAt gives read access to a header cell in the active space. Callers
// outside this file should prefer the typed accessors in accessors.go rather than
// poking at .a/.b directly, mirroring how the rest of the codebase treats
// cell layout as heap.go's private business.
func (h *Heap) cellAt(o Obj) cell {
	return h.active.cells[o]
}

func (h *Heap) setCell(o Obj, c cell) {
	h.active.cells[o] = c
}

func (h *Heap) tag(o Obj) Tag { return h.active.cells[o].tag }

// growIfNeeded doubles the active arena (and its safety margin) after a
// collection when occupancy is still above half capacity, capping at
// maxArenaSize. This is the arena-growth policy spec §4.1 asks a
// reimplementation to pin down explicitly rather than leave ambiguous.
func (h *Heap) growIfNeeded() {
	if h.free+h.safety <= h.arenaSize/2 {
		return
	}
	if h.arenaSize >= h.maxArenaSize {
		return
	}
	newArena := h.arenaSize * 2
	if newArena > h.maxArenaSize {
		newArena = h.maxArenaSize
	}
	newSafety := h.safety * 2
	grown := newSemispace(newArena + newSafety)
	copy(grown.cells, h.active.cells[:h.free])
	for k, v := range h.active.bytes {
		grown.bytes[k] = v
	}
	for k, v := range h.active.vecs {
		grown.vecs[k] = v
	}
	h.active = grown
	h.arenaSize = newArena
	h.safety = newSafety
}
