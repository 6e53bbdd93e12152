package mesgo

// allocCell is the primitive §4.1 allocator for a plain three-word cell
// (pairs, closures, ports, ...). It does not trigger GC itself; callers go
// through Interp.alloc, which checks needsGC first so that the collector
// always sees a consistent set of roots.
func (h *Heap) allocCell(tag Tag, a, b Obj) Obj {
	idx := h.free
	h.active.cells[idx] = cell{tag: tag, a: a, b: b}
	h.free++
	return idx
}

// allocBytes allocates a TBYTES (or TSTRING/TSYMBOL-backing) payload cell
// holding data, reserving cellsOccupied(len(data)) cells per spec §3.1 so
// that arena accounting and the GC scan loop's skip-distance agree. A
// trailing NUL keeps the C-library null-termination invariant (spec
// invariant 3) true for callers that hand payloads to host primitives.
func (h *Heap) allocBytes(data []byte) Obj {
	idx := h.free
	n := cellsOccupied(len(data))
	h.free += n
	stored := make([]byte, len(data)+1)
	copy(stored, data)
	h.active.cells[idx] = cell{tag: TBytes, a: Obj(len(data)), b: 0}
	h.active.bytes[idx] = stored
	return idx
}

// allocVector allocates a TVECTOR (or TSTRUCT) header plus n element
// slots, all initialized to fill.
func (h *Heap) allocVector(tag Tag, n int, fill Obj) Obj {
	idx := h.free
	h.free += vectorCellsOccupied(n)
	elems := make([]Obj, n)
	for i := range elems {
		elems[i] = fill
	}
	h.active.cells[idx] = cell{tag: tag, a: Obj(n), b: idx + 1}
	h.active.vecs[idx] = elems
	return idx
}

// alloc is the Interp-level entry point: it enforces invariant 5 (GC
// before the arena would overflow its safety margin) before delegating to
// the Heap's bump-pointer allocator.
func (in *Interp) alloc(tag Tag, a, b Obj) Obj {
	if in.heap.needsGC() {
		in.GC()
	}
	return in.heap.allocCell(tag, a, b)
}

func (in *Interp) allocBytes(data []byte) Obj {
	if in.heap.needsGC() {
		in.GC()
	}
	return in.heap.allocBytes(data)
}

func (in *Interp) allocVector(tag Tag, n int, fill Obj) Obj {
	if in.heap.needsGC() {
		in.GC()
	}
	return in.heap.allocVector(tag, n, fill)
}
