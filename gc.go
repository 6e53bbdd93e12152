package mesgo

// gc.go implements the Cheney two-space copying collector of spec §4.2.
// The algorithm is grounded directly on the original's gc_gc_/gc_copy_/
// gc_loop (original_source/mes_gc.c): seed a fresh to-space, copy the
// fixed singletons and every root in a known order, then scan forward
// through the freshly copied cells relocating every car/cdr/payload they
// reference, stamping each from-space cell TBrokenHeart as it is
// forwarded so a cell already copied is never copied twice.

// pushRootFrame/popRootFrame bracket a collection the way the original's
// gc_push_frame/gc_pop_frame do: a single frame recording the VM
// registers is pushed before the copy and popped after, kept distinct
// from the general-purpose marker stack used across primitive calls.
type rootFrame struct {
	r0, r1, r2, r3, m0 Obj
}

func (in *Interp) pushRootFrame() rootFrame {
	return rootFrame{r0: in.r0, r1: in.r1, r2: in.r2, r3: in.r3, m0: in.m0}
}

func (in *Interp) popRootFrame(f rootFrame) {
	in.r0, in.r1, in.r2, in.r3, in.m0 = f.r0, f.r1, f.r2, f.r3, f.m0
}

// GC forces an immediate collection. It is exposed on Interp (not Heap)
// because collecting requires walking every VM register and table, all
// of which are root state owned by Interp rather than the heap itself.
func (in *Interp) GC() {
	frame := in.pushRootFrame()
	in.gcCollect(&frame)
	in.popRootFrame(frame)
}

func (in *Interp) gcCollect(frame *rootFrame) {
	h := in.heap
	if in.log != nil {
		in.log.Debugf("gc: free=%d arena=%d", h.free, h.arenaSize)
	}

	h.toSpc = newSemispace(h.arenaSize + h.jamSize)
	h.free = 1

	// Copy the fixed singletons/keywords first so their indices stay low
	// and stable (spec invariant 6).
	for i := Obj(1); i < h.symbolMax; {
		c := h.active.cells[i]
		in.gcCopy(i)
		switch c.tag {
		case TBytes:
			i += cellsOccupied(int(c.a))
		case TVector, TStruct:
			i += vectorCellsOccupied(int(c.a))
		default:
			i++
		}
	}

	in.symbols = in.gcCopy(in.symbols)
	in.macros = in.gcCopy(in.macros)
	in.ports = in.gcCopy(in.ports)
	frame.m0 = in.gcCopy(frame.m0)
	frame.r0 = in.gcCopy(frame.r0)
	frame.r1 = in.gcCopy(frame.r1)
	frame.r2 = in.gcCopy(frame.r2)
	frame.r3 = in.gcCopy(frame.r3)

	for i, v := range in.stack.items {
		in.stack.items[i] = in.gcCopy(v)
	}

	in.gcScanLoop()
	in.gcFlip()
}

// gcCopy relocates a single cell (and, for vector/struct/bytes cells, its
// out-of-line payload) into to-space, returning the new index. Calling it
// twice on the same from-space index is safe: the second call finds the
// TBrokenHeart left by the first and simply returns the forward address.
func (in *Interp) gcCopy(old Obj) Obj {
	if old == 0 {
		return 0
	}
	h := in.heap
	from := h.active.cells[old]
	if from.tag == TBrokenHeart {
		return from.a
	}

	newIdx := h.free
	h.free++
	h.toSpc.cells[newIdx] = from

	switch from.tag {
	case TVector, TStruct:
		n := int(from.a)
		h.toSpc.cells[newIdx].b = newIdx + 1
		h.free += Obj(n)
		src := h.active.vecs[old]
		elems := make([]Obj, n)
		for i := 0; i < n; i++ {
			elems[i] = in.gcCopy(src[i])
		}
		h.toSpc.vecs[newIdx] = elems
	case TBytes:
		raw := h.active.bytes[old]
		stored := make([]byte, len(raw))
		copy(stored, raw)
		h.toSpc.bytes[newIdx] = stored
		h.free += cellsOccupied(int(from.a)) - 1
	}

	h.active.cells[old] = cell{tag: TBrokenHeart, a: newIdx}
	return newIdx
}

// hasCar/hasCdr classify which tags carry a GC-relevant pointer in which
// field, mirroring the dispatch table in the original's gc_loop.
func hasCar(t Tag) bool {
	switch t {
	case TPair, TRef, TMacro, TVariable:
		return true
	default:
		return false
	}
}

func hasCdr(t Tag) bool {
	switch t {
	case TPair, TClosure, TContinuation, TKeyword, TMacro, TPort, TSpecial,
		TString, TSymbol, TValues:
		return true
	default:
		return false
	}
}

// gcScanLoop is the breadth-first worklist walk: scan advances through
// to-space cells already copied, relocating whatever they still point at
// in from-space, until it catches up with the bump pointer.
func (in *Interp) gcScanLoop() {
	h := in.heap
	scan := Obj(1)
	for scan < h.free {
		c := h.toSpc.cells[scan]
		if c.tag == TBrokenHeart {
			panic(&FatalError{Msg: "gc: broken heart encountered while scanning to-space"})
		}

		if hasCar(c.tag) {
			c.a = in.gcCopy(c.a)
		}
		if hasCdr(c.tag) && c.b != 0 {
			c.b = in.gcCopy(c.b)
		}
		h.toSpc.cells[scan] = c

		if c.tag == TBytes {
			scan += cellsOccupied(int(c.a)) - 1
		} else if c.tag == TVector || c.tag == TStruct {
			scan += Obj(c.a)
		}
		scan++
	}
}

// gcFlip makes the scanned to-space the new active space, raises jamSize
// (the headroom beyond arenaSize given to the next collection's
// to-space) to free + free/2 when occupancy has passed it, and then lets
// growIfNeeded enlarge the arena. needsGC does not consult jamSize.
func (in *Interp) gcFlip() {
	h := in.heap
	if h.free > h.jamSize {
		h.jamSize = h.free + h.free/2
	}
	h.active = h.toSpc
	h.toSpc = nil
	h.growIfNeeded()
}
