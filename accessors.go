package mesgo

// This file gathers the typed accessors over cell.a/cell.b that the rest
// of the package uses instead of touching heap internals directly - the
// same role cellAt/setCell play for raw access, but named for what each
// tag actually stores there (spec §3.1's "interpretation depends on tag").

func (in *Interp) Car(x Obj) Obj { return in.heap.cellAt(x).a }
func (in *Interp) Cdr(x Obj) Obj { return in.heap.cellAt(x).b }

func (in *Interp) SetCar(x, v Obj) {
	c := in.heap.cellAt(x)
	c.a = v
	in.heap.setCell(x, c)
}

func (in *Interp) SetCdr(x, v Obj) {
	c := in.heap.cellAt(x)
	c.b = v
	in.heap.setCell(x, c)
}

func (in *Interp) Tag(x Obj) Tag { return in.heap.tag(x) }

func (in *Interp) IsPair(x Obj) bool { return in.heap.tag(x) == TPair }

func (in *Interp) Cons(a, b Obj) Obj { return in.alloc(TPair, a, b) }

// NumberValue returns the embedded int64 of a TNUMBER cell.
func (in *Interp) NumberValue(x Obj) int64 { return int64(in.heap.cellAt(x).b) }

func (in *Interp) MakeNumber(n int64) Obj { return in.alloc(TNumber, 0, Obj(n)) }

func (in *Interp) CharValue(x Obj) byte { return byte(in.heap.cellAt(x).a) }

func (in *Interp) MakeChar(b byte) Obj { return in.alloc(TChar, Obj(b), 0) }

// BytesOf returns the raw payload of a TBYTES/TSTRING/TSYMBOL-backed
// cell, following the b-field indirection for string/symbol headers.
func (in *Interp) BytesOf(x Obj) []byte {
	tg := in.heap.tag(x)
	base := x
	if tg == TString || tg == TSymbol {
		base = in.heap.cellAt(x).b
	}
	raw := in.heap.active.bytes[base]
	if raw == nil {
		return nil
	}
	return raw[:len(raw)-1] // drop the trailing NUL
}

func (in *Interp) StringValue(x Obj) string { return string(in.BytesOf(x)) }

func (in *Interp) MakeString(s string) Obj {
	b := in.allocBytes([]byte(s))
	return in.alloc(TString, 0, b)
}

func (in *Interp) VectorLength(x Obj) int { return int(in.heap.cellAt(x).a) }

func (in *Interp) VectorRef(x Obj, i int) Obj {
	return in.heap.active.vecs[x][i]
}

func (in *Interp) VectorSet(x Obj, i int, v Obj) {
	in.heap.active.vecs[x][i] = v
}

func (in *Interp) MakeVector(n int, fill Obj) Obj {
	return in.allocVector(TVector, n, fill)
}

// List builds a proper list from Go-side elements, most-recently-cons'd
// first so the result preserves argument order.
func (in *Interp) List(elems ...Obj) Obj {
	result := in.Nil
	for i := len(elems) - 1; i >= 0; i-- {
		result = in.Cons(elems[i], result)
	}
	return result
}

// ListToSlice walks a proper (or improper) list into a Go slice, stopping
// at the first non-pair cdr. The final non-nil tail, if any, is returned
// separately so callers can detect dotted lists.
func (in *Interp) ListToSlice(x Obj) (elems []Obj, tail Obj) {
	for in.IsPair(x) {
		elems = append(elems, in.Car(x))
		x = in.Cdr(x)
	}
	tail = x
	return elems, tail
}

func (in *Interp) ListLength(x Obj) int {
	n := 0
	for in.IsPair(x) {
		n++
		x = in.Cdr(x)
	}
	return n
}
