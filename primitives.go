package mesgo

// primitive is the Go-native half of a TFUNCTION value: the heap cell
// only carries an index (spec §4.8's "builtin subrs are opaque to the
// collector"), and this table supplies the Go closure plus the name
// writer.go and arity errors use for diagnostics.
type primitive struct {
	name string
	fn   func(in *Interp, args Obj) Obj
}

// installPrimitives populates Interp.primitives and binds every entry
// into the top-level environment under its Scheme name, the combined
// effect of the original's make_primitive + define in mes.c's builtin
// table. Each TFUNCTION cell carries its table index in the car -
// hasCar(TFunction) is false, so the collector never relocates it - since
// keying a Go-side table by the cell's own heap index (which moves on
// every collection) would silently go stale the first time GC ran.
func (in *Interp) installPrimitives() {
	table := []primitive{}
	table = append(table, arithPrimitives()...)
	table = append(table, bitwisePrimitives()...)
	table = append(table, pairPrimitives()...)
	table = append(table, ioPrimitives()...)
	table = append(table, numericPrimitives()...)
	table = append(table, corePrimitives()...)
	table = append(table, osPrimitives()...)

	for i := range table {
		p := &table[i]
		sym := in.intern(p.name)
		idx := Obj(len(in.primitives))
		in.primitives = append(in.primitives, p)
		cell := in.alloc(TFunction, idx, 0)
		in.Define(in.m0, sym, cell)
	}
}

func (in *Interp) primitiveAt(x Obj) *primitive {
	idx := in.Car(x)
	if idx < 0 || int(idx) >= len(in.primitives) {
		return nil
	}
	return in.primitives[idx]
}

func (in *Interp) callPrimitive(proc, args Obj) Obj {
	p := in.primitiveAt(proc)
	if p == nil {
		in.errNotApplicable(proc)
	}
	return p.fn(in, args)
}

// corePrimitives covers the handful of builtins that don't fit the
// arith/bitwise/pairs/io/numeric groupings: type predicates, equality,
// and procedure application helpers exposed as ordinary values (so e.g.
// `map` can take `car` as an argument) rather than only as special
// forms.
func corePrimitives() []primitive {
	return []primitive{
		{"eq?", primEq},
		{"eqv?", primEq},
		{"equal?", primEqual},
		{"not", primNot},
		{"null?", primNullP},
		{"pair?", primPairP},
		{"symbol?", primSymbolP},
		{"string?", primStringP},
		{"number?", primNumberP},
		{"char?", primCharP},
		{"procedure?", primProcedureP},
		{"vector?", primVectorP},
		{"make-vector", primMakeVector},
		{"vector-ref", primVectorRef},
		{"vector-set!", primVectorSet},
		{"vector-length", primVectorLength},
		{"boolean?", primBooleanP},
		{"apply", primApply},
		{"values", primValues},
		{"call-with-values", primCallWithValues},
	}
}

func primEq(in *Interp, args Obj) Obj {
	a := in.Car(args)
	b := in.Car(in.Cdr(args))
	if a == b {
		return in.True
	}
	if in.Tag(a) == TNumber && in.Tag(b) == TNumber && in.NumberValue(a) == in.NumberValue(b) {
		return in.True
	}
	if in.Tag(a) == TChar && in.Tag(b) == TChar && in.CharValue(a) == in.CharValue(b) {
		return in.True
	}
	return in.False
}

func primEqual(in *Interp, args Obj) Obj {
	a := in.Car(args)
	b := in.Car(in.Cdr(args))
	return in.Bool(in.equalValues(a, b))
}

func (in *Interp) equalValues(a, b Obj) bool {
	if a == b {
		return true
	}
	ta, tb := in.Tag(a), in.Tag(b)
	if ta != tb {
		return false
	}
	switch ta {
	case TNumber:
		return in.NumberValue(a) == in.NumberValue(b)
	case TChar:
		return in.CharValue(a) == in.CharValue(b)
	case TString, TSymbol:
		return in.StringValue(a) == in.StringValue(b)
	case TPair:
		return in.equalValues(in.Car(a), in.Car(b)) && in.equalValues(in.Cdr(a), in.Cdr(b))
	case TVector:
		if in.VectorLength(a) != in.VectorLength(b) {
			return false
		}
		for i := 0; i < in.VectorLength(a); i++ {
			if !in.equalValues(in.VectorRef(a, i), in.VectorRef(b, i)) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func primNot(in *Interp, args Obj) Obj { return in.Bool(!in.IsTruthy(in.Car(args))) }

func primNullP(in *Interp, args Obj) Obj { return in.Bool(in.Car(args) == in.Nil) }

func primPairP(in *Interp, args Obj) Obj { return in.Bool(in.IsPair(in.Car(args))) }

func primSymbolP(in *Interp, args Obj) Obj { return in.Bool(in.Tag(in.Car(args)) == TSymbol) }

func primStringP(in *Interp, args Obj) Obj { return in.Bool(in.Tag(in.Car(args)) == TString) }

func primNumberP(in *Interp, args Obj) Obj { return in.Bool(in.Tag(in.Car(args)) == TNumber) }

func primCharP(in *Interp, args Obj) Obj { return in.Bool(in.Tag(in.Car(args)) == TChar) }

func primVectorP(in *Interp, args Obj) Obj { return in.Bool(in.Tag(in.Car(args)) == TVector) }

func (in *Interp) checkVector(proc string, x Obj) {
	if in.Tag(x) != TVector {
		in.errWrongType(proc, x)
	}
}

func (in *Interp) checkVectorIndex(proc string, v, i Obj) int {
	k := int(in.NumberValue(i))
	if k < 0 || k >= in.VectorLength(v) {
		in.errWrongType(proc, i)
	}
	return k
}

func primMakeVector(in *Interp, args Obj) Obj {
	n := int(in.NumberValue(in.Car(args)))
	fill := in.Unspecified
	if rest := in.Cdr(args); in.IsPair(rest) {
		fill = in.Car(rest)
	}
	return in.MakeVector(n, fill)
}

func primVectorRef(in *Interp, args Obj) Obj {
	v := in.Car(args)
	in.checkVector("vector-ref", v)
	i := in.checkVectorIndex("vector-ref", v, in.Car(in.Cdr(args)))
	return in.VectorRef(v, i)
}

func primVectorSet(in *Interp, args Obj) Obj {
	v := in.Car(args)
	in.checkVector("vector-set!", v)
	i := in.checkVectorIndex("vector-set!", v, in.Car(in.Cdr(args)))
	in.VectorSet(v, i, in.Car(in.Cdr(in.Cdr(args))))
	return in.Unspecified
}

func primVectorLength(in *Interp, args Obj) Obj {
	v := in.Car(args)
	in.checkVector("vector-length", v)
	return in.MakeNumber(int64(in.VectorLength(v)))
}

func primBooleanP(in *Interp, args Obj) Obj {
	x := in.Car(args)
	return in.Bool(x == in.True || x == in.False)
}

func primProcedureP(in *Interp, args Obj) Obj {
	switch in.Tag(in.Car(args)) {
	case TClosure, TFunction, TContinuation:
		return in.True
	default:
		return in.False
	}
}

func primApply(in *Interp, args Obj) Obj {
	proc := in.Car(args)
	rest := in.Cdr(args)
	elems, tail := in.ListToSlice(rest)
	if len(elems) == 0 {
		return in.applyProcedure(proc, in.Nil)
	}
	_ = tail
	callArgs := elems[len(elems)-1]
	for i := len(elems) - 2; i >= 0; i-- {
		callArgs = in.Cons(elems[i], callArgs)
	}
	return in.applyProcedure(proc, callArgs)
}

// primValues/primCallWithValues give multiple return values a minimal,
// single-consumer implementation (spec §4.8 Non-goals excludes full
// multiple-value continuations): values packs its arguments into a
// TVALUES cell, and call-with-values unpacks one straight back into an
// argument list for the consumer, with no effect on normal single-value
// call sites.
func primValues(in *Interp, args Obj) Obj {
	n := in.ListLength(args)
	if n == 1 {
		return in.Car(args)
	}
	return in.alloc(TValues, 0, args)
}

func primCallWithValues(in *Interp, args Obj) Obj {
	producer := in.Car(args)
	consumer := in.Car(in.Cdr(args))
	result := in.applyProcedure(producer, in.Nil)
	if in.Tag(result) == TValues {
		return in.applyProcedure(consumer, in.Cdr(result))
	}
	return in.applyProcedure(consumer, in.List(result))
}
