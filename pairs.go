package mesgo

// pairPrimitives is spec §4.8's cons/car/cdr/set-car!/set-cdr! family,
// plus the handful of list helpers the boot code needs (length, append,
// reverse, list, list-ref) built directly on them the way the original's
// scm layer does rather than in terms of each other through apply.
func pairPrimitives() []primitive {
	return []primitive{
		{"cons", primCons},
		{"car", primCar},
		{"cdr", primCdr},
		{"set-car!", primSetCar},
		{"set-cdr!", primSetCdr},
		{"list", primList},
		{"length", primLength},
		{"append", primAppend},
		{"reverse", primReverse},
		{"list-ref", primListRef},
		{"list-tail", primListTail},
		{"memq", primMemq},
		{"member", primMember},
		{"assq", primAssq},
		{"assoc", primAssoc},
		{"map", primMap},
		{"for-each", primForEach},
	}
}

func primCons(in *Interp, args Obj) Obj {
	return in.Cons(in.Car(args), in.Car(in.Cdr(args)))
}

func (in *Interp) checkPair(proc string, x Obj) {
	if !in.IsPair(x) {
		in.errWrongType(proc, x)
	}
}

func primCar(in *Interp, args Obj) Obj {
	x := in.Car(args)
	in.checkPair("car", x)
	return in.Car(x)
}

func primCdr(in *Interp, args Obj) Obj {
	x := in.Car(args)
	in.checkPair("cdr", x)
	return in.Cdr(x)
}

func primSetCar(in *Interp, args Obj) Obj {
	x := in.Car(args)
	in.checkPair("set-car!", x)
	in.SetCar(x, in.Car(in.Cdr(args)))
	return in.Unspecified
}

func primSetCdr(in *Interp, args Obj) Obj {
	x := in.Car(args)
	in.checkPair("set-cdr!", x)
	in.SetCdr(x, in.Car(in.Cdr(args)))
	return in.Unspecified
}

func primList(in *Interp, args Obj) Obj { return args }

func primLength(in *Interp, args Obj) Obj {
	return in.MakeNumber(int64(in.ListLength(in.Car(args))))
}

func primAppend(in *Interp, args Obj) Obj {
	lists, _ := in.ListToSlice(args)
	if len(lists) == 0 {
		return in.Nil
	}
	mark := in.stack.Mark()
	resultSlot := in.stack.Mark()
	in.stack.Push(lists[len(lists)-1])
	for i := len(lists) - 2; i >= 0; i-- {
		elems, _ := in.ListToSlice(lists[i])
		for j := len(elems) - 1; j >= 0; j-- {
			in.stack.items[resultSlot] = in.Cons(elems[j], in.stack.items[resultSlot])
		}
	}
	result := in.stack.items[resultSlot]
	in.stack.Restore(mark)
	return result
}

func primReverse(in *Interp, args Obj) Obj {
	mark := in.stack.Mark()
	resultSlot := in.stack.Mark()
	in.stack.Push(in.Nil)
	for l := in.Car(args); in.IsPair(l); l = in.Cdr(l) {
		in.stack.items[resultSlot] = in.Cons(in.Car(l), in.stack.items[resultSlot])
	}
	result := in.stack.items[resultSlot]
	in.stack.Restore(mark)
	return result
}

func primListRef(in *Interp, args Obj) Obj {
	l := in.Car(args)
	k := in.NumberValue(in.Car(in.Cdr(args)))
	for ; k > 0; k-- {
		in.checkPair("list-ref", l)
		l = in.Cdr(l)
	}
	in.checkPair("list-ref", l)
	return in.Car(l)
}

func primListTail(in *Interp, args Obj) Obj {
	l := in.Car(args)
	k := in.NumberValue(in.Car(in.Cdr(args)))
	for ; k > 0; k-- {
		in.checkPair("list-tail", l)
		l = in.Cdr(l)
	}
	return l
}

func primMemq(in *Interp, args Obj) Obj {
	needle := in.Car(args)
	for l := in.Car(in.Cdr(args)); in.IsPair(l); l = in.Cdr(l) {
		if in.Car(l) == needle {
			return l
		}
	}
	return in.False
}

func primMember(in *Interp, args Obj) Obj {
	needle := in.Car(args)
	for l := in.Car(in.Cdr(args)); in.IsPair(l); l = in.Cdr(l) {
		if in.equalValues(in.Car(l), needle) {
			return l
		}
	}
	return in.False
}

func primAssq(in *Interp, args Obj) Obj {
	key := in.Car(args)
	for l := in.Car(in.Cdr(args)); in.IsPair(l); l = in.Cdr(l) {
		entry := in.Car(l)
		if in.IsPair(entry) && in.Car(entry) == key {
			return entry
		}
	}
	return in.False
}

func primAssoc(in *Interp, args Obj) Obj {
	key := in.Car(args)
	for l := in.Car(in.Cdr(args)); in.IsPair(l); l = in.Cdr(l) {
		entry := in.Car(l)
		if in.IsPair(entry) && in.equalValues(in.Car(entry), key) {
			return entry
		}
	}
	return in.False
}

// primMap/primForEach support a single list argument, the common case
// boot code relies on; any further list arguments are ignored.
func primMap(in *Interp, args Obj) Obj {
	mark := in.stack.Mark()
	in.stack.Push(in.Car(args))
	procSlot := mark
	lSlot := in.stack.Mark()
	in.stack.Push(in.Car(in.Cdr(args)))
	headSlot := in.stack.Mark()
	in.stack.Push(in.Nil)
	tailSlot := in.stack.Mark()
	in.stack.Push(in.Nil)
	for in.IsPair(in.stack.items[lSlot]) {
		proc := in.stack.items[procSlot]
		v := in.applyProcedure(proc, in.List(in.Car(in.stack.items[lSlot])))
		cell := in.Cons(v, in.Nil)
		if in.stack.items[headSlot] == in.Nil {
			in.stack.items[headSlot] = cell
			in.stack.items[tailSlot] = cell
		} else {
			in.SetCdr(in.stack.items[tailSlot], cell)
			in.stack.items[tailSlot] = cell
		}
		in.stack.items[lSlot] = in.Cdr(in.stack.items[lSlot])
	}
	result := in.stack.items[headSlot]
	in.stack.Restore(mark)
	return result
}

func primForEach(in *Interp, args Obj) Obj {
	mark := in.stack.Mark()
	procSlot := mark
	in.stack.Push(in.Car(args))
	lSlot := in.stack.Mark()
	in.stack.Push(in.Car(in.Cdr(args)))
	for in.IsPair(in.stack.items[lSlot]) {
		in.applyProcedure(in.stack.items[procSlot], in.List(in.Car(in.stack.items[lSlot])))
		in.stack.items[lSlot] = in.Cdr(in.stack.items[lSlot])
	}
	in.stack.Restore(mark)
	return in.Unspecified
}
