package mesgo

// lookupMacro scans g_macros - an alist of (name . TMacro-cell) pairs -
// for sym, returning the transformer closure wrapped inside the TMacro
// cell, or 0 if sym names no macro.
func (in *Interp) lookupMacro(sym Obj) Obj {
	for l := in.macros; in.IsPair(l); l = in.Cdr(l) {
		entry := in.Car(l)
		if in.Car(entry) == sym {
			return in.Car(in.Cdr(entry)) // unwrap TMacro -> transformer
		}
	}
	return 0
}

// defineMacroEntry installs name as a macro bound to the given
// transformer closure, prepending (name . TMacro-cell) to g_macros - the
// effect of spec §4.7's define-macro. The transformer is boxed in a
// TMacro cell (rather than stored bare) so that a symbol whose *value*
// resolves to a macro - not just a head found via the g_macros table -
// is recognizable by tag in Eval's dispatch (spec §4.6).
func (in *Interp) defineMacroEntry(name, transformer Obj) {
	macroCell := in.alloc(TMacro, transformer, 0)
	in.macros = in.Cons(in.Cons(name, macroCell), in.macros)
}

// Expand is spec §4.7's expand_macros: walk x, and whenever a pair's car
// is a symbol mapped in g_macros, apply the macro to the unevaluated
// cdr and recursively re-expand the result until no head is a macro
// (the fixpoint spec §8 calls out: expand(expand(x)) == expand(x) for
// macro-free x). Sub-forms that are not themselves macro invocations are
// still walked so a macro use nested inside an ordinary form is found.
func (in *Interp) Expand(x Obj) (Obj, error) {
	var result Obj
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if se, ok := r.(*SchemeError); ok {
					err = se
					return
				}
				panic(r)
			}
		}()
		result = in.expand(x)
	}()
	return result, err
}

func (in *Interp) expand(x Obj) Obj {
	if !in.IsPair(x) {
		return x
	}

	head := in.Car(x)
	if in.IsSymbol(head) {
		if transformer := in.lookupMacro(head); transformer != 0 {
			expanded := in.applyProcedure(transformer, in.Cdr(x))
			return in.expand(expanded)
		}
	}

	mark := in.stack.Mark()
	carSlot := mark
	in.stack.Push(in.expand(in.Car(x)))
	cdr := in.expandTail(in.Cdr(x))
	result := in.Cons(in.stack.items[carSlot], cdr)
	in.stack.Restore(mark)
	return result
}

// expandTail expands the rest of a form without requiring it to be a
// proper list, so improper tails (dotted lambda formals show up here via
// body forms, not formals) still expand correctly.
func (in *Interp) expandTail(x Obj) Obj {
	if !in.IsPair(x) {
		return x
	}
	mark := in.stack.Mark()
	carSlot := mark
	in.stack.Push(in.expand(in.Car(x)))
	cdr := in.expandTail(in.Cdr(x))
	result := in.Cons(in.stack.items[carSlot], cdr)
	in.stack.Restore(mark)
	return result
}
