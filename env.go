package mesgo

// env.go implements spec §4.5: a chain of frames, each frame an
// association list of (symbol . variable) pairs. An environment value is
// either in.Nil (no more frames) or a TPair whose car is the current
// frame's alist and whose cdr is the parent environment - so walking
// outward is just repeated Cdr, and the innermost frame is always the
// car of the environment itself.
//
// A binding's variable slot is a TVariable cell boxing the bound value in
// its car, so set! can mutate in place without disturbing the alist that
// holds the binding.

func (in *Interp) newVariable(value Obj) Obj {
	return in.alloc(TVariable, value, 0)
}

func (in *Interp) variableValue(v Obj) Obj    { return in.Car(v) }
func (in *Interp) setVariableValue(v, x Obj) { in.SetCar(v, x) }

// ExtendFrame pushes a brand-new, empty frame in front of parent - used
// when entering a lambda body or a let/let*/letrec form.
func (in *Interp) ExtendFrame(parent Obj) Obj {
	return in.Cons(in.Nil, parent)
}

// Define inserts (or replaces, if already present in the *innermost*
// frame) a binding for sym in env's current frame. Re-running define on
// a name already bound in the same frame rebinds rather than shadows
// again, matching normal Scheme toplevel/internal-define behavior.
func (in *Interp) Define(env, sym, value Obj) {
	frame := in.Car(env)
	for l := frame; in.IsPair(l); l = in.Cdr(l) {
		entry := in.Car(l)
		if in.Car(entry) == sym {
			in.setVariableValue(in.Cdr(entry), value)
			return
		}
	}
	entry := in.Cons(sym, in.newVariable(value))
	in.SetCar(env, in.Cons(entry, frame))
}

// lookupVariable walks the frame chain outermost-first-inside-innermost
// (i.e. nearest frame first) looking for sym, returning the TVariable box
// or 0 if unbound anywhere in the chain.
func (in *Interp) lookupVariable(env, sym Obj) Obj {
	for e := env; in.IsPair(e); e = in.Cdr(e) {
		for l := in.Car(e); in.IsPair(l); l = in.Cdr(l) {
			entry := in.Car(l)
			if in.Car(entry) == sym {
				return in.Cdr(entry)
			}
		}
	}
	return 0
}

// Lookup resolves a symbol to its value, raising unbound-variable if no
// frame in env or in the global module environment binds it.
func (in *Interp) Lookup(env, sym Obj) Obj {
	if v := in.lookupVariable(env, sym); v != 0 {
		return in.variableValue(v)
	}
	if v := in.lookupVariable(in.m0, sym); v != 0 {
		return in.variableValue(v)
	}
	in.errUnboundVariable(sym)
	return in.Unspecified
}

// SetBang mutates the innermost existing binding for sym, falling back
// to the global frame, and signals unbound-variable if neither has one -
// set! never creates a new binding.
func (in *Interp) SetBang(env, sym, value Obj) {
	if v := in.lookupVariable(env, sym); v != 0 {
		in.setVariableValue(v, value)
		return
	}
	if v := in.lookupVariable(in.m0, sym); v != 0 {
		in.setVariableValue(v, value)
		return
	}
	in.errUnboundVariable(sym)
}

// ExtendEnvForCall builds the frame for a closure call: formals bound
// positionally to actuals, with a dotted (or symbol) tail formal
// capturing the remaining actuals as a list - the "rest argument"
// support spec §4.6 calls for.
func (in *Interp) ExtendEnvForCall(parent, formals, actuals Obj) Obj {
	// frame/parent/f/a are plain Go locals holding cell indices, not VM
	// registers the collector walks; a GC triggered by any alloc below
	// (newVariable, Cons) would leave them pointing at stale indices
	// unless pinned on the marker stack first.
	mark := in.stack.Mark()
	in.stack.Push(parent)
	in.stack.Push(formals)
	in.stack.Push(actuals)
	frameSlot := in.stack.Mark()
	in.stack.Push(in.Nil)

	f, a := formals, actuals
	for in.IsPair(f) {
		if !in.IsPair(a) {
			in.errArity("#<closure>")
		}
		entry := in.Cons(in.Car(f), in.newVariable(in.Car(a)))
		in.stack.items[frameSlot] = in.Cons(entry, in.stack.items[frameSlot])
		f = in.Cdr(f)
		a = in.Cdr(a)
	}
	if in.IsSymbol(f) {
		entry := in.Cons(f, in.newVariable(a))
		in.stack.items[frameSlot] = in.Cons(entry, in.stack.items[frameSlot])
	} else if f != in.Nil {
		in.errArity("#<closure>")
	} else if a != in.Nil {
		in.errArity("#<closure>")
	}

	frame := in.stack.items[frameSlot]
	result := in.Cons(frame, parent)
	in.stack.Restore(mark)
	return result
}
