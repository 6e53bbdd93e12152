package mesgo

// Continuations here are escape-only: invoking one unwinds the Go stack
// back to the call-with-current-continuation that created it, standing
// in for the original's setjmp/longjmp pair (spec §4.9's Non-goals rule
// out a fully reentrant, re-enterable continuation). Each continuation
// carries a unique token; invoking it panics with that token, and only
// the matching evalCallCC frame's recover catches it - any other
// panic, including a continuation invoked after its creator already
// returned, propagates unchanged; Eval re-panics anything that is not a
// *SchemeError, so such a panic passes through Eval as well.
// continuationToken's identity (its pointer) is the escape target; it
// carries no fields because unwinding the Go stack via panic/recover
// already discards every eval frame between invocation and capture -
// there is no VM register state left to restore on the way back.
type continuationToken struct{}

type continuationEscape struct {
	token  *continuationToken
	result Obj
}

// evalCallCC builds a TCONTINUATION cell whose car is the index of its
// escape token in in.continuations (never relocated:
// hasCar(TContinuation) is false) and
// whose cdr is a heap-resident snapshot of the marker stack at capture
// time (relocated normally: hasCdr(TContinuation) is true), then
// applies proc to it.
func (in *Interp) evalCallCC(procExpr, env Obj) Obj {
	proc := in.eval(procExpr, env)

	snapshot := in.Nil
	for i := in.stack.Len() - 1; i >= 0; i-- {
		snapshot = in.Cons(in.stack.items[i], snapshot)
	}

	token := &continuationToken{}
	k := in.allocOpaqueContinuation(token, snapshot)

	var result Obj
	func() {
		defer func() {
			if r := recover(); r != nil {
				if esc, ok := r.(*continuationEscape); ok && esc.token == token {
					result = esc.result
					return
				}
				panic(r)
			}
		}()
		result = in.applyProcedure(proc, in.List(k))
	}()
	return result
}

// allocOpaqueContinuation appends token to the in.continuations side
// table and stores its table index in the cell's car, since a
// *continuationToken is a Go pointer the copying collector must never
// see inside a tracked field.
func (in *Interp) allocOpaqueContinuation(token *continuationToken, snapshot Obj) Obj {
	idx := Obj(len(in.continuations))
	in.continuations = append(in.continuations, token)
	return in.alloc(TContinuation, idx, snapshot)
}

func (in *Interp) continuationTokenAt(c Obj) *continuationToken {
	idx := in.Car(c)
	return in.continuations[idx]
}

// invokeContinuation never returns; it panics a continuationEscape that
// only the originating evalCallCC's recover will catch.
func (in *Interp) invokeContinuation(c, args Obj) {
	token := in.continuationTokenAt(c)
	result := in.Unspecified
	if in.IsPair(args) {
		result = in.Car(args)
	}
	panic(&continuationEscape{token: token, result: result})
}
