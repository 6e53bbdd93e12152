package mesgo

// Eval is spec §6.1's eval(cell, env): the public, panic-safe entry
// point. It updates r1 with the result on the way out, matching the
// original's "updates r1" contract, and turns a raised *SchemeError into
// a returned Go error instead of letting it escape to the top level.
func (in *Interp) Eval(x, env Obj) (result Obj, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*SchemeError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	result = in.eval(x, env)
	in.r1 = result
	return result, nil
}

// eval is the tree-walking interpreter of spec §4.6. Self-evaluating
// types return immediately; symbols resolve through the environment;
// pairs dispatch on their head, either to one of the fixed special forms
// (compared by interned-symbol identity, never by name) or to a
// procedure call. Tail position - the last body form of a lambda, both
// branches of if, the last clause of cond/when/begin/and/or - is handled
// by assigning the next expression/environment back into x/env and
// looping, rather than recursing on the host (Go) stack, so boot code's
// recursive style doesn't blow the goroutine stack.
func (in *Interp) eval(x, env Obj) Obj {
	for {
		in.r0 = env
		in.r1 = x

		switch in.Tag(x) {
		case TSymbol:
			return in.Lookup(env, x)
		case TPair:
			// fallthrough to the dispatch below
		default:
			return x // numbers, chars, strings, bools, vectors, closures, ...
		}

		head := in.Car(x)
		if in.IsSymbol(head) {
			switch head {
			case in.sf.quote:
				return in.Car(in.Cdr(x))
			case in.sf.ifSym:
				x = in.evalIf(x, env)
				continue
			case in.sf.cond:
				nx, nenv, done, result := in.evalCond(x, env)
				if done {
					return result
				}
				x, env = nx, nenv
				continue
			case in.sf.when:
				nx, done, result := in.evalWhen(x, env)
				if done {
					return result
				}
				x = nx
				continue
			case in.sf.begin:
				body := in.Cdr(x)
				if body == in.Nil {
					return in.Unspecified
				}
				x = in.evalAllButLast(body, env)
				continue
			case in.sf.lambda:
				return in.makeClosure(in.Car(in.Cdr(x)), env, in.Cdr(in.Cdr(x)))
			case in.sf.define:
				return in.evalDefine(x, env)
			case in.sf.defineMacro:
				return in.evalDefineMacro(x, env)
			case in.sf.setBang:
				return in.evalSetBang(x, env)
			case in.sf.let:
				nx, nenv := in.evalLet(x, env)
				x, env = nx, nenv
				continue
			case in.sf.letStar:
				nx, nenv := in.evalLetStar(x, env)
				x, env = nx, nenv
				continue
			case in.sf.letrec:
				nx, nenv := in.evalLetrec(x, env)
				x, env = nx, nenv
				continue
			case in.sf.and:
				done, result := in.evalAnd(in.Cdr(x), env)
				if done {
					return result
				}
				x = result
				continue
			case in.sf.or:
				done, result := in.evalOr(in.Cdr(x), env)
				if done {
					return result
				}
				x = result
				continue
			case in.sf.quasiquote:
				return in.evalQuasiquote(in.Car(in.Cdr(x)), env, 1)
			case in.sf.callcc:
				return in.evalCallCC(in.Car(in.Cdr(x)), env)
			case in.sf.apply:
				return in.evalApplyForm(x, env)
			}
		}

		proc := in.eval(head, env)
		if in.Tag(proc) == TMacro {
			transformer := in.Car(proc)
			x = in.applyProcedure(transformer, in.Cdr(x))
			continue
		}

		mark := in.stack.Mark()
		in.stack.Push(proc)
		args := in.evalArgList(in.Cdr(x), env)
		in.stack.Push(args)

		if in.Tag(proc) == TClosure {
			newEnv, body := in.enterClosure(proc, args)
			in.stack.Restore(mark)
			if body == in.Nil {
				return in.Unspecified
			}
			x = in.evalAllButLast(body, newEnv)
			env = newEnv
			continue
		}

		result := in.applyNonClosure(proc, args)
		in.stack.Restore(mark)
		return result
	}
}

// evalAllButLast evaluates every form in body except the last for effect
// and returns the last form unevaluated, so the caller can loop on it in
// tail position instead of recursing.
func (in *Interp) evalAllButLast(body, env Obj) Obj {
	for in.IsPair(in.Cdr(body)) {
		in.eval(in.Car(body), env)
		body = in.Cdr(body)
	}
	return in.Car(body)
}

// evalArgList evaluates a call's actual arguments left to right into a
// freshly consed list, pushing the list being built onto the marker
// stack so a GC triggered by evaluating a later argument cannot collect
// the partial list built so far.
func (in *Interp) evalArgList(x, env Obj) Obj {
	if x == in.Nil {
		return in.Nil
	}
	mark := in.stack.Mark()
	first := in.eval(in.Car(x), env)
	head := in.Cons(first, in.Nil)
	in.stack.Push(head)
	tail := head
	rest := in.Cdr(x)
	for in.IsPair(rest) {
		v := in.eval(in.Car(rest), env)
		next := in.Cons(v, in.Nil)
		in.SetCdr(tail, next)
		tail = next
		rest = in.Cdr(rest)
	}
	in.stack.Restore(mark)
	return head
}

func (in *Interp) makeClosure(formals, env, body Obj) Obj {
	packed := in.Cons(formals, in.Cons(env, body))
	return in.alloc(TClosure, 0, packed)
}

func (in *Interp) closureParts(c Obj) (formals, env, body Obj) {
	packed := in.Cdr(c)
	formals = in.Car(packed)
	rest := in.Cdr(packed)
	env = in.Car(rest)
	body = in.Cdr(rest)
	return
}

func (in *Interp) enterClosure(c, args Obj) (newEnv, body Obj) {
	formals, closedEnv, closureBody := in.closureParts(c)
	newEnv = in.ExtendEnvForCall(closedEnv, formals, args)
	return newEnv, closureBody
}

// applyProcedure applies proc to an already-built argument list, used by
// the macro expander and by the `apply` special form/primitive. Unlike
// eval's own call path it always recurses (applying a closure re-enters
// eval on its body), since callers here are not in the hot tail-call
// loop.
func (in *Interp) applyProcedure(proc, args Obj) Obj {
	mark := in.stack.Mark()
	in.stack.Push(proc)
	in.stack.Push(args)
	defer in.stack.Restore(mark)

	if in.Tag(proc) == TClosure {
		newEnv, body := in.enterClosure(proc, args)
		if body == in.Nil {
			return in.Unspecified
		}
		var result Obj = in.Unspecified
		for in.IsPair(body) {
			result = in.eval(in.Car(body), newEnv)
			body = in.Cdr(body)
		}
		return result
	}
	return in.applyNonClosure(proc, args)
}

func (in *Interp) applyNonClosure(proc, args Obj) Obj {
	switch in.Tag(proc) {
	case TFunction:
		return in.callPrimitive(proc, args)
	case TContinuation:
		in.invokeContinuation(proc, args)
		panic("unreachable")
	default:
		in.errNotApplicable(proc)
		return in.Unspecified
	}
}
