package mesgo

// evalIf returns the branch to evaluate next (for the caller's tail-call
// loop) rather than evaluating it itself.
func (in *Interp) evalIf(x, env Obj) Obj {
	rest := in.Cdr(x)
	test := in.eval(in.Car(rest), env)
	rest = in.Cdr(rest)
	if in.IsTruthy(test) {
		return in.Car(rest)
	}
	rest = in.Cdr(rest)
	if !in.IsPair(rest) {
		return in.List(in.sf.quote, in.Unspecified)
	}
	return in.Car(rest)
}

// evalCond walks the clause list; a clause is (test expr...) or
// (else expr...). A "=>" clause applies its receiver to the test value.
// Returns (done=true, result) for a clause evaluated to completion, or
// (done=false, nextX, nextEnv) to tail-loop into the winning clause's
// body.
func (in *Interp) evalCond(x, env Obj) (nextX, nextEnv Obj, done bool, result Obj) {
	clauses := in.Cdr(x)
	for in.IsPair(clauses) {
		clause := in.Car(clauses)
		test := in.Car(clause)
		body := in.Cdr(clause)

		if test == in.sf.elseSym {
			if body == in.Nil {
				return 0, 0, true, in.Unspecified
			}
			return in.evalAllButLast(body, env), env, false, 0
		}

		v := in.eval(test, env)
		if in.IsTruthy(v) {
			if body == in.Nil {
				return 0, 0, true, v
			}
			if in.Car(body) == in.sf.arrow {
				receiver := in.eval(in.Car(in.Cdr(body)), env)
				return 0, 0, true, in.applyProcedure(receiver, in.List(v))
			}
			return in.evalAllButLast(body, env), env, false, 0
		}
		clauses = in.Cdr(clauses)
	}
	return 0, 0, true, in.Unspecified
}

func (in *Interp) evalWhen(x, env Obj) (nextX Obj, done bool, result Obj) {
	rest := in.Cdr(x)
	test := in.eval(in.Car(rest), env)
	body := in.Cdr(rest)
	if !in.IsTruthy(test) {
		return 0, true, in.Unspecified
	}
	if body == in.Nil {
		return 0, true, in.Unspecified
	}
	return in.evalAllButLast(body, env), false, 0
}

func (in *Interp) evalDefine(x, env Obj) Obj {
	rest := in.Cdr(x)
	target := in.Car(rest)
	if in.IsPair(target) {
		// (define (name . formals) body...) => (define name (lambda formals body...))
		name := in.Car(target)
		formals := in.Cdr(target)
		body := in.Cdr(rest)
		closure := in.makeClosure(formals, env, body)
		in.Define(env, name, closure)
		return name
	}
	value := in.Unspecified
	if in.IsPair(in.Cdr(rest)) {
		value = in.eval(in.Car(in.Cdr(rest)), env)
	}
	in.Define(env, target, value)
	return target
}

func (in *Interp) evalDefineMacro(x, env Obj) Obj {
	rest := in.Cdr(x)
	target := in.Car(rest)
	var name, formals, body Obj
	if in.IsPair(target) {
		name = in.Car(target)
		formals = in.Cdr(target)
		body = in.Cdr(rest)
	} else {
		name = target
		transformerExpr := in.Car(in.Cdr(rest))
		closure := in.eval(transformerExpr, env)
		in.defineMacroEntry(name, closure)
		return name
	}
	closure := in.makeClosure(formals, env, body)
	in.defineMacroEntry(name, closure)
	return name
}

func (in *Interp) evalSetBang(x, env Obj) Obj {
	rest := in.Cdr(x)
	name := in.Car(rest)
	value := in.eval(in.Car(in.Cdr(rest)), env)
	in.SetBang(env, name, value)
	return in.Unspecified
}

// evalLet handles both named and unnamed let. Named let
// (let loop ((v init) ...) body...) desugars to a self-referential
// closure bound via letrec semantics, the standard expansion.
func (in *Interp) evalLet(x, env Obj) (nextX, nextEnv Obj) {
	rest := in.Cdr(x)
	first := in.Car(rest)
	if in.IsSymbol(first) {
		name := first
		bindings := in.Car(in.Cdr(rest))
		body := in.Cdr(in.Cdr(rest))
		names, inits := in.splitBindings(bindings)

		loopEnv := in.ExtendFrame(env)
		closure := in.makeClosure(in.List(names...), loopEnv, body)
		in.Define(loopEnv, name, closure)

		args := in.Nil
		for i := len(inits) - 1; i >= 0; i-- {
			args = in.Cons(in.eval(inits[i], env), args)
		}
		newEnv, callBody := in.enterClosure(closure, args)
		if callBody == in.Nil {
			return in.List(in.sf.quote, in.Unspecified), newEnv
		}
		return in.evalAllButLast(callBody, newEnv), newEnv
	}

	bindings := first
	body := in.Cdr(rest)
	names, inits := in.splitBindings(bindings)
	values := make([]Obj, len(inits))
	for i, init := range inits {
		values[i] = in.eval(init, env)
	}
	newEnv := in.ExtendFrame(env)
	for i, name := range names {
		in.Define(newEnv, name, values[i])
	}
	if body == in.Nil {
		return in.List(in.sf.quote, in.Unspecified), newEnv
	}
	return in.evalAllButLast(body, newEnv), newEnv
}

func (in *Interp) evalLetStar(x, env Obj) (nextX, nextEnv Obj) {
	rest := in.Cdr(x)
	bindings := in.Car(rest)
	body := in.Cdr(rest)

	newEnv := in.ExtendFrame(env)
	for l := bindings; in.IsPair(l); l = in.Cdr(l) {
		binding := in.Car(l)
		name := in.Car(binding)
		init := in.Unspecified
		if in.IsPair(in.Cdr(binding)) {
			init = in.eval(in.Car(in.Cdr(binding)), newEnv)
		}
		in.Define(newEnv, name, init)
		newEnv = in.ExtendFrame(newEnv)
	}
	if body == in.Nil {
		return in.List(in.sf.quote, in.Unspecified), newEnv
	}
	return in.evalAllButLast(body, newEnv), newEnv
}

func (in *Interp) evalLetrec(x, env Obj) (nextX, nextEnv Obj) {
	rest := in.Cdr(x)
	bindings := in.Car(rest)
	body := in.Cdr(rest)

	newEnv := in.ExtendFrame(env)
	names, inits := in.splitBindings(bindings)
	for _, name := range names {
		in.Define(newEnv, name, in.Unspecified)
	}
	for i, name := range names {
		in.Define(newEnv, name, in.eval(inits[i], newEnv))
	}
	if body == in.Nil {
		return in.List(in.sf.quote, in.Unspecified), newEnv
	}
	return in.evalAllButLast(body, newEnv), newEnv
}

func (in *Interp) splitBindings(bindings Obj) (names []Obj, inits []Obj) {
	for l := bindings; in.IsPair(l); l = in.Cdr(l) {
		b := in.Car(l)
		names = append(names, in.Car(b))
		if in.IsPair(in.Cdr(b)) {
			inits = append(inits, in.Car(in.Cdr(b)))
		} else {
			inits = append(inits, in.List(in.sf.quote, in.Unspecified))
		}
	}
	return
}

func (in *Interp) evalAnd(x, env Obj) (done bool, result Obj) {
	if x == in.Nil {
		return true, in.True
	}
	for in.IsPair(in.Cdr(x)) {
		if !in.IsTruthy(in.eval(in.Car(x), env)) {
			return true, in.False
		}
		x = in.Cdr(x)
	}
	return false, in.Car(x)
}

func (in *Interp) evalOr(x, env Obj) (done bool, result Obj) {
	if x == in.Nil {
		return true, in.False
	}
	for in.IsPair(in.Cdr(x)) {
		v := in.eval(in.Car(x), env)
		if in.IsTruthy(v) {
			return true, v
		}
		x = in.Cdr(x)
	}
	return false, in.Car(x)
}

func (in *Interp) evalApplyForm(x, env Obj) Obj {
	rest := in.Cdr(x)
	proc := in.eval(in.Car(rest), env)
	argExprs := in.Cdr(rest)

	var collected []Obj
	for in.IsPair(argExprs) && in.IsPair(in.Cdr(argExprs)) {
		collected = append(collected, in.eval(in.Car(argExprs), env))
		argExprs = in.Cdr(argExprs)
	}
	args := in.Nil
	if in.IsPair(argExprs) {
		args = in.eval(in.Car(argExprs), env)
	}
	for i := len(collected) - 1; i >= 0; i-- {
		args = in.Cons(collected[i], args)
	}
	return in.applyProcedure(proc, args)
}

// evalQuasiquote implements quasiquote/unquote/unquote-splicing, legal
// only inside a quasiquoted form (spec §4.6). depth tracks nesting so
// nested quasiquotes only unquote at their own level.
func (in *Interp) evalQuasiquote(x, env Obj, depth int) Obj {
	if !in.IsPair(x) {
		return x
	}
	head := in.Car(x)
	if head == in.sf.unquote {
		if depth == 1 {
			return in.eval(in.Car(in.Cdr(x)), env)
		}
		mark := in.stack.Mark()
		in.stack.Push(in.evalQuasiquote(in.Car(in.Cdr(x)), env, depth-1))
		result := in.List(in.sf.unquote, in.stack.items[mark])
		in.stack.Restore(mark)
		return result
	}
	if head == in.sf.quasiquote {
		mark := in.stack.Mark()
		in.stack.Push(in.evalQuasiquote(in.Car(in.Cdr(x)), env, depth+1))
		result := in.List(in.sf.quasiquote, in.stack.items[mark])
		in.stack.Restore(mark)
		return result
	}
	if in.IsPair(head) && in.Car(head) == in.sf.unquoteSplicing {
		if depth == 1 {
			mark := in.stack.Mark()
			in.stack.Push(in.eval(in.Car(in.Cdr(head)), env))
			rest := in.evalQuasiquote(in.Cdr(x), env, depth)
			result := in.appendLists(in.stack.items[mark], rest)
			in.stack.Restore(mark)
			return result
		}
		mark := in.stack.Mark()
		in.stack.Push(in.List(in.sf.unquoteSplicing, in.evalQuasiquote(in.Car(in.Cdr(head)), env, depth-1)))
		result := in.Cons(in.stack.items[mark], in.evalQuasiquote(in.Cdr(x), env, depth))
		in.stack.Restore(mark)
		return result
	}
	mark := in.stack.Mark()
	in.stack.Push(in.evalQuasiquote(head, env, depth))
	result := in.Cons(in.stack.items[mark], in.evalQuasiquote(in.Cdr(x), env, depth))
	in.stack.Restore(mark)
	return result
}

// appendLists walks a while keeping both it and the elements already
// pulled off it rooted on the marker stack, rather than caching them in a
// plain Go slice, so a collection triggered by any one of the Cons calls
// below can't leave an already-extracted-but-not-yet-consed element
// pointing at a relocated cell's old address.
func (in *Interp) appendLists(a, b Obj) Obj {
	mark := in.stack.Mark()
	resultSlot := mark
	in.stack.Push(b)
	aSlot := in.stack.Mark()
	in.stack.Push(a)
	collectedMark := in.stack.Mark()
	for in.IsPair(in.stack.items[aSlot]) {
		in.stack.Push(in.Car(in.stack.items[aSlot]))
		in.stack.items[aSlot] = in.Cdr(in.stack.items[aSlot])
	}
	for i := in.stack.Len() - 1; i >= collectedMark; i-- {
		in.stack.items[resultSlot] = in.Cons(in.stack.items[i], in.stack.items[resultSlot])
	}
	result := in.stack.items[resultSlot]
	in.stack.Restore(mark)
	return result
}
