package mesgo

// arithPrimitives covers spec §4.8's numeric tower stand-in: fixed-width
// int64 arithmetic, since spec's Non-goals exclude bignums. Each variadic
// operator folds left over its argument list the way the original's
// builtin_add/builtin_mul etc. do.
func arithPrimitives() []primitive {
	return []primitive{
		{"+", primAdd},
		{"-", primSub},
		{"*", primMul},
		{"/", primDiv},
		{"quotient", primQuotient},
		{"remainder", primRemainder},
		{"modulo", primModulo},
		{"=", primNumEq},
		{"<", primNumLt},
		{">", primNumGt},
		{"<=", primNumLe},
		{">=", primNumGe},
		{"1+", primAdd1},
		{"1-", primSub1},
		{"abs", primAbs},
		{"min", primMin},
		{"max", primMax},
	}
}

func (in *Interp) numArgs(args Obj) []int64 {
	elems, _ := in.ListToSlice(args)
	out := make([]int64, len(elems))
	for i, e := range elems {
		if in.Tag(e) != TNumber {
			in.errWrongType("integer", e)
		}
		out[i] = in.NumberValue(e)
	}
	return out
}

func primAdd(in *Interp, args Obj) Obj {
	var sum int64
	for _, n := range in.numArgs(args) {
		sum += n
	}
	return in.MakeNumber(sum)
}

func primSub(in *Interp, args Obj) Obj {
	ns := in.numArgs(args)
	if len(ns) == 0 {
		in.errArity("-")
	}
	if len(ns) == 1 {
		return in.MakeNumber(-ns[0])
	}
	result := ns[0]
	for _, n := range ns[1:] {
		result -= n
	}
	return in.MakeNumber(result)
}

func primMul(in *Interp, args Obj) Obj {
	result := int64(1)
	for _, n := range in.numArgs(args) {
		result *= n
	}
	return in.MakeNumber(result)
}

func primDiv(in *Interp, args Obj) Obj {
	ns := in.numArgs(args)
	if len(ns) == 0 {
		in.errArity("/")
	}
	if len(ns) == 1 {
		if ns[0] == 0 {
			in.errDivideByZero("/")
		}
		return in.MakeNumber(1 / ns[0])
	}
	result := ns[0]
	for _, n := range ns[1:] {
		if n == 0 {
			in.errDivideByZero("/")
		}
		result /= n
	}
	return in.MakeNumber(result)
}

func primQuotient(in *Interp, args Obj) Obj {
	ns := in.numArgs(args)
	if ns[1] == 0 {
		in.errDivideByZero("quotient")
	}
	return in.MakeNumber(ns[0] / ns[1])
}

func primRemainder(in *Interp, args Obj) Obj {
	ns := in.numArgs(args)
	if ns[1] == 0 {
		in.errDivideByZero("remainder")
	}
	return in.MakeNumber(ns[0] % ns[1])
}

func primModulo(in *Interp, args Obj) Obj {
	ns := in.numArgs(args)
	if ns[1] == 0 {
		in.errDivideByZero("modulo")
	}
	m := ns[0] % ns[1]
	if m != 0 && (m < 0) != (ns[1] < 0) {
		m += ns[1]
	}
	return in.MakeNumber(m)
}

func primNumEq(in *Interp, args Obj) Obj { return in.chainCompare(args, func(a, b int64) bool { return a == b }) }
func primNumLt(in *Interp, args Obj) Obj { return in.chainCompare(args, func(a, b int64) bool { return a < b }) }
func primNumGt(in *Interp, args Obj) Obj { return in.chainCompare(args, func(a, b int64) bool { return a > b }) }
func primNumLe(in *Interp, args Obj) Obj { return in.chainCompare(args, func(a, b int64) bool { return a <= b }) }
func primNumGe(in *Interp, args Obj) Obj { return in.chainCompare(args, func(a, b int64) bool { return a >= b }) }

func (in *Interp) chainCompare(args Obj, ok func(a, b int64) bool) Obj {
	ns := in.numArgs(args)
	for i := 1; i < len(ns); i++ {
		if !ok(ns[i-1], ns[i]) {
			return in.False
		}
	}
	return in.True
}

func primAdd1(in *Interp, args Obj) Obj { return in.MakeNumber(in.numArgs(args)[0] + 1) }
func primSub1(in *Interp, args Obj) Obj { return in.MakeNumber(in.numArgs(args)[0] - 1) }

func primAbs(in *Interp, args Obj) Obj {
	n := in.numArgs(args)[0]
	if n < 0 {
		n = -n
	}
	return in.MakeNumber(n)
}

func primMin(in *Interp, args Obj) Obj {
	ns := in.numArgs(args)
	m := ns[0]
	for _, n := range ns[1:] {
		if n < m {
			m = n
		}
	}
	return in.MakeNumber(m)
}

func primMax(in *Interp, args Obj) Obj {
	ns := in.numArgs(args)
	m := ns[0]
	for _, n := range ns[1:] {
		if n > m {
			m = n
		}
	}
	return in.MakeNumber(m)
}
