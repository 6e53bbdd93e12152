package mesgo

// bitwisePrimitives mirrors spec §4.8's logand/logior/logxor/lognot/ash,
// grounded on the original's exact two's-complement int64 semantics
// (supplemented feature: see SPEC_FULL.md).
func bitwisePrimitives() []primitive {
	return []primitive{
		{"logand", primLogAnd},
		{"logior", primLogIor},
		{"logxor", primLogXor},
		{"lognot", primLogNot},
		{"ash", primAsh},
	}
}

func primLogAnd(in *Interp, args Obj) Obj {
	ns := in.numArgs(args)
	result := int64(-1)
	for _, n := range ns {
		result &= n
	}
	return in.MakeNumber(result)
}

func primLogIor(in *Interp, args Obj) Obj {
	var result int64
	for _, n := range in.numArgs(args) {
		result |= n
	}
	return in.MakeNumber(result)
}

func primLogXor(in *Interp, args Obj) Obj {
	var result int64
	for _, n := range in.numArgs(args) {
		result ^= n
	}
	return in.MakeNumber(result)
}

func primLogNot(in *Interp, args Obj) Obj {
	n := in.numArgs(args)[0]
	return in.MakeNumber(^n)
}

// primAsh shifts left for a positive count, right (arithmetic) for
// negative, matching the original's ash.
func primAsh(in *Interp, args Obj) Obj {
	ns := in.numArgs(args)
	n, count := ns[0], ns[1]
	if count >= 0 {
		return in.MakeNumber(n << uint(count))
	}
	return in.MakeNumber(n >> uint(-count))
}
