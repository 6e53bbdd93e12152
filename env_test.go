package mesgo

import "testing"

func TestDefineAndLookup(t *testing.T) {
	in := mustNewInterp(t)
	sym := in.intern("x")
	in.Define(in.m0, sym, in.MakeNumber(7))

	got := in.Lookup(in.m0, sym)
	if in.NumberValue(got) != 7 {
		t.Errorf("Lookup after Define = %d, want 7", in.NumberValue(got))
	}
}

func TestRedefineInSameFrameRebinds(t *testing.T) {
	in := mustNewInterp(t)
	sym := in.intern("x")
	in.Define(in.m0, sym, in.MakeNumber(1))
	in.Define(in.m0, sym, in.MakeNumber(2))

	got := in.Lookup(in.m0, sym)
	if in.NumberValue(got) != 2 {
		t.Errorf("Lookup after redefine = %d, want 2", in.NumberValue(got))
	}
}

func TestSetBangOnUnboundVariablePanics(t *testing.T) {
	in := mustNewInterp(t)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected SetBang on unbound variable to raise")
		}
	}()
	in.SetBang(in.m0, in.intern("never-defined"), in.MakeNumber(1))
}

func TestExtendEnvForCallBindsRestArgument(t *testing.T) {
	in := mustNewInterp(t)
	formals := in.Cons(in.intern("a"), in.intern("rest"))
	actuals := in.List(in.MakeNumber(1), in.MakeNumber(2), in.MakeNumber(3))

	env := in.ExtendEnvForCall(in.Nil, formals, actuals)

	a := in.Lookup(env, in.intern("a"))
	if in.NumberValue(a) != 1 {
		t.Errorf("a = %d, want 1", in.NumberValue(a))
	}
	rest := in.Lookup(env, in.intern("rest"))
	elems, _ := in.ListToSlice(rest)
	if len(elems) != 2 || in.NumberValue(elems[0]) != 2 || in.NumberValue(elems[1]) != 3 {
		t.Errorf("rest = %s, want (2 3)", in.SafeWriteString(rest))
	}
}
