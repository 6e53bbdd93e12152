package mesgo

import "testing"

func mustNewInterp(t *testing.T) *Interp {
	t.Helper()
	in, err := NewInterp(Config{ArenaCells: 4096, StackCells: 1024, MaxArenaCells: 65536})
	if err != nil {
		t.Fatalf("NewInterp: %v", err)
	}
	return in
}

func evalString(t *testing.T, in *Interp, src string) Obj {
	t.Helper()
	p := newStringInputPort(src)
	form, err := in.ReadForm(p)
	if err != nil {
		t.Fatalf("ReadForm(%q): %v", src, err)
	}
	expanded, err := in.Expand(form)
	if err != nil {
		t.Fatalf("Expand(%q): %v", src, err)
	}
	result, err := in.Eval(expanded, in.TopLevelEnv())
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return result
}

func TestEvalArithmetic(t *testing.T) {
	in := mustNewInterp(t)
	cases := []struct {
		src  string
		want int64
	}{
		{"(+ 1 2 3)", 6},
		{"(* 2 3 4)", 24},
		{"(- 10 3 2)", 5},
		{"(quotient 17 5)", 3},
		{"(modulo -7 3)", 2},
	}
	for _, c := range cases {
		got := evalString(t, in, c.src)
		if in.Tag(got) != TNumber || in.NumberValue(got) != c.want {
			t.Errorf("eval(%s) = %v, want %d", c.src, in.SafeWriteString(got), c.want)
		}
	}
}

func TestEvalIfAndLet(t *testing.T) {
	in := mustNewInterp(t)
	got := evalString(t, in, "(if (> 3 2) 'yes 'no)")
	if in.SymbolName(got) != "yes" {
		t.Errorf("if branch = %s, want yes", in.SymbolName(got))
	}

	got = evalString(t, in, "(let ((x 1) (y 2)) (+ x y))")
	if in.NumberValue(got) != 3 {
		t.Errorf("let result = %d, want 3", in.NumberValue(got))
	}
}

func TestEvalNamedLetLoop(t *testing.T) {
	in := mustNewInterp(t)
	got := evalString(t, in, `
		(let loop ((n 5) (acc 1))
		  (if (= n 0) acc (loop (- n 1) (* acc n))))`)
	if in.NumberValue(got) != 120 {
		t.Errorf("named-let factorial = %d, want 120", in.NumberValue(got))
	}
}

func TestEvalClosureAndTailCalls(t *testing.T) {
	in := mustNewInterp(t)
	evalString(t, in, `
		(define (count-to n i)
		  (if (> i n) i (count-to n (+ i 1))))`)
	got := evalString(t, in, "(count-to 200000 0)")
	if in.NumberValue(got) != 200001 {
		t.Errorf("tail-recursive count-to = %d, want 200001", in.NumberValue(got))
	}
}

func TestEvalSetBangMutatesBinding(t *testing.T) {
	in := mustNewInterp(t)
	evalString(t, in, "(define x 1)")
	evalString(t, in, "(set! x (+ x 41))")
	got := evalString(t, in, "x")
	if in.NumberValue(got) != 42 {
		t.Errorf("x after set! = %d, want 42", in.NumberValue(got))
	}
}

func TestEvalUnboundVariableRaises(t *testing.T) {
	in := mustNewInterp(t)
	p := newStringInputPort("this-is-not-defined")
	form, err := in.ReadForm(p)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	_, err = in.Eval(form, in.TopLevelEnv())
	if err == nil {
		t.Fatalf("expected unbound-variable error, got none")
	}
	if _, ok := err.(*SchemeError); !ok {
		t.Fatalf("expected *SchemeError, got %T", err)
	}
}

func TestCallCCEscapesToCapturePoint(t *testing.T) {
	in := mustNewInterp(t)
	got := evalString(t, in, `
		(+ 1 (call-with-current-continuation
		       (lambda (k) (+ 10 (k 100)))))`)
	if in.NumberValue(got) != 101 {
		t.Errorf("call/cc escape result = %d, want 101", in.NumberValue(got))
	}
}

func TestQuasiquote(t *testing.T) {
	in := mustNewInterp(t)
	got := evalString(t, in, "`(1 ,(+ 1 1) ,@(list 3 4))")
	elems, tail := in.ListToSlice(got)
	if tail != in.Nil || len(elems) != 4 {
		t.Fatalf("quasiquote result malformed: %s", in.SafeWriteString(got))
	}
	for i, want := range []int64{1, 2, 3, 4} {
		if in.NumberValue(elems[i]) != want {
			t.Errorf("quasiquote[%d] = %d, want %d", i, in.NumberValue(elems[i]), want)
		}
	}
}
