package mesgo

import "testing"

func TestDefineMacroExpandsBeforeEval(t *testing.T) {
	in := mustNewInterp(t)
	evalString(t, in, `
		(define-macro (my-if test then else)
		  (list 'cond (list test then) (list 'else else)))`)
	got := evalString(t, in, "(my-if #t 'yes 'no)")
	if in.SymbolName(got) != "yes" {
		t.Errorf("macro-expanded my-if = %s, want yes", in.SymbolName(got))
	}
}

func TestDefineMacroSwapRebindsVariables(t *testing.T) {
	in := mustNewInterp(t)
	evalString(t, in, `
		(define-macro (swap! a b)
		  (list 'let (list (list 'tmp a))
		        (list 'set! a b)
		        (list 'set! b 'tmp)))`)
	evalString(t, in, "(define x 1)")
	evalString(t, in, "(define y 2)")
	evalString(t, in, "(swap! x y)")
	gotX := evalString(t, in, "x")
	if in.NumberValue(gotX) != 2 {
		t.Errorf("x after swap! = %d, want 2", in.NumberValue(gotX))
	}
}
