package mesgo

import "testing"

func TestPairPrimitives(t *testing.T) {
	in := mustNewInterp(t)

	got := evalString(t, in, "(car (cons 1 2))")
	if in.NumberValue(got) != 1 {
		t.Errorf("(car (cons 1 2)) = %d, want 1", in.NumberValue(got))
	}

	got = evalString(t, in, "(length (list 1 2 3 4))")
	if in.NumberValue(got) != 4 {
		t.Errorf("(length (list 1 2 3 4)) = %d, want 4", in.NumberValue(got))
	}

	got = evalString(t, in, "(reverse (list 1 2 3))")
	elems, _ := in.ListToSlice(got)
	for i, want := range []int64{3, 2, 1} {
		if in.NumberValue(elems[i]) != want {
			t.Errorf("reverse[%d] = %d, want %d", i, in.NumberValue(elems[i]), want)
		}
	}

	got = evalString(t, in, "(append (list 1 2) (list 3 4))")
	elems, _ = in.ListToSlice(got)
	if len(elems) != 4 {
		t.Fatalf("append length = %d, want 4", len(elems))
	}
}

func TestBitwisePrimitives(t *testing.T) {
	in := mustNewInterp(t)

	cases := []struct {
		src  string
		want int64
	}{
		{"(logand 12 10)", 8},
		{"(logior 12 10)", 14},
		{"(logxor 12 10)", 6},
		{"(ash 1 4)", 16},
		{"(ash 16 -4)", 1},
	}
	for _, c := range cases {
		got := evalString(t, in, c.src)
		if in.NumberValue(got) != c.want {
			t.Errorf("eval(%s) = %d, want %d", c.src, in.NumberValue(got), c.want)
		}
	}
}

func TestMapAndForEach(t *testing.T) {
	in := mustNewInterp(t)
	got := evalString(t, in, "(map (lambda (x) (* x x)) (list 1 2 3 4))")
	elems, _ := in.ListToSlice(got)
	for i, want := range []int64{1, 4, 9, 16} {
		if in.NumberValue(elems[i]) != want {
			t.Errorf("map[%d] = %d, want %d", i, in.NumberValue(elems[i]), want)
		}
	}
}

func TestStringAndPortPrimitives(t *testing.T) {
	in := mustNewInterp(t)

	got := evalString(t, in, `(string-append "foo" "bar")`)
	if in.StringValue(got) != "foobar" {
		t.Errorf("string-append = %q, want %q", in.StringValue(got), "foobar")
	}

	got = evalString(t, in, `(number->string 255 16)`)
	if in.StringValue(got) != "ff" {
		t.Errorf("number->string 255 16 = %q, want %q", in.StringValue(got), "ff")
	}

	got = evalString(t, in, `
		(let ((p (open-output-string)))
		  (display "hi " p)
		  (write 42 p)
		  (get-output-string p))`)
	if in.StringValue(got) != "hi 42" {
		t.Errorf("string-port round-trip = %q, want %q", in.StringValue(got), "hi 42")
	}
}

func TestEqualAndEqPredicates(t *testing.T) {
	in := mustNewInterp(t)

	got := evalString(t, in, "(equal? (list 1 2 (list 3)) (list 1 2 (list 3)))")
	if got != in.True {
		t.Errorf("equal? on structurally-equal lists = false, want true")
	}

	got = evalString(t, in, "(eq? 'a 'a)")
	if got != in.True {
		t.Errorf("eq? on same interned symbol = false, want true")
	}
}
