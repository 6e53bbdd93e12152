package mesgo

import "testing"

func readOne(t *testing.T, in *Interp, src string) Obj {
	t.Helper()
	form, err := in.ReadForm(newStringInputPort(src))
	if err != nil {
		t.Fatalf("ReadForm(%q): %v", src, err)
	}
	return form
}

func TestReadAtoms(t *testing.T) {
	in := mustNewInterp(t)

	n := readOne(t, in, "42")
	if in.Tag(n) != TNumber || in.NumberValue(n) != 42 {
		t.Errorf("read 42 = %v", in.SafeWriteString(n))
	}

	neg := readOne(t, in, "-7")
	if in.Tag(neg) != TNumber || in.NumberValue(neg) != -7 {
		t.Errorf("read -7 = %v", in.SafeWriteString(neg))
	}

	sym := readOne(t, in, "hello-world")
	if !in.IsSymbol(sym) || in.SymbolName(sym) != "hello-world" {
		t.Errorf("read symbol = %v", in.SafeWriteString(sym))
	}

	str := readOne(t, in, `"a\nb"`)
	if in.Tag(str) != TString || in.StringValue(str) != "a\nb" {
		t.Errorf("read string = %q", in.StringValue(str))
	}
}

func TestReadListAndDottedPair(t *testing.T) {
	in := mustNewInterp(t)

	list := readOne(t, in, "(1 2 3)")
	elems, tail := in.ListToSlice(list)
	if tail != in.Nil || len(elems) != 3 {
		t.Fatalf("read list malformed: %s", in.SafeWriteString(list))
	}

	dotted := readOne(t, in, "(1 2 . 3)")
	elems, tail = in.ListToSlice(dotted)
	if len(elems) != 2 || in.Tag(tail) != TNumber || in.NumberValue(tail) != 3 {
		t.Fatalf("read dotted pair malformed: %s", in.SafeWriteString(dotted))
	}
}

func TestReadQuoteAbbreviations(t *testing.T) {
	in := mustNewInterp(t)

	q := readOne(t, in, "'x")
	if in.Car(q) != in.sf.quote {
		t.Errorf("'x did not read as (quote x): %s", in.SafeWriteString(q))
	}

	qq := readOne(t, in, "`(a ,b ,@c)")
	if in.Car(qq) != in.sf.quasiquote {
		t.Errorf("`... did not read as (quasiquote ...): %s", in.SafeWriteString(qq))
	}
}

func TestReadCharAndHashLiterals(t *testing.T) {
	in := mustNewInterp(t)

	ch := readOne(t, in, `#\a`)
	if in.Tag(ch) != TChar || in.CharValue(ch) != 'a' {
		t.Errorf("read #\\a = %v", in.SafeWriteString(ch))
	}

	sp := readOne(t, in, `#\space`)
	if in.Tag(sp) != TChar || in.CharValue(sp) != ' ' {
		t.Errorf("read #\\space = %v", in.SafeWriteString(sp))
	}

	tru := readOne(t, in, "#t")
	if tru != in.True {
		t.Errorf("read #t != True singleton")
	}

	hexNum := readOne(t, in, "#xff")
	if in.Tag(hexNum) != TNumber || in.NumberValue(hexNum) != 255 {
		t.Errorf("read #xff = %v", in.SafeWriteString(hexNum))
	}
}

func TestReadEOF(t *testing.T) {
	in := mustNewInterp(t)
	form := readOne(t, in, "   ")
	if form != in.Eof {
		t.Errorf("read of blank input = %v, want Eof", in.SafeWriteString(form))
	}
}

func TestReadVector(t *testing.T) {
	in := mustNewInterp(t)
	v := readOne(t, in, "#(1 2 3)")
	if in.Tag(v) != TVector || in.VectorLength(v) != 3 {
		t.Fatalf("read vector malformed: %s", in.SafeWriteString(v))
	}
	if in.NumberValue(in.VectorRef(v, 1)) != 2 {
		t.Errorf("vector[1] = %v, want 2", in.SafeWriteString(in.VectorRef(v, 1)))
	}
}
