package mesgo

import "strconv"

// numericPrimitives covers number<->string conversion (SPEC_FULL.md's
// supplemented feature, grounded on original_source/mes_posix.c's
// itoa/atoi and reimplemented with strconv per the DOMAIN STACK plan)
// and symbol/string conversions boot code needs alongside them.
func numericPrimitives() []primitive {
	return []primitive{
		{"number->string", primNumberToString},
		{"string->number", primStringToNumber},
		{"symbol->string", primSymbolToString},
		{"string->symbol", primStringToSymbol},
		{"char->integer", primCharToInteger},
		{"integer->char", primIntegerToChar},
		{"string-length", primStringLength},
		{"string-append", primStringAppend},
		{"substring", primSubstring},
		{"string->list", primStringToList},
		{"list->string", primListToString},
		{"zero?", primZeroP},
		{"positive?", primPositiveP},
		{"negative?", primNegativeP},
		{"even?", primEvenP},
		{"odd?", primOddP},
	}
}

func primNumberToString(in *Interp, args Obj) Obj {
	elems, _ := in.ListToSlice(args)
	n := in.NumberValue(elems[0])
	radix := 10
	if len(elems) > 1 {
		radix = int(in.NumberValue(elems[1]))
	}
	return in.MakeString(strconv.FormatInt(n, radix))
}

func primStringToNumber(in *Interp, args Obj) Obj {
	elems, _ := in.ListToSlice(args)
	s := in.StringValue(elems[0])
	radix := 10
	if len(elems) > 1 {
		radix = int(in.NumberValue(elems[1]))
	}
	n, err := strconv.ParseInt(s, radix, 64)
	if err != nil {
		return in.False
	}
	return in.MakeNumber(n)
}

func primSymbolToString(in *Interp, args Obj) Obj {
	return in.MakeString(in.SymbolName(in.Car(args)))
}

func primStringToSymbol(in *Interp, args Obj) Obj {
	return in.intern(in.StringValue(in.Car(args)))
}

func primCharToInteger(in *Interp, args Obj) Obj {
	return in.MakeNumber(int64(in.CharValue(in.Car(args))))
}

func primIntegerToChar(in *Interp, args Obj) Obj {
	return in.MakeChar(byte(in.NumberValue(in.Car(args))))
}

func primStringLength(in *Interp, args Obj) Obj {
	return in.MakeNumber(int64(len(in.BytesOf(in.Car(args)))))
}

func primStringAppend(in *Interp, args Obj) Obj {
	elems, _ := in.ListToSlice(args)
	var out []byte
	for _, e := range elems {
		out = append(out, in.BytesOf(e)...)
	}
	return in.MakeString(string(out))
}

func primSubstring(in *Interp, args Obj) Obj {
	elems, _ := in.ListToSlice(args)
	s := in.BytesOf(elems[0])
	start := int(in.NumberValue(elems[1]))
	end := len(s)
	if len(elems) > 2 {
		end = int(in.NumberValue(elems[2]))
	}
	if start < 0 || end > len(s) || start > end {
		in.errWrongType("substring", elems[0])
	}
	return in.MakeString(string(s[start:end]))
}

func primStringToList(in *Interp, args Obj) Obj {
	s := in.BytesOf(in.Car(args))
	result := in.Nil
	for i := len(s) - 1; i >= 0; i-- {
		result = in.Cons(in.MakeChar(s[i]), result)
	}
	return result
}

func primListToString(in *Interp, args Obj) Obj {
	elems, _ := in.ListToSlice(in.Car(args))
	out := make([]byte, len(elems))
	for i, e := range elems {
		out[i] = in.CharValue(e)
	}
	return in.MakeString(string(out))
}

func primZeroP(in *Interp, args Obj) Obj     { return in.Bool(in.NumberValue(in.Car(args)) == 0) }
func primPositiveP(in *Interp, args Obj) Obj { return in.Bool(in.NumberValue(in.Car(args)) > 0) }
func primNegativeP(in *Interp, args Obj) Obj { return in.Bool(in.NumberValue(in.Car(args)) < 0) }
func primEvenP(in *Interp, args Obj) Obj     { return in.Bool(in.NumberValue(in.Car(args))%2 == 0) }
func primOddP(in *Interp, args Obj) Obj      { return in.Bool(in.NumberValue(in.Car(args))%2 != 0) }
