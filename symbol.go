package mesgo

// intern is cstring_to_symbol from spec §4.4: scan g_symbols for a
// byte-equal name and return the existing cell, otherwise allocate a
// fresh TSYMBOL cell backed by a TBYTES payload and prepend it to
// g_symbols. g_symbols is represented the same way any other Scheme list
// is - a chain of TPair cells - so the GC root walk needs no special
// case for it beyond treating it as an ordinary root pointer.
func (in *Interp) intern(name string) Obj {
	for l := in.symbols; in.IsPair(l); l = in.Cdr(l) {
		sym := in.Car(l)
		if in.StringValue(sym) == name {
			return sym
		}
	}

	mark := in.stack.Mark()
	b := in.allocBytes([]byte(name))
	in.stack.Push(b)
	sym := in.alloc(TSymbol, 0, b)
	in.stack.Restore(mark)

	in.symbols = in.Cons(sym, in.symbols)
	return sym
}

// IsSymbol reports whether x is a symbol cell.
func (in *Interp) IsSymbol(x Obj) bool { return in.Tag(x) == TSymbol }

// SymbolName returns a symbol cell's printable name.
func (in *Interp) SymbolName(x Obj) string { return in.StringValue(x) }
