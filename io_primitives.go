package mesgo

import "os"

// ioPrimitives is spec §4.9's port surface: read-char/peek-char/
// write-char, byte-oriented counterparts, the current-*-port accessors,
// and file/string port constructors, grounded on Port's
// bufio.Reader-style unget buffering.
func ioPrimitives() []primitive {
	return []primitive{
		{"read-char", primReadChar},
		{"peek-char", primPeekChar},
		{"write-char", primWriteChar},
		{"read-byte", primReadByte},
		{"write-byte", primWriteByte},
		{"write", primWrite},
		{"display", primDisplay},
		{"newline", primNewline},
		{"eof-object?", primEofObjectP},
		{"current-input-port", primCurrentInputPort},
		{"current-output-port", primCurrentOutputPort},
		{"current-error-port", primCurrentErrorPort},
		{"open-input-file", primOpenInputFile},
		{"open-output-file", primOpenOutputFile},
		{"close-port", primClosePort},
		{"open-input-string", primOpenInputString},
		{"open-output-string", primOpenOutputString},
		{"get-output-string", primGetOutputString},
	}
}

func (in *Interp) portArg(args Obj, n int, fallback Obj) *Port {
	elems, _ := in.ListToSlice(args)
	if n < len(elems) {
		return in.portAt(elems[n])
	}
	return in.portAt(fallback)
}

func primReadChar(in *Interp, args Obj) Obj {
	p := in.portArg(args, 0, in.currentInput)
	c := p.ReadByte()
	if c < 0 {
		return in.Eof
	}
	return in.MakeChar(byte(c))
}

func primPeekChar(in *Interp, args Obj) Obj {
	p := in.portArg(args, 0, in.currentInput)
	c := p.PeekByte()
	if c < 0 {
		return in.Eof
	}
	return in.MakeChar(byte(c))
}

func primWriteChar(in *Interp, args Obj) Obj {
	ch := in.Car(args)
	p := in.portArg(in.Cdr(args), 0, in.currentOutput)
	p.WriteByte(in.CharValue(ch))
	return in.Unspecified
}

func primReadByte(in *Interp, args Obj) Obj {
	p := in.portArg(args, 0, in.currentInput)
	c := p.ReadByte()
	if c < 0 {
		return in.Eof
	}
	return in.MakeNumber(int64(c))
}

func primWriteByte(in *Interp, args Obj) Obj {
	b := in.Car(args)
	p := in.portArg(in.Cdr(args), 0, in.currentOutput)
	p.WriteByte(byte(in.NumberValue(b)))
	return in.Unspecified
}

func primWrite(in *Interp, args Obj) Obj {
	x := in.Car(args)
	p := in.portArg(in.Cdr(args), 0, in.currentOutput)
	in.WriteForm(p, x, true)
	return in.Unspecified
}

func primDisplay(in *Interp, args Obj) Obj {
	x := in.Car(args)
	p := in.portArg(in.Cdr(args), 0, in.currentOutput)
	in.WriteForm(p, x, false)
	return in.Unspecified
}

func primNewline(in *Interp, args Obj) Obj {
	p := in.portArg(args, 0, in.currentOutput)
	p.WriteByte('\n')
	return in.Unspecified
}

func primEofObjectP(in *Interp, args Obj) Obj { return in.Bool(in.Car(args) == in.Eof) }

func primCurrentInputPort(in *Interp, args Obj) Obj  { return in.currentInput }
func primCurrentOutputPort(in *Interp, args Obj) Obj { return in.currentOutput }
func primCurrentErrorPort(in *Interp, args Obj) Obj  { return in.currentError }

func primOpenInputFile(in *Interp, args Obj) Obj {
	name := in.StringValue(in.Car(args))
	f, err := os.Open(name)
	if err != nil {
		in.raise(in.intern("system-error"), in.MakeString(err.Error()))
	}
	return in.registerPort(newFilePort(name, f, int(f.Fd())))
}

func primOpenOutputFile(in *Interp, args Obj) Obj {
	name := in.StringValue(in.Car(args))
	f, err := os.Create(name)
	if err != nil {
		in.raise(in.intern("system-error"), in.MakeString(err.Error()))
	}
	return in.registerPort(newFilePort(name, f, int(f.Fd())))
}

func primClosePort(in *Interp, args Obj) Obj {
	in.portAt(in.Car(args)).Close()
	return in.Unspecified
}

func primOpenInputString(in *Interp, args Obj) Obj {
	s := in.StringValue(in.Car(args))
	return in.registerPort(newStringInputPort(s))
}

func primOpenOutputString(in *Interp, args Obj) Obj {
	return in.registerPort(newStringOutputPort())
}

func primGetOutputString(in *Interp, args Obj) Obj {
	p := in.portAt(in.Car(args))
	return in.MakeString(p.OutputString())
}
