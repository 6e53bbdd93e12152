package mesgo

import (
	"strconv"
	"strings"
	"unicode"
)

// ReadForm is spec §6.1's read_form/§4.3's reader entry point: parse one
// S-expression from p, building cells directly in the heap as it goes.
// A clean EOF at the top level yields the Eof singleton rather than an
// error (spec §4.3/"EOF / end of input" class in §7); any other read
// failure is a *SchemeError.
func (in *Interp) ReadForm(p *Port) (Obj, error) {
	var result Obj
	var readErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if se, ok := r.(*SchemeError); ok {
					readErr = se
					return
				}
				panic(r)
			}
		}()
		result = in.read(p)
	}()
	return result, readErr
}

func (in *Interp) read(p *Port) Obj {
	in.skipAtmosphere(p)
	c := p.ReadByte()
	switch {
	case c < 0:
		return in.Eof
	case c == '(' || c == '[':
		return in.readList(p, closerFor(byte(c)))
	case c == ')' || c == ']':
		in.raise(in.intern("read-error"), in.MakeString("unexpected close paren"))
		return in.Unspecified
	case c == '\'':
		return in.List(in.sf.quote, in.read(p))
	case c == '`':
		return in.List(in.sf.quasiquote, in.read(p))
	case c == ',':
		if p.PeekByte() == '@' {
			p.ReadByte()
			return in.List(in.sf.unquoteSplicing, in.read(p))
		}
		return in.List(in.sf.unquote, in.read(p))
	case c == '"':
		return in.readString(p)
	case c == '#':
		return in.readHash(p)
	default:
		return in.readAtom(p, byte(c))
	}
}

func closerFor(open byte) byte {
	if open == '[' {
		return ']'
	}
	return ')'
}

// skipAtmosphere eats whitespace, ";" line comments, "#| ... |#"
// (spelled "#!"..."!#" in this dialect, per spec §4.3) block comments,
// and "#;" datum comments, any number of times, so callers always land
// on the first byte of real content or EOF.
func (in *Interp) skipAtmosphere(p *Port) {
	for {
		c := p.ReadByte()
		switch {
		case c < 0:
			return
		case unicode.IsSpace(rune(c)):
			continue
		case c == ';':
			for {
				c2 := p.ReadByte()
				if c2 < 0 || c2 == '\n' {
					break
				}
			}
			continue
		case c == '#':
			switch p.PeekByte() {
			case '!':
				p.ReadByte()
				in.skipBlockComment(p)
				continue
			case ';':
				p.ReadByte()
				in.read(p) // discard one datum
				continue
			default:
				p.UnreadByte(c)
				return
			}
		default:
			p.UnreadByte(c)
			return
		}
	}
}

func (in *Interp) skipBlockComment(p *Port) {
	for {
		c := p.ReadByte()
		if c < 0 {
			return
		}
		if c == '!' && p.PeekByte() == '#' {
			p.ReadByte()
			return
		}
	}
}

func (in *Interp) readList(p *Port, closer byte) Obj {
	in.skipAtmosphere(p)
	c := p.PeekByte()
	if c < 0 {
		in.raise(in.intern("read-error"), in.MakeString("unexpected eof in list"))
	}
	if byte(c) == closer {
		p.ReadByte()
		return in.Nil
	}

	mark := in.stack.Mark()
	head := in.read(p)
	headCell := in.Cons(head, in.Nil)
	in.stack.Push(headCell)
	tail := headCell

	for {
		in.skipAtmosphere(p)
		c = p.PeekByte()
		if c < 0 {
			in.raise(in.intern("read-error"), in.MakeString("unexpected eof in list"))
		}
		if byte(c) == closer {
			p.ReadByte()
			break
		}
		if c == '.' {
			p.ReadByte()
			if peek := p.PeekByte(); peek < 0 || unicode.IsSpace(rune(peek)) || peek == int(closer) {
				in.skipAtmosphere(p)
				dotted := in.read(p)
				in.SetCdr(tail, dotted)
				in.skipAtmosphere(p)
				end := p.ReadByte()
				if end < 0 || byte(end) != closer {
					in.raise(in.intern("read-error"), in.MakeString("malformed dotted list"))
				}
				in.stack.Restore(mark)
				return headCell
			}
			p.UnreadByte('.')
		}
		v := in.read(p)
		next := in.Cons(v, in.Nil)
		in.SetCdr(tail, next)
		tail = next
	}

	in.stack.Restore(mark)
	return headCell
}

func (in *Interp) readString(p *Port) Obj {
	var sb strings.Builder
	for {
		c := p.ReadByte()
		if c < 0 {
			in.raise(in.intern("read-error"), in.MakeString("unterminated string"))
		}
		if c == '"' {
			break
		}
		if c == '\\' {
			e := p.ReadByte()
			sb.WriteByte(escapeByte(byte(e)))
			continue
		}
		sb.WriteByte(byte(c))
	}
	return in.MakeString(sb.String())
}

func escapeByte(e byte) byte {
	switch e {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return e
	}
}

func (in *Interp) readHash(p *Port) Obj {
	c := p.ReadByte()
	switch c {
	case 't':
		return in.True
	case 'f':
		return in.False
	case '\\':
		return in.readChar(p)
	case 'd':
		return in.readRadixNumber(p, 10)
	case 'x':
		return in.readRadixNumber(p, 16)
	case 'b':
		return in.readRadixNumber(p, 2)
	case '(':
		return in.readVector(p)
	default:
		in.raise(in.intern("read-error"), in.MakeString("unsupported # syntax"))
		return in.Unspecified
	}
}

func (in *Interp) readChar(p *Port) Obj {
	var sb strings.Builder
	first := p.ReadByte()
	sb.WriteByte(byte(first))
	for isSymbolByte(p.PeekByte()) {
		sb.WriteByte(byte(p.ReadByte()))
	}
	name := sb.String()
	if len(name) == 1 {
		return in.MakeChar(name[0])
	}
	switch name {
	case "space":
		return in.MakeChar(' ')
	case "newline":
		return in.MakeChar('\n')
	case "tab":
		return in.MakeChar('\t')
	case "nul", "null":
		return in.MakeChar(0)
	default:
		return in.MakeChar(name[0])
	}
}

func (in *Interp) readRadixNumber(p *Port, base int) Obj {
	var sb strings.Builder
	for isSymbolByte(p.PeekByte()) {
		sb.WriteByte(byte(p.ReadByte()))
	}
	n, err := strconv.ParseInt(sb.String(), base, 64)
	if err != nil {
		in.raise(in.intern("read-error"), in.MakeString("bad number literal: "+sb.String()))
	}
	return in.MakeNumber(n)
}

func (in *Interp) readVector(p *Port) Obj {
	elems, _ := in.ListToSlice(in.readList(p, ')'))
	v := in.MakeVector(len(elems), in.Unspecified)
	for i, e := range elems {
		in.VectorSet(v, i, e)
	}
	return v
}

func isSymbolByte(c int) bool {
	if c < 0 {
		return false
	}
	switch byte(c) {
	case '(', ')', '[', ']', '"', ';', '\'', '`', ',':
		return false
	}
	return !unicode.IsSpace(rune(c))
}

// readAtom reads a bare symbol or number token. A token is numeric iff
// it is an optional sign followed by base-10 digits and nothing else
// (spec §4.3's tie-break); anything else interns as a symbol.
func (in *Interp) readAtom(p *Port, first byte) Obj {
	var sb strings.Builder
	sb.WriteByte(first)
	for isSymbolByte(p.PeekByte()) {
		sb.WriteByte(byte(p.ReadByte()))
	}
	tok := sb.String()
	if n, ok := parseDecimal(tok); ok {
		return in.MakeNumber(n)
	}
	return in.intern(tok)
}

func parseDecimal(tok string) (int64, bool) {
	if tok == "" {
		return 0, false
	}
	body := tok
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	if body == "" {
		return 0, false
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
