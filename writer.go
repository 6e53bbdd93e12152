package mesgo

import (
	"fmt"
	"strings"
)

// WriteForm is spec §6.1's write_form: render x to p. write selects
// `write` style (strings quoted, chars as #\x) versus `display` style
// (raw bytes, no quoting) per spec §4.3/§4.6.
func (in *Interp) WriteForm(p *Port, x Obj, write bool) error {
	var sb strings.Builder
	in.writeTo(&sb, x, write)
	p.WriteString(sb.String())
	return nil
}

// SafeWriteString renders x for inclusion in a diagnostic message; it
// never itself raises, falling back to a placeholder on any internal
// inconsistency so that error reporting cannot recursively fail.
func (in *Interp) SafeWriteString(x Obj) string {
	defer func() { recover() }()
	var sb strings.Builder
	in.writeTo(&sb, x, true)
	return sb.String()
}

func (in *Interp) writeTo(sb *strings.Builder, x Obj, write bool) {
	switch in.Tag(x) {
	case TSpecial:
		in.writeSpecial(sb, x)
	case TNumber:
		fmt.Fprintf(sb, "%d", in.NumberValue(x))
	case TSymbol:
		sb.WriteString(in.SymbolName(x))
	case TKeyword:
		sb.WriteString(in.SymbolName(x))
		sb.WriteByte(':')
	case TString:
		if write {
			sb.WriteByte('"')
			for _, b := range in.BytesOf(x) {
				writeEscapedByte(sb, b)
			}
			sb.WriteByte('"')
		} else {
			sb.Write(in.BytesOf(x))
		}
	case TChar:
		if write {
			sb.WriteString("#\\")
			sb.WriteByte(in.CharValue(x))
		} else {
			sb.WriteByte(in.CharValue(x))
		}
	case TPair:
		in.writePair(sb, x, write)
	case TVector:
		sb.WriteString("#(")
		n := in.VectorLength(x)
		for i := 0; i < n; i++ {
			if i > 0 {
				sb.WriteByte(' ')
			}
			in.writeTo(sb, in.VectorRef(x, i), write)
		}
		sb.WriteByte(')')
	case TClosure:
		sb.WriteString("#<closure>")
	case TContinuation:
		sb.WriteString("#<continuation>")
	case TFunction:
		fn := in.primitiveAt(x)
		if fn != nil {
			fmt.Fprintf(sb, "#<primitive-procedure %s>", fn.name)
		} else {
			sb.WriteString("#<primitive-procedure>")
		}
	case TMacro:
		sb.WriteString("#<macro>")
	case TPort:
		sb.WriteString("#<port>")
	case TValues:
		sb.WriteString("#<values>")
	case TStruct:
		sb.WriteString("#<struct>")
	case TVariable, TRef:
		sb.WriteString("#<variable>")
	default:
		sb.WriteString("#<unknown>")
	}
}

func (in *Interp) writeSpecial(sb *strings.Builder, x Obj) {
	switch x {
	case in.Nil:
		sb.WriteString("()")
	case in.True:
		sb.WriteString("#t")
	case in.False:
		sb.WriteString("#f")
	case in.Unspecified:
		sb.WriteString("")
	case in.Eof:
		sb.WriteString("#<eof>")
	default:
		sb.WriteString("#<special>")
	}
}

func (in *Interp) writePair(sb *strings.Builder, x Obj, write bool) {
	if sym, ok := in.quoteAbbrev(x); ok {
		sb.WriteString(sym)
		in.writeTo(sb, in.Car(in.Cdr(x)), write)
		return
	}
	sb.WriteByte('(')
	in.writeTo(sb, in.Car(x), write)
	rest := in.Cdr(x)
	for in.IsPair(rest) {
		sb.WriteByte(' ')
		in.writeTo(sb, in.Car(rest), write)
		rest = in.Cdr(rest)
	}
	if rest != in.Nil {
		sb.WriteString(" . ")
		in.writeTo(sb, rest, write)
	}
	sb.WriteByte(')')
}

func (in *Interp) quoteAbbrev(x Obj) (string, bool) {
	if !in.IsPair(x) || !in.IsPair(in.Cdr(x)) || in.Cdr(in.Cdr(x)) != in.Nil {
		return "", false
	}
	switch in.Car(x) {
	case in.sf.quote:
		return "'", true
	case in.sf.quasiquote:
		return "`", true
	case in.sf.unquote:
		return ",", true
	case in.sf.unquoteSplicing:
		return ",@", true
	default:
		return "", false
	}
}

func writeEscapedByte(sb *strings.Builder, b byte) {
	switch b {
	case '"':
		sb.WriteString(`\"`)
	case '\\':
		sb.WriteString(`\\`)
	case '\n':
		sb.WriteString(`\n`)
	case '\t':
		sb.WriteString(`\t`)
	default:
		sb.WriteByte(b)
	}
}
