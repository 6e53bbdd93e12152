package mesgo

import (
	"io"
	"os"
)

// Port is the Go-native half of the §4.9/§6.2 port subsystem. The heap
// only ever holds a TPORT header cell whose a field is a stable index
// into Interp.portTable; the mutable read state - the file handle, the
// one-byte unget buffer, or the cursor into a string port's backing
// bytes - lives here, outside the copying heap, since Go's own runtime
// already manages this memory and the copying collector gains nothing
// by relocating it. This is the one deliberate deviation from the
// original's layout (which threads a string port's remaining bytes
// through the cdr of the port cell so the collector moves it along);
// see DESIGN.md for the rationale.
type Port struct {
	name string

	// fd-backed port state.
	file *os.File
	fd   int

	// string-port state.
	isString bool
	buf       []byte
	pos       int
	writeBuf  []byte

	// unget is the one-byte lookahead buffer spec §4.3/§6.2 guarantees
	// per port, grounded on bufio.Reader's lastByte/UnreadByte idiom.
	unget    int
	hasUnget bool

	closed bool
}

const noUnget = -1

func newFilePort(name string, f *os.File, fd int) *Port {
	return &Port{name: name, file: f, fd: fd, unget: noUnget}
}

func newStringInputPort(s string) *Port {
	return &Port{name: "string", isString: true, buf: []byte(s), unget: noUnget}
}

func newStringOutputPort() *Port {
	return &Port{name: "string", isString: true, unget: noUnget}
}

// ReadByte returns the next byte, or -1 at EOF. It honors a pending
// unget before touching the underlying source.
func (p *Port) ReadByte() int {
	if p.hasUnget {
		p.hasUnget = false
		return p.unget
	}
	if p.isString {
		if p.pos >= len(p.buf) {
			return -1
		}
		b := p.buf[p.pos]
		p.pos++
		return int(b)
	}
	var b [1]byte
	n, err := p.file.Read(b[:])
	if n == 0 || err != nil {
		return -1
	}
	return int(b[0])
}

// PeekByte reads and immediately ungets, giving one-byte lookahead
// without disturbing the port's position.
func (p *Port) PeekByte() int {
	c := p.ReadByte()
	if c >= 0 {
		p.UnreadByte(c)
	}
	return c
}

// UnreadByte pushes c back so the next ReadByte returns it. Only one
// byte of lookahead is guaranteed, matching spec §4.3/§6.2; a second
// unget before a read is a usage bug in the caller, not in Port.
func (p *Port) UnreadByte(c int) {
	p.unget = c
	p.hasUnget = c >= 0
}

func (p *Port) WriteByte(c byte) {
	if p.isString {
		p.writeBuf = append(p.writeBuf, c)
		return
	}
	p.file.Write([]byte{c})
}

func (p *Port) WriteString(s string) {
	if p.isString {
		p.writeBuf = append(p.writeBuf, s...)
		return
	}
	io.WriteString(p.file, s)
}

func (p *Port) OutputString() string { return string(p.writeBuf) }

func (p *Port) Close() {
	if p.closed {
		return
	}
	p.closed = true
	if p.file != nil {
		p.file.Close()
	}
}

// registerPort appends p to the port table and conses a TPORT cell onto
// g_ports (spec §3.2/§5: "ports opened ... are recorded in g_ports").
func (in *Interp) registerPort(p *Port) Obj {
	idx := Obj(len(in.portTable))
	in.portTable = append(in.portTable, p)
	// The table index lives in the car (a), which spec's GC dispatch
	// does not relocate for TPort; the cdr (b) is left at 0 - a true
	// no-op for the collector - since the mutable port state itself
	// lives in Interp.portTable, not on the heap. See DESIGN.md.
	cellIdx := in.alloc(TPort, idx, 0)
	in.ports = in.Cons(cellIdx, in.ports)
	return cellIdx
}

func (in *Interp) portAt(cellIdx Obj) *Port {
	a := in.Car(cellIdx)
	return in.portTable[a]
}

// NewFilePort wraps an already-open *os.File as a Port without
// registering it on the heap's g_ports list, for driver-side uses (e.g.
// reading a boot script) that never need the Scheme program to see the
// port as a first-class value.
func (in *Interp) NewFilePort(name string, f *os.File) *Port {
	return newFilePort(name, f, int(f.Fd()))
}

// StandardInputPort and StandardOutputPort expose the ports installed at
// construction time, for the driver's REPL loop.
func (in *Interp) StandardInputPort() *Port  { return in.portAt(in.currentInput) }
func (in *Interp) StandardOutputPort() *Port { return in.portAt(in.currentOutput) }

// TopLevelEnv returns the module's top environment (g_m0), the frame the
// driver evaluates boot/REPL forms against.
func (in *Interp) TopLevelEnv() Obj { return in.m0 }
