package mesgo

import (
	"github.com/sirupsen/logrus"
)

// Config bundles the construction-time parameters that used to be read
// from MES_ARENA/MES_STACK/MES_MAX_ARENA globals (spec §6.3). cmd/mes
// populates one from flags/env and hands it to NewInterp; nothing else
// in the package reads the environment directly, per the Design Notes
// directive against hidden globals.
type Config struct {
	ArenaCells    Obj
	StackCells    int
	MaxArenaCells Obj
	Logger        *logrus.Logger
}

func DefaultConfig() Config {
	return Config{
		ArenaCells:    1_000_000,
		StackCells:    100_000,
		MaxArenaCells: 100_000_000,
	}
}

// specialForms holds the interned symbols the evaluator dispatches on by
// identity (spec §4.6): comparing Obj equality rather than string
// comparison is both the original's technique and the cheaper one here.
type specialForms struct {
	quote, quasiquote, unquote, unquoteSplicing  Obj
	ifSym, cond, when, begin, lambda             Obj
	define, defineMacro, setBang                 Obj
	let, letStar, letrec, and, or                Obj
	callcc, apply                                Obj
	elseSym, arrow                               Obj
}

// Interp is the single explicit value the Design Notes ask for in place
// of the original's process-global g_cells/g_free/r0.../g_symbols: every
// subsystem (heap, reader, evaluator, primitives, ports) is reached only
// through a *Interp, so nothing in the package keeps state no caller can
// see.
type Interp struct {
	heap  *Heap
	stack *Stack

	// VM registers, spec §3.2.
	r0, r1, r2, r3 Obj // env, value/expr, saved, continuation token
	m0             Obj // current module's top environment

	symbols Obj // g_symbols
	macros  Obj // g_macros: alist of (name . macro-cell)
	ports   Obj // g_ports: list of TPORT cells

	portTable []*Port

	continuations []*continuationToken

	Nil, True, False, Unspecified, Eof Obj

	sf specialForms

	currentInput, currentOutput, currentError Obj

	primitives []*primitive

	log *logrus.Logger
}

// NewInterp performs spec §6.1's init(arena_cells, stack_cells): allocate
// both semispaces (well: the one active Heap, grown on demand) and the
// root stack, seed the singletons and special-form keywords at fixed low
// indices, and install the primitive table.
func NewInterp(cfg Config) (*Interp, error) {
	if cfg.ArenaCells <= 0 {
		cfg.ArenaCells = DefaultConfig().ArenaCells
	}
	if cfg.MaxArenaCells <= 0 {
		cfg.MaxArenaCells = DefaultConfig().MaxArenaCells
	}
	if cfg.StackCells <= 0 {
		cfg.StackCells = DefaultConfig().StackCells
	}

	in := &Interp{
		heap:  NewHeap(cfg.ArenaCells, cfg.MaxArenaCells),
		stack: NewStack(cfg.StackCells),
		log:   cfg.Logger,
	}

	in.seedSingletons()

	in.symbols = in.Nil
	in.macros = in.Nil
	in.ports = in.Nil

	in.seedSpecialForms()
	in.heap.symbolMax = in.heap.free

	in.m0 = in.ExtendFrame(in.Nil)

	in.installPrimitives()
	in.installPorts()

	return in, nil
}

func (in *Interp) seedSingletons() {
	in.Nil = in.heap.allocCell(TSpecial, 0, 0)
	in.True = in.heap.allocCell(TSpecial, 1, 0)
	in.False = in.heap.allocCell(TSpecial, 2, 0)
	in.Unspecified = in.heap.allocCell(TSpecial, 3, 0)
	in.Eof = in.heap.allocCell(TSpecial, 4, 0)
}

func (in *Interp) seedSpecialForms() {
	sf := &in.sf
	sf.quote = in.intern("quote")
	sf.quasiquote = in.intern("quasiquote")
	sf.unquote = in.intern("unquote")
	sf.unquoteSplicing = in.intern("unquote-splicing")
	sf.ifSym = in.intern("if")
	sf.cond = in.intern("cond")
	sf.when = in.intern("when")
	sf.begin = in.intern("begin")
	sf.lambda = in.intern("lambda")
	sf.define = in.intern("define")
	sf.defineMacro = in.intern("define-macro")
	sf.setBang = in.intern("set!")
	sf.let = in.intern("let")
	sf.letStar = in.intern("let*")
	sf.letrec = in.intern("letrec")
	sf.and = in.intern("and")
	sf.or = in.intern("or")
	sf.callcc = in.intern("call-with-current-continuation")
	sf.apply = in.intern("apply")
	sf.elseSym = in.intern("else")
	sf.arrow = in.intern("=>")
}

// Bool converts a Go bool to the interpreter's #t/#f singletons.
func (in *Interp) Bool(b bool) Obj {
	if b {
		return in.True
	}
	return in.False
}

// IsTruthy implements Scheme's "everything but #f is true".
func (in *Interp) IsTruthy(x Obj) bool { return x != in.False }
