package mesgo

import "fmt"

// FatalError models spec §7 class 1: collector inconsistency, realloc
// (here: arena growth) failure, or a missing boot file. The driver
// prints "mes: <message>" to fd 2 and exits 1.
type FatalError struct {
	Msg string
}

func (e *FatalError) Error() string { return "mes: " + e.Msg }

// SchemeError models spec §7 class 2: a type mismatch, unbound variable,
// division by zero, or arity mismatch raised by a primitive or the
// evaluator. Key names the error category (an interned symbol, by
// convention); Irritant carries the offending value, mirroring the
// original's error(key, irritant) pairing.
type SchemeError struct {
	Key      Obj
	Irritant Obj
	// Message is a human-readable rendering captured at raise time, since
	// formatting Key/Irritant requires Interp.WriteForm and errors must
	// remain usable after the heap that produced them has moved on.
	Message string
}

func (e *SchemeError) Error() string { return e.Message }

// raise is the Go stand-in for the original's escape-continuation based
// error(): it panics with a *SchemeError, to be recovered by the
// recover in Eval, Expand or ReadForm, which hands it back to the driver
// as a returned error. Primitives never recover their own errors -
// propagation policy per spec §7 is "surface, don't catch".
func (in *Interp) raise(key, irritant Obj) {
	panic(&SchemeError{
		Key:      key,
		Irritant: irritant,
		Message:  in.describeError(key, irritant),
	})
}

func (in *Interp) describeError(key, irritant Obj) string {
	keyName := "error"
	if in.Tag(key) == TSymbol {
		keyName = in.StringValue(key)
	}
	return fmt.Sprintf("%s: %s", keyName, in.SafeWriteString(irritant))
}

// errUnboundVariable/errWrongType/... are convenience raisers used
// throughout eval.go and the primitive table; each interns its key
// symbol lazily via Interp.intern so no import-time heap access is
// needed.
func (in *Interp) errUnboundVariable(name Obj) {
	in.raise(in.intern("unbound-variable"), name)
}

func (in *Interp) errWrongType(proc string, got Obj) {
	panic(&SchemeError{
		Key:      in.intern("wrong-type-arg"),
		Irritant: got,
		Message:  fmt.Sprintf("wrong-type-arg: %s: %s", proc, in.SafeWriteString(got)),
	})
}

func (in *Interp) errArity(proc string) {
	in.raise(in.intern("wrong-number-of-args"), in.MakeString(proc))
}

func (in *Interp) errDivideByZero(proc string) {
	in.raise(in.intern("numerical-overflow"), in.MakeString(proc))
}

func (in *Interp) errNotApplicable(x Obj) {
	in.raise(in.intern("not-applicable"), x)
}
