package lisp

// Any is the universe of runtime values: int64 (Integer), bool (Boolean),
// *Symbol, *Cell, *Builtin, *ClosureFactory, *Closure, and Null (nil *Cell).
// This is the same tagged-union-as-interface{} approach nukata's Scheme
// family uses throughout; Go's type switch plays the role of the
// dynamic_pointer_cast dispatch in the C++ original this spec was
// distilled from.
type Any = interface{}

// Cell is a cons-cell: the sole compound value. A well-formed list is
// either Nil or a Cell whose Cdr is itself a well-formed list; anything
// else in cdr position makes the list improper.
type Cell struct {
	Car Any
	Cdr Any
}

// Nil is the empty list. A nil *Cell and the absence of a value are the
// same thing here, so Null never needs its own type.
var Nil *Cell = nil

// list builds a proper list from its arguments, rightmost cell first so
// the result reads left to right.
func list(items ...Any) *Cell {
	var result Any = Nil
	for i := len(items) - 1; i >= 0; i-- {
		result = &Cell{items[i], result}
	}
	return result.(*Cell)
}

// Builtin is a primitive procedure. It receives the caller's scope (most
// ignore it) and the already-evaluated argument vector.
type Builtin struct {
	Name string
	Fn   func(scope *Scope, args []Any) Any
}

// ClosureFactory is the value a (lambda ...) expression evaluates to: a
// template capturing its defining scope, ready to be instantiated into a
// Closure on application.
type ClosureFactory struct {
	Params *Cell // proper list of *Symbol, possibly Nil
	Body   *Cell // non-empty list of body expressions
	Env    *Scope
}

// Closure is an instantiated application frame for a ClosureFactory: one
// Local scope, created fresh each time the evaluator applies a
// ClosureFactory (spec §4.6). A Closure is never itself a first-class
// value reachable from source — lambda expressions only ever evaluate to
// a ClosureFactory — so its Local scope has exactly one caller and does
// not persist across separate calls; see DESIGN.md for why the source
// interpreter's cross-invocation scope reuse (§9) has no observable
// counterpart here.
type Closure struct {
	Params *Cell
	Body   *Cell
	Local  *Scope
}

// properListLen returns the number of cells in a proper list and whether
// it is in fact proper (Nil-terminated with no non-Cell, non-Nil cdr).
func properListLen(v Any) (int, bool) {
	n := 0
	for {
		if v == Any(Nil) {
			return n, true
		}
		c, ok := v.(*Cell)
		if !ok {
			return n, false
		}
		n++
		v = c.Cdr
	}
}
