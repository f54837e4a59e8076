package lisp

import (
	"fmt"
	"math/big"

	"github.com/nukata/goarith"
)

// NewGlobalScope builds a fresh top-level scope holding every built-in
// procedure named in spec §4.4. quote/lambda/define/set!/if/and/or are
// intercepted structurally by the evaluator (see eval.go). quote, lambda,
// define, set! and if have no entry here; and/or are bound to Builtins
// with a nil Fn so they resolve as values, but are never applied.
func NewGlobalScope() *Scope {
	g := NewScope(nil)
	for _, b := range builtinList() {
		g.Define(Intern(b.Name), b)
	}
	return g
}

func def(name string, fn func(*Scope, []Any) Any) *Builtin {
	return &Builtin{Name: name, Fn: fn}
}

func builtinList() []*Builtin {
	return []*Builtin{
		def("number?", func(_ *Scope, a []Any) Any { return arity1Is[int64](a) }),
		def("boolean?", func(_ *Scope, a []Any) Any { return arity1Is[bool](a) }),
		def("symbol?", func(_ *Scope, a []Any) Any { return arity1Is[*Symbol](a) }),
		def("pair?", func(_ *Scope, a []Any) Any {
			requireArity("pair?", a, 1)
			return isPair(a[0])
		}),
		def("null?", func(_ *Scope, a []Any) Any {
			requireArity("null?", a, 1)
			return a[0] == Any(Nil)
		}),
		def("list?", func(_ *Scope, a []Any) Any {
			requireArity("list?", a, 1)
			return isProperList(a[0])
		}),
		def("not", func(_ *Scope, a []Any) Any {
			requireArity("not", a, 1)
			b, ok := a[0].(bool)
			return ok && !b
		}),
		def("and", nil), // never invoked: (and ...) is intercepted by the evaluator
		def("or", nil),  // never invoked: (or ...) is intercepted by the evaluator

		def("=", cmpBuiltin("=", func(c int) bool { return c == 0 })),
		def("<", cmpBuiltin("<", func(c int) bool { return c < 0 })),
		def(">", cmpBuiltin(">", func(c int) bool { return c > 0 })),
		def("<=", cmpBuiltin("<=", func(c int) bool { return c <= 0 })),
		def(">=", cmpBuiltin(">=", func(c int) bool { return c >= 0 })),

		def("+", func(_ *Scope, a []Any) Any {
			xs := requireInts("+", a)
			acc := int64(0)
			for _, x := range xs {
				acc = numAdd(acc, x)
			}
			return acc
		}),
		def("*", func(_ *Scope, a []Any) Any {
			xs := requireInts("*", a)
			acc := int64(1)
			for _, x := range xs {
				acc = numMul(acc, x)
			}
			return acc
		}),
		def("-", func(_ *Scope, a []Any) Any {
			xs := requireInts("-", a)
			if len(xs) == 0 {
				panic(NewRuntimeError("- requires at least one argument"))
			}
			acc := xs[0]
			for _, x := range xs[1:] {
				acc = numSub(acc, x)
			}
			return acc
		}),
		def("/", func(_ *Scope, a []Any) Any {
			xs := requireInts("/", a)
			if len(xs) == 0 {
				panic(NewRuntimeError("/ requires at least one argument"))
			}
			acc := xs[0]
			for _, x := range xs[1:] {
				if x == 0 {
					panic(NewRuntimeError("division by zero"))
				}
				acc = acc / x // truncates toward zero, as Go's int64 / does
			}
			return acc
		}),
		def("abs", func(_ *Scope, a []Any) Any {
			xs := requireInts("abs", a)
			if len(xs) != 1 {
				panic(NewRuntimeError("abs requires exactly one argument"))
			}
			if xs[0] < 0 {
				return -xs[0]
			}
			return xs[0]
		}),
		def("min", func(_ *Scope, a []Any) Any {
			xs := requireInts("min", a)
			if len(xs) == 0 {
				panic(NewRuntimeError("min requires at least one argument"))
			}
			m := xs[0]
			for _, x := range xs[1:] {
				if x < m {
					m = x
				}
			}
			return m
		}),
		def("max", func(_ *Scope, a []Any) Any {
			xs := requireInts("max", a)
			if len(xs) == 0 {
				panic(NewRuntimeError("max requires at least one argument"))
			}
			m := xs[0]
			for _, x := range xs[1:] {
				if x > m {
					m = x
				}
			}
			return m
		}),

		def("cons", func(_ *Scope, a []Any) Any {
			requireArity("cons", a, 2)
			return &Cell{a[0], a[1]}
		}),
		def("car", func(_ *Scope, a []Any) Any {
			requireArity("car", a, 1)
			return requireCell("car", a[0]).Car
		}),
		def("cdr", func(_ *Scope, a []Any) Any {
			requireArity("cdr", a, 1)
			return requireCell("cdr", a[0]).Cdr
		}),
		def("list", func(_ *Scope, a []Any) Any {
			return list(a...)
		}),
		def("list-ref", func(_ *Scope, a []Any) Any {
			requireArity("list-ref", a, 2)
			idx := requireIndex("list-ref", a[1])
			cur := requireCell("list-ref", a[0])
			for idx > 0 {
				next, ok := cur.Cdr.(*Cell)
				if !ok || next == Nil {
					panic(NewRuntimeError("list-ref: index out of range"))
				}
				cur = next
				idx--
			}
			return cur.Car
		}),
		def("list-tail", func(_ *Scope, a []Any) Any {
			requireArity("list-tail", a, 2)
			idx := requireIndex("list-tail", a[1])
			var cur Any = a[0]
			for idx > 0 {
				c, ok := cur.(*Cell)
				if !ok || c == Nil {
					panic(NewRuntimeError("list-tail: index out of range"))
				}
				cur = c.Cdr
				idx--
			}
			return cur
		}),
		def("set-car!", func(_ *Scope, a []Any) Any {
			requireArity("set-car!", a, 2)
			requireCell("set-car!", a[0]).Car = a[1]
			return Nil
		}),
		def("set-cdr!", func(_ *Scope, a []Any) Any {
			requireArity("set-cdr!", a, 2)
			requireCell("set-cdr!", a[0]).Cdr = a[1]
			return Nil
		}),
	}
}

func requireArity(name string, a []Any, n int) {
	if len(a) != n {
		panic(NewRuntimeError(fmt.Sprintf("%s: expected %d argument(s), got %d", name, n, len(a))))
	}
}

func requireCell(name string, v Any) *Cell {
	c, ok := v.(*Cell)
	if !ok || c == Nil {
		panic(NewRuntimeError(name + ": argument must be a non-empty pair"))
	}
	return c
}

func requireIndex(name string, v Any) int64 {
	n, ok := v.(int64)
	if !ok || n < 0 {
		panic(NewRuntimeError(name + ": index must be a non-negative integer"))
	}
	return n
}

func requireInts(name string, a []Any) []int64 {
	xs := make([]int64, len(a))
	for i, v := range a {
		n, ok := v.(int64)
		if !ok {
			panic(NewRuntimeError(name + ": argument is not a number"))
		}
		xs[i] = n
	}
	return xs
}

func arity1Is[T any](a []Any) bool {
	if len(a) != 1 {
		panic(NewRuntimeError("expected exactly 1 argument"))
	}
	_, ok := a[0].(T)
	return ok
}

func cmpBuiltin(name string, pred func(int) bool) func(*Scope, []Any) Any {
	return func(_ *Scope, a []Any) Any {
		xs := requireInts(name, a)
		for i := 1; i < len(xs); i++ {
			if !pred(numCmp(xs[i-1], xs[i])) {
				return false
			}
		}
		return true
	}
}

// isPair implements spec §4.4's pair? exactly: a length-counting walk
// that conflates two-element proper lists with dotted pairs.
func isPair(v Any) bool {
	size := 0
outer:
	for {
		switch c := v.(type) {
		case *Cell:
			if c == Nil {
				break outer
			}
			if c.Car != Any(Nil) {
				size++
			}
			v = c.Cdr
		case int64, bool:
			size++
			break outer
		default:
			break outer
		}
	}
	return size == 2
}

func isProperList(v Any) bool {
	for {
		if v == Any(Nil) {
			return true
		}
		c, ok := v.(*Cell)
		if !ok {
			return false
		}
		if c == Nil {
			return true
		}
		v = c.Cdr
	}
}

// Numeric operations are lifted through goarith, as the teacher's global
// environment does for +, -, *, < and =, and then folded back to int64.
// This spec restricts the numeric tower to signed 64-bit integers, so the
// goarith result (which may have promoted to *big.Int on overflow) is
// reduced modulo 2^64 rather than allowed to grow, giving the same
// wraparound a native int64 operation would produce.

func numAdd(a, b int64) int64 {
	return wrapToInt64(goarith.AsNumber(a).Add(goarith.AsNumber(b)))
}

func numSub(a, b int64) int64 {
	return wrapToInt64(goarith.AsNumber(a).Sub(goarith.AsNumber(b)))
}

func numMul(a, b int64) int64 {
	return wrapToInt64(goarith.AsNumber(a).Mul(goarith.AsNumber(b)))
}

func numCmp(a, b int64) int {
	return goarith.AsNumber(a).Cmp(goarith.AsNumber(b))
}

func wrapToInt64(n goarith.Number) int64 {
	bi, ok := new(big.Int).SetString(fmt.Sprintf("%v", n), 10)
	if !ok {
		panic(NewRuntimeError("invalid numeric result"))
	}
	mod := new(big.Int).Lsh(big.NewInt(1), 64)
	r := new(big.Int).Mod(bi, mod)
	if r.Bit(63) == 1 {
		r.Sub(r, mod)
	}
	return r.Int64()
}
