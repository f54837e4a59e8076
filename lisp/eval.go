package lisp

// Eval evaluates exp in scope and returns its value, or panics with one
// of *SyntaxError, *NameError or *RuntimeError. Recursion depth tracks
// source nesting directly; tail calls are not optimized (spec Non-goals).
func Eval(exp Any, scope *Scope) Any {
	switch x := exp.(type) {
	case int64, bool:
		return x
	case *Symbol:
		v, ok := scope.Lookup(x)
		if !ok {
			panic(NewNameError(x.String()))
		}
		return v
	case *Cell:
		if x == Nil {
			panic(NewRuntimeError("cannot evaluate the empty list"))
		}
		return evalCompound(x, scope)
	default:
		panic(NewRuntimeError("cannot evaluate value"))
	}
}

// evalCompound dispatches on the head of a non-empty list. quote, lambda,
// define, set!, if, and and or are keywords: the evaluator recognizes
// them by interned symbol identity before any scope lookup happens, so
// (unlike an ordinary binding) they can never be shadowed by a local
// define. Everything else is an ordinary application: evaluate the head,
// evaluate the arguments strictly left to right, apply.
func evalCompound(x *Cell, scope *Scope) Any {
	head := x.Car
	tail := x.Cdr
	if sym, ok := head.(*Symbol); ok {
		switch sym {
		case symQuote:
			return evalQuoteForm(tail)
		case symLambda:
			return evalLambdaForm(tail, scope)
		case symDefine:
			return evalDefineForm(tail, scope)
		case symSetQ:
			return evalSetForm(tail, scope)
		case symIf:
			return evalIfForm(tail, scope)
		case symAnd:
			return evalAndOr(true, tail, scope)
		case symOr:
			return evalAndOr(false, tail, scope)
		}
	}
	fn := Eval(head, scope)
	args := evalArgs(tail, scope)
	return Apply(fn, args, scope)
}

// evalArgs evaluates a proper list of argument expressions strictly,
// left to right.
func evalArgs(tail Any, scope *Scope) []Any {
	c, ok := tail.(*Cell)
	if !ok {
		panic(NewRuntimeError("improper argument list"))
	}
	var args []Any
	for c != Nil {
		args = append(args, Eval(c.Car, scope))
		next, ok := c.Cdr.(*Cell)
		if !ok {
			panic(NewRuntimeError("improper argument list"))
		}
		c = next
	}
	return args
}

// Apply invokes fn (a *Builtin or *ClosureFactory) on already-evaluated
// args. scope is the caller's scope, passed through to builtins that
// want it (none currently do, but the shape mirrors the teacher's
// Function.Apply(scope, args) signature).
func Apply(fn Any, args []Any, scope *Scope) Any {
	switch f := fn.(type) {
	case *Builtin:
		if f.Fn == nil {
			panic(NewRuntimeError(f.Name + " cannot be called as a value"))
		}
		return f.Fn(scope, args)
	case *ClosureFactory:
		local := NewScope(f.Env)
		bindParams(f.Params, args, local)
		closure := &Closure{Params: f.Params, Body: f.Body, Local: local}
		return evalBody(closure.Body, closure.Local)
	default:
		panic(NewRuntimeError("object is not applicable"))
	}
}

func bindParams(params *Cell, args []Any, local *Scope) {
	i := 0
	for c := params; c != Nil; {
		sym, ok := c.Car.(*Symbol)
		if !ok {
			panic(NewSyntaxError("bad lambda parameter list"))
		}
		if i >= len(args) {
			panic(NewSyntaxError("too few arguments"))
		}
		local.Define(sym, args[i])
		i++
		next, ok := c.Cdr.(*Cell)
		if !ok {
			panic(NewSyntaxError("bad lambda parameter list"))
		}
		c = next
	}
	if i != len(args) {
		panic(NewSyntaxError("too many arguments"))
	}
}

func evalBody(body *Cell, scope *Scope) Any {
	var result Any = Nil
	for c := body; c != Nil; {
		result = Eval(c.Car, scope)
		next, ok := c.Cdr.(*Cell)
		if !ok {
			panic(NewSyntaxError("improper body"))
		}
		c = next
	}
	return result
}

func evalQuoteForm(tail Any) Any {
	if tail == Any(Nil) {
		return Nil
	}
	c, ok := tail.(*Cell)
	if !ok {
		panic(NewSyntaxError("bad quote form"))
	}
	return c.Car
}

func evalLambdaForm(tail Any, scope *Scope) Any {
	c, ok := tail.(*Cell)
	if !ok || c == Nil {
		panic(NewSyntaxError("lambda requires a parameter list and a body"))
	}
	params, ok := c.Car.(*Cell)
	if !ok && c.Car != Any(Nil) {
		panic(NewSyntaxError("bad lambda parameter list"))
	}
	if _, ok := properListLen(c.Car); !ok {
		panic(NewSyntaxError("bad lambda parameter list"))
	}
	for w := params; w != Nil; w, _ = w.Cdr.(*Cell) {
		if _, ok := w.Car.(*Symbol); !ok {
			panic(NewSyntaxError("lambda parameters must be symbols"))
		}
	}
	body, ok := c.Cdr.(*Cell)
	if !ok || body == Nil {
		panic(NewSyntaxError("lambda body must not be empty"))
	}
	return &ClosureFactory{Params: params, Body: body, Env: scope}
}

// evalDefineForm implements (define name value) and the procedure-sugar
// (define (name . params) body...). It also reproduces the source
// interpreter's unusual extra-arguments form: if more expressions follow
// the value position and the value evaluates to a ClosureFactory, that
// closure is invoked immediately on the (evaluated) extra arguments and
// the result, not the closure, is what gets bound.
func evalDefineForm(tail Any, scope *Scope) Any {
	c, ok := tail.(*Cell)
	if !ok || c == Nil {
		panic(NewSyntaxError("define requires a target and a value"))
	}
	switch target := c.Car.(type) {
	case *Symbol:
		rest, ok := c.Cdr.(*Cell)
		if !ok || rest == Nil {
			panic(NewSyntaxError("define requires a value"))
		}
		val := Eval(rest.Car, scope)
		if extra, ok := rest.Cdr.(*Cell); ok && extra != Nil {
			factory, ok := val.(*ClosureFactory)
			if !ok {
				panic(NewSyntaxError("define: extra arguments require a lambda value"))
			}
			val = Apply(factory, evalArgs(extra, scope), scope)
		}
		scope.Define(target, val)
		return Nil
	case *Cell:
		if target == Nil {
			panic(NewSyntaxError("bad define target"))
		}
		nameSym, ok := target.Car.(*Symbol)
		if !ok {
			panic(NewSyntaxError("bad define target"))
		}
		params := target.Cdr
		body, ok := c.Cdr.(*Cell)
		if !ok || body == Nil {
			panic(NewSyntaxError("lambda body must not be empty"))
		}
		factory := evalLambdaForm(&Cell{params, body}, scope).(*ClosureFactory)
		scope.Define(nameSym, factory)
		return Nil
	default:
		panic(NewSyntaxError("bad define target"))
	}
}

func evalSetForm(tail Any, scope *Scope) Any {
	c, ok := tail.(*Cell)
	if !ok || c == Nil {
		panic(NewSyntaxError("set! requires a name and a value"))
	}
	nameSym, ok := c.Car.(*Symbol)
	if !ok {
		panic(NewSyntaxError("set! target must be a symbol"))
	}
	rest, ok := c.Cdr.(*Cell)
	if !ok || rest == Nil || rest.Cdr != Any(Nil) {
		panic(NewSyntaxError("set! requires exactly one value"))
	}
	val := Eval(rest.Car, scope)
	if !scope.Assign(nameSym, val) {
		panic(NewSyntaxError("set!: " + nameSym.String() + " is not bound"))
	}
	return Nil
}

func evalIfForm(tail Any, scope *Scope) Any {
	c, ok := tail.(*Cell)
	if !ok || c == Nil {
		panic(NewSyntaxError("if requires a condition and a then-branch"))
	}
	rest, ok := c.Cdr.(*Cell)
	if !ok || rest == Nil {
		panic(NewSyntaxError("if requires a then-branch"))
	}
	var elseExpr Any
	hasElse := false
	if elseCell, ok := rest.Cdr.(*Cell); ok && elseCell != Nil {
		if elseCell.Cdr != Any(Nil) {
			panic(NewSyntaxError("if takes at most three arguments"))
		}
		elseExpr = elseCell.Car
		hasElse = true
	}
	cond := Eval(c.Car, scope)
	if b, ok := cond.(bool); ok && !b {
		if hasElse {
			return Eval(elseExpr, scope)
		}
		return Nil
	}
	return Eval(rest.Car, scope)
}

// evalAndOr implements the short-circuiting and/or of spec §4.6, keeping
// the source interpreter's quirk (§9): before evaluating a compound
// argument, the evaluator probes whether its head symbol is bound at
// all. An unresolvable head, or a literal (quote ...) form, is kept as a
// raw, unevaluated cell instead of being evaluated; if that raw form
// survives to be inspected for truthiness and isn't a quote form, the
// suppressed NameError is re-raised. A quote form that becomes the final
// (decisive, non-short-circuited) result is unwrapped to its datum, so
// (and #t 'x) returns the symbol x rather than the list (quote x).
func evalAndOr(isAnd bool, tail Any, scope *Scope) Any {
	var exprs []Any
	c, ok := tail.(*Cell)
	if !ok {
		panic(NewRuntimeError("malformed and/or"))
	}
	for c != Nil {
		exprs = append(exprs, c.Car)
		next, ok := c.Cdr.(*Cell)
		if !ok {
			panic(NewRuntimeError("malformed and/or"))
		}
		c = next
	}
	if len(exprs) == 0 {
		return isAnd
	}

	type item struct {
		raw *Cell
		exp Any
	}
	items := make([]item, 0, len(exprs))
	for _, expr := range exprs {
		if cell, ok := expr.(*Cell); ok && cell != Nil {
			if headSym, ok := cell.Car.(*Symbol); ok {
				if _, bound := scope.Lookup(headSym); !bound {
					items = append(items, item{raw: cell})
					continue
				} else if headSym == symQuote {
					items = append(items, item{raw: cell})
					continue
				}
			}
			items = append(items, item{exp: cell})
			continue
		}
		items = append(items, item{exp: expr})
	}

	var v Any
	for _, it := range items {
		if it.raw != nil {
			headSym, ok := it.raw.Car.(*Symbol)
			if !ok || headSym != symQuote {
				panic(NewNameError(rawHeadName(it.raw)))
			}
			v = it.raw
		} else {
			v = Eval(it.exp, scope)
		}
		b, isBool := v.(bool)
		if isAnd {
			if isBool && !b {
				return v
			}
		} else {
			if !isBool || b {
				return v
			}
		}
	}

	last := items[len(items)-1]
	if last.raw != nil {
		if tc, ok := last.raw.Cdr.(*Cell); ok {
			return tc.Car
		}
		return last.raw.Cdr
	}
	return v
}

func rawHeadName(cell *Cell) string {
	if sym, ok := cell.Car.(*Symbol); ok {
		return sym.String()
	}
	return "?"
}
