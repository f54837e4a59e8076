package lisp

import "strconv"

// Serialize returns v's canonical printed form (spec §4.5).
func Serialize(v Any) string {
	switch x := v.(type) {
	case *Cell:
		if x == Nil {
			return "()"
		}
		return "(" + serializeListBody(x) + ")"
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		if x {
			return "#t"
		}
		return "#f"
	case *Symbol:
		return x.String()
	default:
		// Closures, closure factories and the like never print; reaching
		// here means the evaluator handed the printer something it
		// should not have.
		panic(NewRuntimeError("value has no printed form"))
	}
}

func serializeListBody(x *Cell) string {
	out := make([]byte, 0, 32)
	first := true
	for {
		if !first {
			out = append(out, ' ')
		}
		first = false
		out = append(out, Serialize(x.Car)...)
		switch cdr := x.Cdr.(type) {
		case *Cell:
			if cdr == Nil {
				return string(out)
			}
			x = cdr
			continue
		case int64, bool:
			out = append(out, " . "...)
			out = append(out, Serialize(cdr)...)
			return string(out)
		default:
			// Any other terminal atom (e.g. a bare symbol left behind by
			// set-cdr!) is dropped rather than printed, matching the
			// original printer's behavior.
			return string(out)
		}
	}
}
