package lisp

import "fmt"

// Interpreter is the embedding entrypoint of spec §6: a persistent
// global scope that accumulates top-level define/set! side effects
// across successive Run calls, the same way the teacher's
// Interpreter/GlobalEnv persists across repeated ReadEvalPrintLoop
// iterations.
type Interpreter struct {
	global *Scope
}

// NewInterpreter builds an Interpreter with a fresh global scope
// populated with every built-in procedure.
func NewInterpreter() *Interpreter {
	return &Interpreter{global: NewGlobalScope()}
}

// Run reads exactly one datum from source, evaluates it against the
// interpreter's global scope, and returns its printed form. A source
// holding more than one datum, or none, is a syntax error (spec §4.1:
// "a single top-level datum"). Evaluation errors and read errors are
// both returned as error, never as a panic escaping this call.
func (i *Interpreter) Run(source string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	datum, readErr := ReadOne(source)
	if readErr != nil {
		return "", readErr
	}
	value := Eval(datum, i.global)
	return Serialize(value), nil
}

// MustRun is a convenience wrapper for callers that treat any error as
// fatal, matching the way short embedding snippets are usually shown.
func (i *Interpreter) MustRun(source string) string {
	result, err := i.Run(source)
	if err != nil {
		panic(fmt.Errorf("lisp: %w", err))
	}
	return result
}
