package lisp

import "testing"

func TestInterpreterRunBasic(t *testing.T) {
	i := NewInterpreter()
	out, err := i.Run("(+ 1 2)")
	if err != nil {
		t.Fatal(err)
	}
	if out != "3" {
		t.Errorf("Run(\"(+ 1 2)\") = %q, want %q", out, "3")
	}
}

func TestInterpreterRunPersistsGlobalState(t *testing.T) {
	i := NewInterpreter()
	if _, err := i.Run("(define (fact n) (if (<= n 1) 1 (* n (fact (- n 1)))))"); err != nil {
		t.Fatal(err)
	}
	out, err := i.Run("(fact 5)")
	if err != nil {
		t.Fatal(err)
	}
	if out != "120" {
		t.Errorf("(fact 5) printed %q, want 120", out)
	}
}

func TestInterpreterRunSeesEarlierSetBang(t *testing.T) {
	i := NewInterpreter()
	mustRun(t, i, "(define counter 0)")
	mustRun(t, i, "(set! counter (+ counter 1))")
	out := mustRun(t, i, "(set! counter (+ counter 1))")
	if out != "()" {
		t.Errorf("set! should print () (Void), got %q", out)
	}
	out = mustRun(t, i, "counter")
	if out != "2" {
		t.Errorf("counter across separate Run calls = %q, want 2", out)
	}
}

func TestInterpreterRunSyntaxErrorOnMultipleData(t *testing.T) {
	i := NewInterpreter()
	if _, err := i.Run("1 2"); err == nil {
		t.Error("expected an error for more than one top-level datum")
	}
}

func TestInterpreterRunNameError(t *testing.T) {
	i := NewInterpreter()
	_, err := i.Run("undefined-name")
	if err == nil {
		t.Fatal("expected a name error")
	}
	if _, ok := err.(*NameError); !ok {
		t.Errorf("error type = %T, want *NameError", err)
	}
}

func TestInterpreterRunDoesNotPanicOnRuntimeError(t *testing.T) {
	i := NewInterpreter()
	_, err := i.Run("(car 5)")
	if err == nil {
		t.Fatal("expected a runtime error calling car on a non-pair")
	}
}

func mustRun(t *testing.T, i *Interpreter, src string) string {
	t.Helper()
	out, err := i.Run(src)
	if err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return out
}
