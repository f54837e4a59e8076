package lisp

import "testing"

func TestScopeDefineAndLookup(t *testing.T) {
	s := NewScope(nil)
	x := Intern("x")
	if _, ok := s.Lookup(x); ok {
		t.Fatal("expected x to be unbound in a fresh scope")
	}
	s.Define(x, int64(10))
	v, ok := s.Lookup(x)
	if !ok || v != int64(10) {
		t.Fatalf("Lookup(x) = %v, %v; want 10, true", v, ok)
	}
}

func TestScopeLookupWalksParents(t *testing.T) {
	parent := NewScope(nil)
	y := Intern("y")
	parent.Define(y, int64(5))
	child := NewScope(parent)
	v, ok := child.Lookup(y)
	if !ok || v != int64(5) {
		t.Fatalf("child.Lookup(y) = %v, %v; want 5, true", v, ok)
	}
	if _, ok := child.LookupLocal(y); ok {
		t.Error("LookupLocal should not see parent bindings")
	}
}

func TestScopeAssignRequiresExistingBinding(t *testing.T) {
	s := NewScope(nil)
	z := Intern("z")
	if s.Assign(z, int64(1)) {
		t.Error("Assign on an unbound name should fail")
	}
	s.Define(z, int64(1))
	if !s.Assign(z, int64(2)) {
		t.Fatal("Assign on a bound name should succeed")
	}
	v, _ := s.Lookup(z)
	if v != int64(2) {
		t.Errorf("z = %v after Assign, want 2", v)
	}
}

func TestScopeAssignMutatesDefiningFrame(t *testing.T) {
	parent := NewScope(nil)
	w := Intern("w")
	parent.Define(w, int64(1))
	child := NewScope(parent)
	if !child.Assign(w, int64(9)) {
		t.Fatal("Assign should walk up to the parent frame")
	}
	if v, _ := parent.Lookup(w); v != int64(9) {
		t.Errorf("parent's w = %v, want 9", v)
	}
	if _, ok := child.LookupLocal(w); ok {
		t.Error("Assign must not create a new local binding")
	}
}
