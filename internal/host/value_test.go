package host

import "testing"

func TestEqualScalars(t *testing.T) {
	if !Equal(int64(5), int64(5)) {
		t.Fatalf("equal ints must compare equal")
	}
	if Equal(int64(5), int64(6)) {
		t.Fatalf("distinct ints must not compare equal")
	}
	if Equal(int64(1), float64(1)) {
		t.Fatalf("no numeric coercion across types")
	}
	if Equal("a", []Value{"a"}) {
		t.Fatalf("scalar and array must not compare equal")
	}
}

func TestEqualNestedArrays(t *testing.T) {
	a := []Value{int64(1), []Value{"x", "y"}}
	b := []Value{int64(1), []Value{"x", "y"}}
	if !Equal(a, b) {
		t.Fatalf("structurally identical arrays must compare equal")
	}
	b[1].([]Value)[1] = "z"
	if Equal(a, b) {
		t.Fatalf("arrays differing in a nested element must not compare equal")
	}
	if Equal([]Value{int64(1)}, []Value{int64(1), int64(2)}) {
		t.Fatalf("arrays of different length must not compare equal")
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	orig := []Value{int64(1), []Value{int64(2)}}
	cp := Clone(orig).([]Value)
	cp[0] = int64(9)
	cp[1].([]Value)[0] = int64(9)
	if orig[0] != int64(1) || orig[1].([]Value)[0] != int64(2) {
		t.Fatalf("clone must not share storage with the original: %v", orig)
	}
}
