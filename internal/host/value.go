package host

// Value carries one field value across the host boundary. Scalars are
// bool, int64, float64, or string; arrays are []Value and may nest.
type Value = any

// Equal compares two values, descending into arrays. Scalars of
// different dynamic types are never equal (no numeric coercion).
func Equal(a, b Value) bool {
	as, aok := a.([]Value)
	bs, bok := b.([]Value)
	if aok != bok {
		return false
	}
	if aok {
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}

// Clone deep-copies a value so staged edits never alias committed state.
func Clone(v Value) Value {
	vs, ok := v.([]Value)
	if !ok {
		return v
	}
	out := make([]Value, len(vs))
	for i := range vs {
		out[i] = Clone(vs[i])
	}
	return out
}

// IsArray reports whether the value is an ordered collection.
func IsArray(v Value) bool {
	_, ok := v.([]Value)
	return ok
}
