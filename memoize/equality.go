package memoize

import "reflect"

// EqualityFn reports whether two values should be treated as the same input.
// Implementations must be deterministic, symmetric and cheap: they run on
// every invocation of a memoized function.
type EqualityFn func(a, b any) bool

// Identical is the default EqualityFn: Go reference identity. Comparable
// values of the same type are compared with ==. Slices are identical when
// they share backing array and length; maps, channels and functions when
// they share their data pointer. Values of non-comparable struct or array
// types are never identical.
func Identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice:
		return va.Len() == vb.Len() && va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	return false
}

// tupleEqual is arity-sensitive: tuples of different lengths never match.
func tupleEqual(eq EqualityFn, stored, args []any) bool {
	if len(stored) != len(args) {
		return false
	}
	for i := range stored {
		if !eq(stored[i], args[i]) {
			return false
		}
	}
	return true
}
