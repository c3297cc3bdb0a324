package typeutil

// Pointer creates a pointer from the given value without needing an
// intermediate variable. Useful for literals and for return values of other
// functions.
func Pointer[T any](v T) *T {
	return &v
}

// Value returns the value behind the pointer, or the zero value if the
// pointer is nil.
func Value[T any](p *T) T {
	return Coalesce(Zero[T](), p)
}

// Coalesce returns the value of the first non-nil pointer from the given
// list. If all pointers are nil, it returns the fallback value. This is
// useful for resolving optional fields with defaults.
func Coalesce[T any](fallback T, pointers ...*T) T {
	for _, p := range pointers {
		if p != nil {
			return *p
		}
	}

	return fallback
}

// CoalesceZero is Coalesce with the zero value of T as fallback.
func CoalesceZero[T any](pointers ...*T) T {
	return Coalesce(Zero[T](), pointers...)
}

// Zero returns the zero value for type T.
func Zero[T any]() T {
	var zero T
	return zero
}
