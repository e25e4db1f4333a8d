package pointers

// Ptr returns the pointer to the input parameter
func Ptr[T any](v T) *T {
	return &v
}

// Map applies fn to *p and returns a pointer to the result, or nil when p is nil.
func Map[T, U any](p *T, fn func(T) U) *U {
	if p == nil {
		return nil
	}
	return Ptr(fn(*p))
}
