package conv

// Pointer returns a pointer to a copy of value, handy for optional schema fields.
func Pointer[T any](value T) *T {
	return &value
}
