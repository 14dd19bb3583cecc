package payload

// Take returns the value held in slot and leaves the zero value behind.
// After Take the slot no longer refers to the value, so the caller cannot
// reuse or release it by accident.
func Take[T any](slot *T) T {
	v := *slot
	var zero T
	*slot = zero
	return v
}
