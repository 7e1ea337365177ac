package fn

// T is short for ternary: pick trueVal or falseVal by condition.
func T[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
