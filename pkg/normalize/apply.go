package normalize

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value
	for _, transform := range transforms {
		result = transform(result)
	}
	return result
}

// Compose freezes a transform chain into a single reusable function.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}
