// Package patch holds helpers for partial updates, where a nil field means
// "leave as is".
package patch

// Coalesce returns *ptr when set, otherwise fallback.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Apply calls fn with *ptr when set.
func Apply[T any](ptr *T, fn func(T) error) error {
	if ptr == nil {
		return nil
	}
	return fn(*ptr)
}

// Changed reports whether ptr is set to something other than current.
func Changed[T comparable](ptr *T, current T) bool {
	return ptr != nil && *ptr != current
}
