// Package foundation provides small generic helpers shared across gitstamp.
package foundation

// Option represents a value that may or may not be present.
// It stands in for nil checks on handles that are only set after a successful
// initialisation step. The zero value is empty.
type Option[T any] struct {
	value   T
	present bool
}

// Some creates an Option with a value.
func Some[T any](value T) Option[T] {
	return Option[T]{
		value:   value,
		present: true,
	}
}

// IsSome returns true if the Option contains a value.
func (o Option[T]) IsSome() bool {
	return o.present
}

// Get returns the value and whether it was present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}
