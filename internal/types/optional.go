// Package types contains small generic types shared across the module.
package types

// Optional holds a value that may be absent.
// The zero value is absent.
type Optional[T any] struct {
	val T
	ok  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{val: v, ok: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the held value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.val, o.ok }

// GetOr returns the held value or def when absent.
func (o Optional[T]) GetOr(def T) T {
	if !o.ok {
		return def
	}
	return o.val
}

// IsPresent reports whether a value is held.
func (o Optional[T]) IsPresent() bool { return o.ok }
