package contracts

import (
	"encoding/json"
)

// Optional holds a value that may not be known yet.
// The zero value is unknown.
type Optional[T any] struct {
	value T
	known bool
}

// Known wraps a value that is known.
func Known[T any](v T) Optional[T] {
	return Optional[T]{value: v, known: true}
}

// Unknown returns an Optional with no value.
func Unknown[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is known.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.known
}

// IsKnown reports whether a value has been set.
func (o Optional[T]) IsKnown() bool {
	return o.known
}

// OrElse returns the value if known, otherwise fallback.
func (o Optional[T]) OrElse(fallback T) T {
	if o.known {
		return o.value
	}
	return fallback
}

// MarshalJSON encodes unknown as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.known {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as unknown.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Known(v)
	return nil
}

// OptionalFromPtr converts a nullable pointer (YAML/SQL scan targets) into an Optional.
func OptionalFromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Unknown[T]()
	}
	return Known(*p)
}
