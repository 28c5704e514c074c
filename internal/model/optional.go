package model

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes a field that was absent from a request body from
// one that was present, possibly as JSON null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON marks the field as set. encoding/json only calls it when
// the key is present in the object.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Arg returns the value to bind as a query parameter: nil for null.
func (o Optional[T]) Arg() any {
	if o.Null {
		return nil
	}
	return o.Value
}
