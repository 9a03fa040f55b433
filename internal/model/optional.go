package model

import (
	"bytes"
	"encoding/json"
)

// Optional is a JSON field that remembers whether its key was present in the
// payload and whether it was an explicit null. The zero value is "not set".
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a set, non-null Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a set Optional carrying an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Present reports whether the field was supplied with a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// Ptr returns the value as a pointer, or nil for unset and null fields.
func (o Optional[T]) Ptr() *T {
	if !o.Present() {
		return nil
	}
	v := o.Value
	return &v
}

// IsZero lets `omitzero` drop unset fields when marshaling.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// UnmarshalJSON is only called when the key is present, including for null.
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

// MarshalJSON encodes null for explicit nulls and for unset fields that were
// not dropped by `omitzero`.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
