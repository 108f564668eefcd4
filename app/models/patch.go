package models

import (
	"bytes"
	"encoding/json"
)

// Field is one member of a partial update. An omitted JSON key leaves Set
// false; an explicit null sets both Set and Null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON is only invoked for keys present in the payload.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// Some returns a field explicitly set to v
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a field explicitly cleared
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// Apply returns the patched value: current when omitted, the zero value when
// cleared, otherwise the new value.
func (f Field[T]) Apply(current T) T {
	if !f.Set {
		return current
	}
	return f.Value
}
