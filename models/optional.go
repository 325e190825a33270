package models

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Optional is a JSON field that tells an absent key apart from an explicit
// null. Set reports that the key was present; Value is nil for null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional holding an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// IsNull reports whether the key was present with a null value.
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Value == nil
}

// IsZero reports whether the key was absent. It lets omitzero drop absent
// fields on encode.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// column returns the value bound to the column: nil for null.
func (o Optional[T]) column() any {
	if o.Value == nil {
		return nil
	}
	return *o.Value
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return jsonNull, nil
	}
	return json.Marshal(*o.Value)
}
