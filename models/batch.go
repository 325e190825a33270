package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrEmptyPayload is returned when a request body carries neither an object
// nor an array.
var ErrEmptyPayload = errors.New("request body must be a JSON object or array")

// Batch is a request body that is either a single object or an array of
// objects. Many records which form was sent so the response can mirror it.
type Batch[T any] struct {
	Items []T
	Many  bool
}

// Single wraps one item into a [Batch].
func Single[T any](item T) Batch[T] {
	return Batch[T]{Items: []T{item}}
}

// Many wraps a list of items into a [Batch].
func Many[T any](items ...T) Batch[T] {
	if items == nil {
		items = []T{}
	}
	return Batch[T]{Items: items, Many: true}
}

// Len returns the number of items in the batch.
func (b Batch[T]) Len() int {
	return len(b.Items)
}

func (b *Batch[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ErrEmptyPayload
	}

	switch trimmed[0] {
	case '[':
		items := make([]T, 0)
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		b.Items, b.Many = items, true
	case '{':
		var item T
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return err
		}
		b.Items, b.Many = []T{item}, false
	default:
		return ErrEmptyPayload
	}

	return nil
}
