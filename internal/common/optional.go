package common

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a JSON field was present, including an explicit null. It lets PATCH
// payloads tell "leave unchanged" apart from "clear".
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
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

// Null reports whether the field was present and explicitly null.
func (o Optional[T]) Null() bool {
	return o.Set && o.Value == nil
}
