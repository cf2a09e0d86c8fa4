package domain

import "encoding/json"

// Optional is a tri-state patch field: absent, explicit null, or a
// value. Nullable columns need the distinction because a client clears
// them by sending null, which a plain pointer cannot tell apart from an
// omitted key.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// OptionalOf returns a set Optional holding v.
func OptionalOf[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// OptionalNull returns a set Optional holding an explicit null.
func OptionalNull[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON marks the field as set. A JSON null leaves Value nil.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON encodes the held value, or null when cleared or unset.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
