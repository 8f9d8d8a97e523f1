// Package optional は PATCH ボディで「未指定」と「null」を区別するためのフィールド型。
package optional

import (
	"bytes"
	"encoding/json"
)

// Field: Set はキーが存在したか、Null は値が null だったか
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Of[T any](v T) Field[T] { return Field[T]{Set: true, Value: v} }

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(b, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Present: 値付きで指定された
func (f Field[T]) Present() bool { return f.Set && !f.Null }

// Get: 値付きで指定されていればそれ、そうでなければ fallback
func (f Field[T]) Get(fallback T) T {
	if f.Present() {
		return f.Value
	}
	return fallback
}
