package dto

import (
	"bytes"
	"encoding/json"
)

// Optional distingue un campo ausente de uno presente en el cuerpo JSON.
// Un `null` explícito se trata como ausente.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some construye un Optional presente.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON solo se invoca cuando la clave está en el JSON.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value, o.Set = zero, false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Set = true
	return nil
}

// MarshalJSON serializa el valor o null si está ausente.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr devuelve un puntero al valor o nil si está ausente.
func (o Optional[T]) Ptr() *T {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// ErrorResponse cuerpo de error HTTP con un único mensaje (404, 500, cuerpo inválido).
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// ValidationErrorResponse cuerpo de error 400 con todas las reglas violadas.
type ValidationErrorResponse struct {
	Code  string   `json:"code"`
	Error []string `json:"error"`
}
