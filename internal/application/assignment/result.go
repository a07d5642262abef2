package assignment

import "errors"

// Result salida de un caso de uso de asignación: OK con Value, o Err con el mensaje.
type Result[T any] struct {
	OK    bool
	Value T
	Err   string
	cause error
}

// Ok resultado exitoso.
func Ok[T any](v T) Result[T] {
	return Result[T]{OK: true, Value: v}
}

// Fail resultado fallido; conserva err para que la capa HTTP pueda clasificarlo.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err.Error(), cause: err}
}

// Unwrap devuelve el valor o el error del resultado. Un Result sin OK nunca es éxito,
// aunque se haya construido sin Fail.
func (r Result[T]) Unwrap() (T, error) {
	if r.OK {
		return r.Value, nil
	}
	if r.cause != nil {
		return r.Value, r.cause
	}
	msg := r.Err
	if msg == "" {
		msg = "asignación sin resultado"
	}
	return r.Value, errors.New(msg)
}
