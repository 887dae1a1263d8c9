package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrDuplicateCode     = fmt.Errorf("%w: código de programa", ErrDuplicate)
	ErrDuplicateDocument = fmt.Errorf("%w: número de documento", ErrDuplicate)
	ErrDuplicateEmail    = fmt.Errorf("%w: correo", ErrDuplicate)
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// ValidationError agrupa todas las reglas violadas por una entrada del cliente.
type ValidationError struct {
	Messages []string
}

// NewValidationError construye el error con uno o más mensajes.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError indica que el recurso referenciado por ID no existe.
type NotFoundError struct {
	Resource string // "programa", "usuario"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("El %s con ID %s no existe", e.Resource, e.ID)
}

// Unwrap permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Unwrap() error { return ErrNotFound }
