package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyConfirmed  = errors.New("documento ya confirmado")
)

// ValidationError indica un campo de entrada inválido. Coincide con ErrInvalidInput vía errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError identifica el recurso que no existe.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound construye un NotFoundError.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// InsufficientStockError lleva el detalle del producto que no alcanza a cubrir la cantidad pedida.
type InsufficientStockError struct {
	ProductID string
	SKU       string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (%s): disponible %d, solicitado %d",
		e.Name, e.SKU, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// AlreadyConfirmedError se devuelve al confirmar de nuevo un documento ya aplicado al stock.
type AlreadyConfirmedError struct {
	Document string
	ID       string
	Status   string
}

func (e *AlreadyConfirmedError) Error() string {
	return fmt.Sprintf("%s %s ya está en estado %s", e.Document, e.ID, e.Status)
}

func (e *AlreadyConfirmedError) Is(target error) bool { return target == ErrAlreadyConfirmed }

// ConflictError indica una transición de estado no permitida.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Conflict construye un ConflictError con mensaje formateado.
func Conflict(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}
