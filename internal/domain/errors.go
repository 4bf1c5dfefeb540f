// Package domain defines the error taxonomy shared by services and handlers.
// Services return these types; handlers map them to HTTP status codes without
// inspecting error strings.
package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested entity does not exist (or is
// soft-deleted and the operation requires an active one).
var ErrNotFound = errors.New("not found")

// ValidationError reports invalid caller input (zero quantity, missing
// reason, unknown enum value, ...).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError reports an order status change outside the allowed
// transition graph when no override was requested. It names both statuses so
// the admin UI can show exactly what was rejected.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition from %s to %s", e.From, e.To)
}

// InsufficientStockError reports a stock mutation that would drive the
// quantity negative while negative stock is disallowed.
type InsufficientStockError struct {
	ProductID string
	Current   int
	Requested int // effective delta that was rejected
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: have %d, adjustment %d would go negative",
		e.ProductID, e.Current, e.Requested)
}

// ConflictError reports a concurrent-modification failure detected by the
// transaction layer. Callers may retry after re-reading.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }
