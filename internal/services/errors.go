package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation failed")
	ErrInternal          = errors.New("internal error")
)

// StockError names the line that could not be served.
type StockError struct {
	ProductID string
	Name      string
	Size      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Stock Error: Only %d left for %s (%s)", e.Available, e.Name, e.Size)
}

func (e *StockError) Shortfall() int { return e.Requested - e.Available }

func (e *StockError) Is(target error) bool { return target == ErrInsufficientStock }

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

func notFound(what, id string) error { return fmt.Errorf("%s %q: %w", what, id, ErrNotFound) }
