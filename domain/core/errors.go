package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions.
// Messages are shown to the user verbatim.
var (
	// Extraction errors
	ErrNoData            = errors.New("No data found in the Excel file")
	ErrInvalidNumber     = errors.New("invalid numeric value")
	ErrNegativeValue     = errors.New("negative value")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file too large")

	// Selection errors
	ErrUnknownField     = errors.New("unknown field")
	ErrInvalidSelection = errors.New("invalid axis selection")
)

// RowValueError reports a non-numeric price or sell cell.
type RowValueError struct {
	Field string // "price" or "sell"
	Row   int    // 1-based data row index
}

func (e *RowValueError) Error() string {
	return fmt.Sprintf("Invalid %s value at row %d", e.Field, e.Row)
}

func (e *RowValueError) Unwrap() error {
	return ErrInvalidNumber
}

// NegativeValueError reports a batch containing a negative price or sell.
type NegativeValueError struct {
	Field string
}

func (e *NegativeValueError) Error() string {
	return fmt.Sprintf("Found negative %s values in the data", e.Field)
}

func (e *NegativeValueError) Unwrap() error {
	return ErrNegativeValue
}

// Error constructors with context
func NewRowValueError(field string, row int) error {
	return &RowValueError{Field: field, Row: row}
}

func NewNegativeValueError(field string) error {
	return &NegativeValueError{Field: field}
}

func NewUnknownFieldError(field string) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, field)
}

func NewSelectionError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSelection, reason)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidNumber) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrNoData)
}

func IsSelectionError(err error) bool {
	return errors.Is(err, ErrUnknownField) ||
		errors.Is(err, ErrInvalidSelection)
}
