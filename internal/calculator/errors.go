package calculator

import "github.com/cockroachdb/errors"

// Domain errors. The error text is the message returned to API callers.
var (
	ErrInvalidInput     = errors.New("num1 and num2 must be numbers")
	ErrInvalidOperation = errors.New("Invalid operation")
	ErrDivisionByZero   = errors.New("Cannot divide by zero")
)

// Message returns the caller-facing message for err. Wrapped domain errors
// collapse to the message of the sentinel they carry.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return ErrInvalidInput.Error()
	case errors.Is(err, ErrInvalidOperation):
		return ErrInvalidOperation.Error()
	case errors.Is(err, ErrDivisionByZero):
		return ErrDivisionByZero.Error()
	}
	return err.Error()
}

// Kind returns a stable label for err, suitable as a metric attribute.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInvalidOperation):
		return "invalid_operation"
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	}
	return "internal"
}
