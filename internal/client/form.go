package client

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"go-chi-calculator/internal/calculator"
)

// Messages shown on the form when a calculation cannot be displayed.
const (
	InvalidNumbersMessage = "Please enter valid numbers"
	ConnectivityMessage   = "Network error: Could not connect to backend"
)

// Calculator is the service call the form depends on.
type Calculator interface {
	Calculate(ctx context.Context, a, b float64, op calculator.Operation) (float64, error)
}

// Form is the calculator's input and output state. At most one of Result and
// Error is set at any time.
type Form struct {
	Operand1  string
	Operand2  string
	Operation calculator.Operation

	Result *float64
	Error  string
}

// NewForm returns an empty form with addition selected.
func NewForm() *Form {
	return &Form{Operation: calculator.OpAdd}
}

// Submit parses the operands and, when both are numbers, asks calc for the
// result. The outcome replaces whatever the form showed before.
func (f *Form) Submit(ctx context.Context, calc Calculator) {
	f.Result = nil
	f.Error = ""

	a, errA := parseOperand(f.Operand1)
	b, errB := parseOperand(f.Operand2)
	if errA != nil || errB != nil {
		f.Error = InvalidNumbersMessage
		return
	}

	result, err := calc.Calculate(ctx, a, b, f.Operation)
	if err != nil {
		f.Error = errorMessage(err)
		return
	}

	f.Result = &result
}

func errorMessage(err error) string {
	var serviceErr *ServiceError
	switch {
	case errors.As(err, &serviceErr):
		return serviceErr.Message
	case errors.Is(err, calculator.ErrInvalidInput):
		return InvalidNumbersMessage
	case errors.Is(err, calculator.ErrInvalidOperation):
		return calculator.ErrInvalidOperation.Error()
	}
	return ConnectivityMessage
}

// parseOperand accepts decimal or exponent notation with optional
// surrounding whitespace. NaN and infinities are not numbers here.
func parseOperand(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Newf("operand %q is not finite", text)
	}
	return v, nil
}
