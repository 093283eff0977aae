package calculator

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("jsonnum", func(fl validator.FieldLevel) bool {
		return isJSONNumber(fl.Field().Bytes())
	}); err != nil {
		panic(err)
	}
	return v
}

var operationRule = "required,oneof=" + strings.Join(operationWireNames(), " ")

func operationWireNames() []string {
	names := make([]string, 0, len(operationNames))
	for _, op := range Operations() {
		names = append(names, op.String())
	}
	return names
}

// isJSONNumber reports whether raw is a JSON number literal representable as
// a float64. Strings, booleans, null and containers are rejected.
func isJSONNumber(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	var f float64
	return json.Unmarshal(raw, &f) == nil
}

// DecodeRequest reads an untyped calculation payload and validates it. Checks
// run in order and the first failure wins: operand types, then the operation
// name. Division by zero is left to Calculate.
func DecodeRequest(body io.Reader) (Request, error) {
	// A map keeps key lookups exact; struct decoding would also accept
	// "NUM1" or "Num1".
	var fields map[string]json.RawMessage
	dec := json.NewDecoder(body)
	if err := dec.Decode(&fields); err != nil {
		return Request{}, errors.Mark(errors.Wrap(err, "decode request body"), ErrInvalidInput)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Request{}, errors.Mark(errors.Newf("unexpected data after request body: %v", err), ErrInvalidInput)
	}

	wire := wireRequest{
		Num1:      fields["num1"],
		Num2:      fields["num2"],
		Operation: fields["operation"],
	}

	if err := validate.Struct(&wire); err != nil {
		return Request{}, errors.Mark(errors.Wrap(err, "validate operands"), ErrInvalidInput)
	}

	var req Request
	if err := json.Unmarshal(wire.Num1, &req.Operand1); err != nil {
		return Request{}, errors.Mark(errors.Wrap(err, "num1"), ErrInvalidInput)
	}
	if err := json.Unmarshal(wire.Num2, &req.Operand2); err != nil {
		return Request{}, errors.Mark(errors.Wrap(err, "num2"), ErrInvalidInput)
	}

	var name string
	if len(wire.Operation) > 0 {
		if err := json.Unmarshal(wire.Operation, &name); err != nil {
			return Request{}, errors.Mark(errors.Wrap(err, "operation"), ErrInvalidOperation)
		}
	}
	if err := validate.Var(name, operationRule); err != nil {
		return Request{}, errors.Mark(errors.Wrapf(err, "operation %q", name), ErrInvalidOperation)
	}

	op, err := ParseOperation(name)
	if err != nil {
		return Request{}, err
	}
	req.Operation = op

	return req, nil
}

// Calculate applies the request's operation to its operands with plain
// float64 arithmetic. It has no side effects.
func Calculate(req Request) (float64, error) {
	a, b := req.Operand1, req.Operand2

	switch req.Operation {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, errors.Wrapf(ErrDivisionByZero, "%g / %g", a, b)
		}
		return a / b, nil
	}

	return 0, errors.Wrapf(ErrInvalidOperation, "operation %d", int(req.Operation))
}
