package calculator

import (
	"math"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var operandPairs = [][2]float64{
	{4, 2},
	{-3.5, 1.25},
	{0.1, 0.2},
	{1e308, 10},
	{-0.0, 7},
	{math.SmallestNonzeroFloat64, 3},
}

func TestCalculateMatchesFloatArithmetic(t *testing.T) {
	for _, p := range operandPairs {
		a, b := p[0], p[1]

		got, err := Calculate(Request{Operand1: a, Operand2: b, Operation: OpAdd})
		require.NoError(t, err)
		assert.Equal(t, a+b, got)

		got, err = Calculate(Request{Operand1: a, Operand2: b, Operation: OpSubtract})
		require.NoError(t, err)
		assert.Equal(t, a-b, got)

		got, err = Calculate(Request{Operand1: a, Operand2: b, Operation: OpMultiply})
		require.NoError(t, err)
		assert.Equal(t, a*b, got)

		got, err = Calculate(Request{Operand1: a, Operand2: b, Operation: OpDivide})
		require.NoError(t, err)
		assert.Equal(t, a/b, got)
	}
}

func TestCalculateDivideByZero(t *testing.T) {
	for _, a := range []float64{0, 1, -1, 10, math.MaxFloat64} {
		for _, zero := range []float64{0, math.Copysign(0, -1)} {
			_, err := Calculate(Request{Operand1: a, Operand2: zero, Operation: OpDivide})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDivisionByZero))
			assert.Equal(t, "Cannot divide by zero", Message(err))
			assert.Equal(t, "division_by_zero", Kind(err))
		}
	}
}

func TestCalculateRejectsUnknownOperation(t *testing.T) {
	_, err := Calculate(Request{Operand1: 1, Operand2: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOperation))
}

func TestDecodeRequest(t *testing.T) {
	got, err := DecodeRequest(strings.NewReader(`{"num1": -1.5, "num2": 2e3, "operation": "multiply"}`))
	require.NoError(t, err)
	assert.Equal(t, Request{Operand1: -1.5, Operand2: 2000, Operation: OpMultiply}, got)
}

func TestDecodeRequestInvalidInput(t *testing.T) {
	bodies := []string{
		`{"num1":"x","num2":2,"operation":"add"}`,
		`{"num1":1,"num2":"2","operation":"add"}`,
		`{"num1":null,"num2":2,"operation":"add"}`,
		`{"num2":2,"operation":"add"}`,
		`{"num1":1,"operation":"add"}`,
		`{"num1":true,"num2":2,"operation":"add"}`,
		`{"num1":[1],"num2":2,"operation":"add"}`,
		`{"num1":{},"num2":2,"operation":"add"}`,
		`{"num1":1e400,"num2":2,"operation":"add"}`,
		// operand checks come before the operation check
		`{"num1":"x","num2":2,"operation":"power"}`,
		`{"num1":"x","num2":0,"operation":"divide"}`,
		// keys are matched exactly
		`{"NUM1":4,"num2":2,"operation":"add"}`,
		`{"Num1":4,"Num2":2,"Operation":"add"}`,
		// one JSON object and nothing else
		`{"num1":4,"num2":2,"operation":"add"} trailing`,
		`{"num1":4,"num2":2,"operation":"add"}{}`,
		`{"num1":4,"num2":2,"operation":"add"} 1`,
		`null`,
		`[]`,
		`"add"`,
		`not json`,
		``,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			_, err := DecodeRequest(strings.NewReader(body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
			assert.Equal(t, "num1 and num2 must be numbers", Message(err))
			assert.Equal(t, "invalid_input", Kind(err))
		})
	}
}

func TestDecodeRequestInvalidOperation(t *testing.T) {
	bodies := []string{
		`{"num1":3,"num2":4,"operation":"power"}`,
		`{"num1":3,"num2":4,"operation":"modulo"}`,
		`{"num1":3,"num2":4,"operation":""}`,
		`{"num1":3,"num2":4,"operation":null}`,
		`{"num1":3,"num2":4}`,
		`{"num1":3,"num2":4,"operation":1}`,
		`{"num1":3,"num2":4,"operation":"ADD"}`,
		`{"num1":3,"num2":4,"operation":"add "}`,
		`{"num1":3,"num2":0,"operation":"modulo"}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			_, err := DecodeRequest(strings.NewReader(body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOperation), "got %v", err)
			assert.Equal(t, "Invalid operation", Message(err))
		})
	}
}

func TestDecodeRequestAllowsTrailingWhitespaceAndExtraKeys(t *testing.T) {
	got, err := DecodeRequest(strings.NewReader("{\"num1\":4,\"num2\":2,\"operation\":\"add\",\"note\":\"x\"}\n  "))
	require.NoError(t, err)
	assert.Equal(t, Request{Operand1: 4, Operand2: 2, Operation: OpAdd}, got)
}

func TestDecodeRequestOperationKeyIsExact(t *testing.T) {
	_, err := DecodeRequest(strings.NewReader(`{"num1":4,"num2":2,"Operation":"add"}`))
	assert.True(t, errors.Is(err, ErrInvalidOperation), "got %v", err)
}

func TestDecodeThenCalculateDivideByZero(t *testing.T) {
	req, err := DecodeRequest(strings.NewReader(`{"num1":10,"num2":0,"operation":"divide"}`))
	require.NoError(t, err)

	_, err = Calculate(req)
	assert.True(t, errors.Is(err, ErrDivisionByZero))
}

func TestParseOperation(t *testing.T) {
	for _, op := range Operations() {
		got, err := ParseOperation(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, got)
		assert.True(t, got.Valid())
	}

	_, err := ParseOperation("modulo")
	assert.True(t, errors.Is(err, ErrInvalidOperation))

	assert.False(t, Operation(0).Valid())
	assert.Equal(t, "unknown", Operation(99).String())
}

func TestMessageAndKindFallback(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, "boom", Message(err))
	assert.Equal(t, "internal", Kind(err))
}
