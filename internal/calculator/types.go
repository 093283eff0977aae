package calculator

import "encoding/json"

// Request is a validated calculation: two operands and a known operation.
type Request struct {
	Operand1  float64
	Operand2  float64
	Operation Operation
}

// CalculateRequest is the JSON body of POST /calculate as sent by clients.
type CalculateRequest struct {
	Num1      float64 `json:"num1"`
	Num2      float64 `json:"num2"`
	Operation string  `json:"operation"`
}

// CalculateResponse is the JSON body returned by POST /calculate. Exactly one
// of Result and Error is set.
type CalculateResponse struct {
	Result *float64 `json:"result,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// wireRequest holds the raw, untyped fields of an incoming request so the
// operand types can be checked before anything is converted. A field absent
// from the body stays nil.
type wireRequest struct {
	Num1      json.RawMessage `validate:"required,jsonnum"`
	Num2      json.RawMessage `validate:"required,jsonnum"`
	Operation json.RawMessage
}
