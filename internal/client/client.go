// Package client talks to the calculation service and drives the calculator
// form shown to users.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"go-chi-calculator/internal/calculator"
)

// ErrConnectivity marks failures to reach the service or read its reply.
var ErrConnectivity = errors.New("calculation service unreachable")

// fallbackErrorMessage is used when the service rejects a request without
// saying why.
const fallbackErrorMessage = "Error calculating"

// ServiceError is a rejection reported by the calculation service.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// VersionInfo is the payload of GET /version.
type VersionInfo struct {
	Version     string `json:"version"`
	Service     string `json:"service"`
	Description string `json:"description"`
}

// Client calls the calculation service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client. A nil
// client keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every call made by the client. It applies to a copy, so
// a client passed through WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Calculate asks the service to apply op to a and b.
func (c *Client) Calculate(ctx context.Context, a, b float64, op calculator.Operation) (float64, error) {
	payload, err := json.Marshal(calculator.CalculateRequest{
		Num1:      a,
		Num2:      b,
		Operation: op.String(),
	})
	if err != nil {
		// NaN and Inf have no JSON form; the service could never accept them.
		return 0, errors.Mark(errors.Wrap(err, "encode request"), calculator.ErrInvalidInput)
	}

	var out calculator.CalculateResponse
	status, err := c.do(ctx, http.MethodPost, "/calculate", payload, &out)
	if err != nil {
		return 0, err
	}

	if status != http.StatusOK {
		msg := out.Error
		if msg == "" {
			msg = fallbackErrorMessage
		}
		return 0, &ServiceError{Status: status, Message: msg}
	}

	if out.Result == nil {
		return 0, &ServiceError{Status: status, Message: "Result is not a finite number"}
	}

	return *out.Result, nil
}

// Version fetches the service's version information.
func (c *Client) Version(ctx context.Context) (VersionInfo, error) {
	var info VersionInfo
	status, err := c.do(ctx, http.MethodGet, "/version", nil, &info)
	if err != nil {
		return VersionInfo{}, err
	}
	if status != http.StatusOK {
		return VersionInfo{}, &ServiceError{Status: status, Message: fmt.Sprintf("version request failed with status %d", status)}
	}
	return info, nil
}

// do sends a request and decodes a JSON reply into out. Any response body
// that is not JSON counts as a connectivity failure.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, errors.Wrapf(err, "build %s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "%s %s", method, path), ErrConnectivity)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, errors.Mark(errors.Wrapf(err, "decode %s %s response", method, path), ErrConnectivity)
	}

	return resp.StatusCode, nil
}
