package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a failure category independent of any single endpoint.
// These codes describe how a call failed, not what the caller should say
// about it; operation-scoped wording lives in the services.
type Code string

const (
	CodeTransport  Code = "transport"   // network unreachable, DNS, connection reset
	CodeTimeout    Code = "timeout"     // deadline exceeded before a response arrived
	CodeHTTPStatus Code = "http_status" // non-2xx response with a status code
	CodeRateLimit  Code = "rate_limit"  // http_status specialized to 429
	CodeValidation Code = "validation"  // client-side, never reached the network
	CodeParse      Code = "parse"       // response body present but not decodable
)

// RateLimitInfo is quota accounting extracted from response headers.
// All fields are non-negative.
type RateLimitInfo struct {
	Limit      int `json:"limit"`
	Remaining  int `json:"remaining"`
	ResetTime  int `json:"reset_time"`
	RetryAfter int `json:"retry_after"`
}

// APIError is a classified failure from the request engine. It carries
// enough detail for programmatic handling (Status, Code) and for human
// display (Message). Constructed per failed call, never persisted.
type APIError struct {
	Code      Code
	Message   string
	Status    int
	Header    http.Header
	Body      map[string]any
	RateLimit *RateLimitInfo
	Err       error
}

// Error implements the error interface. Message is always non-empty for
// errors built by the request engine; the code is a fallback for errors
// constructed by hand.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates an APIError with the given code and message.
func New(code Code, msg string) *APIError {
	return &APIError{Code: code, Message: msg}
}

// Wrap creates an APIError wrapping an existing error. If the wrapped
// error is already an APIError its code is preserved.
func Wrap(err error, code Code, msg string) *APIError {
	var existing *APIError
	if errors.As(err, &existing) {
		return &APIError{Code: existing.Code, Message: msg, Status: existing.Status, RateLimit: existing.RateLimit, Err: err}
	}
	return &APIError{Code: code, Message: msg, Err: err}
}

// HasCode checks whether err is an APIError with the given code.
func HasCode(err error, code Code) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not
// an APIError or the failure never produced a response.
func StatusOf(err error) int {
	var e *APIError
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// IsTimeout reports whether err is a deadline failure, as opposed to a
// generic transport failure.
func IsTimeout(err error) bool {
	return HasCode(err, CodeTimeout)
}

// RetryAfterOf returns the retry delay in seconds for a rate-limited
// call, or 0 when err carries no rate-limit metadata.
func RetryAfterOf(err error) int {
	var e *APIError
	if errors.As(err, &e) && e.RateLimit != nil {
		return e.RateLimit.RetryAfter
	}
	return 0
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var e *APIError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// BodyString returns a string field from the parsed error body, or ""
// when the body is absent or the field has another type.
func (e *APIError) BodyString(key string) string {
	if e.Body == nil {
		return ""
	}
	s, _ := e.Body[key].(string)
	return s
}

// ValidationErrors returns the details.validation_errors array from the
// parsed body, or nil when it is absent.
func (e *APIError) ValidationErrors() []string {
	if e.Body == nil {
		return nil
	}
	details, ok := e.Body["details"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := details["validation_errors"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

var _ error = (*APIError)(nil)

// Errorf is a convenience for hand-built messages.
func Errorf(code Code, format string, args ...any) *APIError {
	return &APIError{Code: code, Message: fmt.Sprintf(format, args...)}
}
