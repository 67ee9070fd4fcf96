package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesExistingCode(t *testing.T) {
	inner := &APIError{
		Code:      CodeRateLimit,
		Status:    http.StatusTooManyRequests,
		Message:   "rate limited",
		RateLimit: &RateLimitInfo{Limit: 100, Remaining: 0, RetryAfter: 30},
	}

	wrapped := Wrap(inner, CodeHTTPStatus, "reworded for the user")

	assert.Equal(t, CodeRateLimit, wrapped.Code, "wrapping must not overwrite the original code")
	assert.Equal(t, http.StatusTooManyRequests, wrapped.Status)
	assert.Equal(t, "reworded for the user", wrapped.Message)
	assert.Equal(t, 30, RetryAfterOf(wrapped))
	assert.True(t, errors.Is(wrapped, inner))
}

func TestWrapPlainError(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), CodeTransport, "Falha de conexão com o servidor")

	assert.True(t, HasCode(err, CodeTransport))
	assert.Equal(t, "Falha de conexão com o servidor", err.Error())
	assert.Equal(t, 0, StatusOf(err))
}

func TestStatusOf(t *testing.T) {
	err := fmt.Errorf("caller context: %w", &APIError{Code: CodeHTTPStatus, Status: http.StatusNotFound, Message: "nope"})
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
	assert.Equal(t, 0, StatusOf(errors.New("plain")))
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(&APIError{Code: CodeTimeout, Message: "deadline"}))
	assert.False(t, IsTimeout(&APIError{Code: CodeTransport, Message: "refused"}))
	assert.False(t, IsTimeout(errors.New("plain")))
}

func TestValidationErrors(t *testing.T) {
	t.Run("extracts strings from details", func(t *testing.T) {
		e := &APIError{Body: map[string]any{
			"details": map[string]any{
				"validation_errors": []any{"Email domain not allowed", "username too short", 42},
			},
		}}
		require.Equal(t, []string{"Email domain not allowed", "username too short"}, e.ValidationErrors())
	})

	t.Run("nil body", func(t *testing.T) {
		e := &APIError{}
		assert.Nil(t, e.ValidationErrors())
	})

	t.Run("details of wrong shape", func(t *testing.T) {
		e := &APIError{Body: map[string]any{"details": "oops"}}
		assert.Nil(t, e.ValidationErrors())
	})
}

func TestBodyString(t *testing.T) {
	e := &APIError{Body: map[string]any{"code": "EXTERNAL_SERVICE_ERROR", "count": 3}}
	assert.Equal(t, "EXTERNAL_SERVICE_ERROR", e.BodyString("code"))
	assert.Empty(t, e.BodyString("count"), "non-string fields read as empty")
	assert.Empty(t, e.BodyString("missing"))
}

func TestErrorFallsBackToCode(t *testing.T) {
	e := &APIError{Code: CodeParse}
	assert.Equal(t, "parse", e.Error())
}
