package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := New(ErrorTypeConfig, "store_hash is required")
	assert.Equal(t, "config: store_hash is required", err.Error())
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrorTypeConnection, "request failed")

	assert.Equal(t, "connection: request failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeInternal, "ignored"))
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeRateLimit, "throttled")

	assert.True(t, IsType(err, ErrorTypeRateLimit))
	assert.False(t, IsType(err, ErrorTypeAPI))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeRateLimit))

	// Wrapping preserves detectability of the inner type via errors.As.
	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsType(wrapped, ErrorTypeRateLimit))
}

func TestAPIError_Details(t *testing.T) {
	err := NewAPIError(502, []byte("Bad Gateway"))

	assert.True(t, IsType(err, ErrorTypeAPI))
	assert.Equal(t, 502, StatusCode(err))
	assert.Equal(t, "Bad Gateway", ResponseBody(err))
	assert.Contains(t, err.Error(), "502")
}

func TestStatusCode_NonAPIError(t *testing.T) {
	assert.Equal(t, 0, StatusCode(New(ErrorTypeParse, "bad payload")))
	assert.Equal(t, 0, StatusCode(stderrors.New("plain")))
	assert.Equal(t, "", ResponseBody(stderrors.New("plain")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(New(ErrorTypeRateLimit, "throttled")))
	assert.True(t, IsRetryable(New(ErrorTypeTimeout, "deadline")))
	assert.False(t, IsRetryable(New(ErrorTypeAPI, "bad request")))
	assert.False(t, IsRetryable(New(ErrorTypeConnection, "refused")))
	assert.False(t, IsRetryable(stderrors.New("plain")))
}

func TestError_StackCaptured(t *testing.T) {
	err := New(ErrorTypeInternal, "boom")
	assert.NotEmpty(t, err.Stack)
}
