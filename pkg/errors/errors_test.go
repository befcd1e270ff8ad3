package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	// Test without cause
	err := New(CodeVideoDownload, "Test error")
	assert.Equal(t, "[1100] Test error", err.Error())

	// Test with cause
	cause := errors.New("underlying error")
	errWithCause := Wrap(CodeVideoDownload, "Test error", cause)
	assert.Contains(t, errWithCause.Error(), "underlying error")
	assert.Contains(t, errWithCause.Error(), "1100")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(CodeTranscribeFailed, "Transcription failed", cause)

	// Test Unwrap
	assert.Equal(t, cause, err.Unwrap())

	// Test errors.Is
	assert.True(t, errors.Is(err, cause))
}

func TestIs(t *testing.T) {
	err := New(CodeNoHighlightsFound, "No highlights")

	assert.True(t, Is(err, CodeNoHighlightsFound))
	assert.False(t, Is(err, CodeVideoDownload))

	// Test with regular error
	regularErr := errors.New("regular error")
	assert.False(t, Is(regularErr, CodeNoHighlightsFound))
}

func TestGetCode(t *testing.T) {
	// AppError
	appErr := New(CodeInsufficientContent, "Too short")
	assert.Equal(t, CodeInsufficientContent, GetCode(appErr))

	// Regular error returns CodeUnknown
	regularErr := errors.New("regular error")
	assert.Equal(t, CodeUnknown, GetCode(regularErr))
}

func TestGetMessage(t *testing.T) {
	// AppError
	appErr := New(CodeFileNotFound, "File not found")
	assert.Equal(t, "File not found", GetMessage(appErr))

	// Regular error returns error message
	regularErr := errors.New("regular error message")
	assert.Equal(t, "regular error message", GetMessage(regularErr))
}

func TestWrapWithDetail(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapWithDetail(CodeVideoDownload, "Download failed", "URL: https://example.com", cause)

	assert.Equal(t, CodeVideoDownload, err.Code)
	assert.Equal(t, "Download failed", err.Message)
	assert.Equal(t, "URL: https://example.com", err.Detail)
	assert.Equal(t, cause, err.Cause)
}

func TestPredefinedErrors(t *testing.T) {
	// Verify predefined errors have correct codes
	assert.Equal(t, CodeInvalidParams, ErrInvalidParams.Code)
	assert.Equal(t, CodeVideoDownload, ErrVideoDownload.Code)
	assert.Equal(t, CodeInsufficientContent, ErrInsufficientContent.Code)
	assert.Equal(t, CodeNoHighlightsFound, ErrNoHighlightsFound.Code)
	assert.Equal(t, CodeInvalidSelectorConfig, ErrInvalidSelectorConfig.Code)
	assert.Equal(t, CodeDBError, ErrDBError.Code)
}

func TestWrapPreservesCodeThroughErrorsAs(t *testing.T) {
	inner := Wrap(CodeInsufficientContent, "Source shorter than minimum clip duration", errors.New("duration 10s"))
	outer := Wrap(CodeUnknown, "pipeline failed", inner)

	// The outermost code wins for GetCode
	assert.Equal(t, CodeUnknown, GetCode(outer))
	// But the inner code is still reachable through the chain
	assert.True(t, errors.Is(outer, inner))
}
