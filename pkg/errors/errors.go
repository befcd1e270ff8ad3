// Package errors provides structured error handling for the application.
// It defines AppError type with error codes for consistent API responses.
package errors

import (
	"errors"
	"fmt"
)

// Error codes organized by category
const (
	// General errors (1000-1099)
	CodeSuccess       = 0
	CodeUnknown       = 1000
	CodeInvalidParams = 1001
	CodeNotFound      = 1002
	CodeUnauthorized  = 1003

	// Download/ingest errors (1100-1199)
	CodeVideoDownload  = 1100
	CodeAudioExtract   = 1101
	CodeVideoNotFound  = 1102
	CodeUnsupportedURL = 1103
	CodeVideoTooLong   = 1104

	// Transcription errors (1200-1299)
	CodeTranscribeFailed  = 1200
	CodeTranscribeTimeout = 1201

	// Highlight selection errors (1300-1399)
	CodeInsufficientContent   = 1300
	CodeNoHighlightsFound     = 1301
	CodeInvalidSelectorConfig = 1302

	// Editing errors (1400-1499)
	CodeClipCutFailed  = 1400
	CodeVerticalFailed = 1401
	CodeCaptionFailed  = 1402
	CodeHeadlineFailed = 1403

	// Storage errors (1500-1599)
	CodeDBError        = 1500
	CodeFileNotFound   = 1501
	CodeFileWriteError = 1502

	// Campaign errors (1600-1699)
	CodeCampaignNotFound = 1600
	CodeClipNotFound     = 1601

	// Twitch intake errors (1700-1799)
	CodeTwitchAuthFailed  = 1700
	CodeTwitchUserMissing = 1701
)

// AppError represents a structured application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code int, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetail wraps an error with additional detail
func WrapWithDetail(code int, message string, detail string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Detail:  detail,
		Cause:   cause,
	}
}

// Is checks if the target error is an AppError with the specified code
func Is(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts error code from error, returns CodeUnknown if not AppError
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMessage extracts message from error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Predefined common errors
var (
	ErrInvalidParams = New(CodeInvalidParams, "Invalid parameters")
	ErrNotFound      = New(CodeNotFound, "Resource not found")
	ErrUnauthorized  = New(CodeUnauthorized, "Unauthorized")

	// Download/ingest
	ErrVideoDownload = New(CodeVideoDownload, "Video download failed")
	ErrAudioExtract  = New(CodeAudioExtract, "Audio extraction failed")
	ErrVideoTooLong  = New(CodeVideoTooLong, "Source video exceeds maximum duration")

	// Transcription
	ErrTranscribeFailed  = New(CodeTranscribeFailed, "Transcription failed")
	ErrTranscribeTimeout = New(CodeTranscribeTimeout, "Transcription timeout")

	// Highlight selection
	ErrInsufficientContent   = New(CodeInsufficientContent, "Source shorter than minimum clip duration")
	ErrNoHighlightsFound     = New(CodeNoHighlightsFound, "No signal produced any highlight candidate")
	ErrInvalidSelectorConfig = New(CodeInvalidSelectorConfig, "Invalid highlight selector configuration")

	// Editing
	ErrClipCutFailed  = New(CodeClipCutFailed, "Failed to cut clip from source")
	ErrVerticalFailed = New(CodeVerticalFailed, "Failed to render vertical format")

	// Storage
	ErrDBError      = New(CodeDBError, "Database error")
	ErrFileNotFound = New(CodeFileNotFound, "File not found")

	// Campaigns
	ErrCampaignNotFound = New(CodeCampaignNotFound, "Campaign not found")
	ErrClipNotFound     = New(CodeClipNotFound, "Clip not found")
)
