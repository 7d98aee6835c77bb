// Package errors provides standardized error handling for the HTTP API.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequestBody ErrorCode = "INVALID_REQUEST_BODY"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"

	ErrCodeSpamDetected        ErrorCode = "SPAM_DETECTED"
	ErrCodeSubmissionThrottled ErrorCode = "SUBMISSION_THROTTLED"

	ErrCodeEmailNotConfigured ErrorCode = "EMAIL_NOT_CONFIGURED"
	ErrCodeEmailSendFailed    ErrorCode = "EMAIL_SEND_FAILED"

	ErrCodeInvalidProjectionInput ErrorCode = "INVALID_PROJECTION_INPUT"
	ErrCodeContentNotFound        ErrorCode = "CONTENT_NOT_FOUND"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var knownCodes = map[ErrorCode]bool{
	ErrCodeInvalidRequestBody:     true,
	ErrCodeValidationFailed:       true,
	ErrCodeSpamDetected:           true,
	ErrCodeSubmissionThrottled:    true,
	ErrCodeEmailNotConfigured:     true,
	ErrCodeEmailSendFailed:        true,
	ErrCodeInvalidProjectionInput: true,
	ErrCodeContentNotFound:        true,
	ErrCodeInternal:               true,
}

// IsKnownCode reports whether code belongs to the taxonomy above.
func IsKnownCode(code ErrorCode) bool {
	return knownCodes[code]
}

// User-facing messages. These are returned verbatim in API responses.
const (
	MsgInvalidJSON        = "Invalid JSON body."
	MsgSpamDetected       = "Unable to submit enquiry."
	MsgRequiredFields     = "Name, email, and message are required."
	MsgInvalidEmail       = "Please provide a valid email address."
	MsgThrottled          = "Please wait a few seconds before submitting again."
	MsgEmailNotConfigured = "Email service not configured."
	MsgEmailSendFailed    = "Unable to submit your enquiry right now. Please try again later."
	MsgInternal           = "Something went wrong. Please try again later."
)

// StandardError represents a structured application error. Message is safe
// to show to the end user; Details is for logs only.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidRequestBodyError creates a non-retryable malformed body error.
func NewInvalidRequestBodyError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequestBody,
		Message:   MsgInvalidJSON,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable validation error whose
// message is shown to the user.
func NewValidationFailedError(message, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSpamDetectedError is returned when the honeypot field is filled in.
func NewSpamDetectedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSpamDetected,
		Message:   MsgSpamDetected,
		Details:   "honeypot field populated",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionThrottledError creates a retryable cooldown error.
func NewSubmissionThrottledError(retryAfter time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionThrottled,
		Message:   MsgThrottled,
		Details:   fmt.Sprintf("retryAfter: %s", retryAfter),
		Retryable: true,
		Metadata:  map[string]interface{}{"retryAfterSeconds": int(retryAfter.Round(time.Second).Seconds())},
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailNotConfiguredError creates a non-retryable configuration error.
func NewEmailNotConfiguredError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailNotConfigured,
		Message:   MsgEmailNotConfigured,
		Details:   fmt.Sprintf("provider: %s", provider),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailSendFailedError creates a retryable provider error. The provider
// error is kept in Details and never reaches the user.
func NewEmailSendFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailSendFailed,
		Message:   MsgEmailSendFailed,
		Details:   fmt.Sprintf("provider: %s, error: %s", provider, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidProjectionInputError creates a non-retryable projection input error.
func NewInvalidProjectionInputError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidProjectionInput,
		Message:   fmt.Sprintf("Invalid value for %s.", field),
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewContentNotFoundError creates a non-retryable lookup error.
func NewContentNotFoundError(kind, key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeContentNotFound,
		Message:   fmt.Sprintf("No %s found.", kind),
		Details:   fmt.Sprintf("%s: %s", kind, key),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   MsgInternal,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "EMAIL"):
		return "PROVIDER"
	case code == ErrCodeSpamDetected || code == ErrCodeSubmissionThrottled:
		return "ABUSE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	default:
		return "OTHER"
	}
}
