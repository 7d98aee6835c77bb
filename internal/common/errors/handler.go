// internal/common/errors/handler.go
package errors

import (
	stderrors "errors"
	"net/http"
)

// Response is the JSON envelope for a failed request.
type Response struct {
	OK    bool      `json:"ok"`
	Error string    `json:"error"`
	Code  ErrorCode `json:"code"`
}

// ErrorHandler normalizes and logs request errors.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err and returns the status and envelope to write.
// Client errors log at warn, everything else at error.
func (h *ErrorHandler) Handle(route string, err error) (int, Response) {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	fields := map[string]interface{}{
		"route":         route,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
		"status":        status,
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields)
	} else {
		h.logger.Warn("request rejected", fields)
	}

	return status, ToResponse(stdErr)
}

// Normalize ensures we always have a StandardError
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HTTPStatus maps an error code to its response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequestBody,
		ErrCodeValidationFailed,
		ErrCodeSpamDetected,
		ErrCodeInvalidProjectionInput:
		return http.StatusBadRequest
	case ErrCodeContentNotFound:
		return http.StatusNotFound
	case ErrCodeSubmissionThrottled:
		return http.StatusTooManyRequests
	case ErrCodeEmailNotConfigured:
		return http.StatusServiceUnavailable
	case ErrCodeEmailSendFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryable reports whether the client may retry the same request later.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

// ToResponse builds the response envelope.
func ToResponse(stdErr *StandardError) Response {
	return Response{OK: false, Error: stdErr.Message, Code: stdErr.Code}
}
