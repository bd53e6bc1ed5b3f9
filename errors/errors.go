package errors

import (
	"fmt"
	"net/http"
	"strings"
	"unicode"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message, safe to show to end users.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error. It is logged server-side and never serialized.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Authentication taxonomy ---

// InvalidCredentials creates an AppError for a rejected credential pair.
// The message comes from the account service and is surfaced to the user
// truncated at the first sentence boundary. An empty message falls back to
// a generic one.
func InvalidCredentials(message string) *AppError {
	if message == "" {
		message = "Invalid credentials"
	}
	return &AppError{
		Code: ErrCodeInvalidCredentials, Message: FirstSentence(message),
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// ServerUnreachable creates an AppError for an unreachable account service.
// The user sees a generic retry-later message regardless of the cause.
func ServerUnreachable() *AppError {
	return &AppError{
		Code: ErrCodeServerUnreachable, Message: "Server not responding. Please try again later.",
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
	}
}

// ProviderLinkFailed creates an AppError for a rejected OAuth account link.
// The sign-in is aborted entirely; no session is granted.
func ProviderLinkFailed() *AppError {
	return &AppError{
		Code: ErrCodeProviderLinkFailed, Message: "Could not link your account. Please try again.",
		HTTPStatus: http.StatusBadGateway, Retryable: false,
	}
}

// Unknown creates a catch-all AppError. The cause is kept for server-side
// logging while the user only ever sees the generic message.
func Unknown(message string) *AppError {
	if message == "" {
		message = "An error occurred during login. Please try again."
	}
	return &AppError{
		Code: ErrCodeUnknown, Message: message,
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
	}
}

// Unauthorized creates an AppError for a request with no valid session.
func Unauthorized() *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: "Authentication required.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// --- Validation and internal errors ---

// Validation creates an AppError for validation failures.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// MissingField creates an AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("The field '%s' is required.", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// Internal creates an AppError for unexpected internal failures. The cause
// is retained for logging; the message shown to users is generic.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "Something went wrong. Please try again.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Cause: cause,
	}
}

// FirstSentence truncates s at the first sentence boundary ('.', '!' or '?'
// followed by a space or end of string). Strings without a boundary are
// returned unchanged.
func FirstSentence(s string) string {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		rest := s[i+1:]
		if rest == "" || unicode.IsSpace(rune(rest[0])) {
			return s[:i+1]
		}
	}
	return s
}
