package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Authentication errors
const (
	// ErrCodeInvalidCredentials indicates the user supplied a wrong email or password.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeServerUnreachable indicates the account service could not be reached.
	ErrCodeServerUnreachable ErrorCode = "SERVER_UNREACHABLE"
	// ErrCodeProviderLinkFailed indicates the OAuth account link was rejected.
	ErrCodeProviderLinkFailed ErrorCode = "PROVIDER_LINK_FAILED"
	// ErrCodeUnauthorized indicates the request carries no valid session.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeTokenExpired indicates the session token has expired.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken indicates the session token failed validation.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeUnknown indicates an unclassified failure during authentication.
	ErrCodeUnknown ErrorCode = "UNKNOWN"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServerUnreachable: true,
}

// IsRetryableCode reports whether the given code represents a transient
// condition the caller may retry. Retries are never performed automatically;
// this only informs the client.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
