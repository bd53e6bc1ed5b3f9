// Package errors provides unified error handling for authkit.
// It implements structured error types with machine-readable codes, HTTP
// status mapping, and an RFC 7807 style response envelope.
//
// The authentication taxonomy from the sign-in flow lives here:
// InvalidCredentials, ServerUnreachable, ProviderLinkFailed and Unknown.
// Handlers inspect errors with errors.As and never surface internal error
// text to end users.
package errors
