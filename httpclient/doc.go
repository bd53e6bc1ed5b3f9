// Package httpclient provides the outbound HTTP client used to talk to the
// Chatly account service.
//
// Failures are classified into typed errors (timeout, connection, auth,
// validation, server) so callers can map them onto the authentication error
// taxonomy without inspecting raw transport errors. Requests are never
// retried automatically: a failed call is surfaced as-is and must be
// re-invoked explicitly by the caller.
package httpclient
