// Package accounts resolves identities against the external Chatly account
// service.
//
// It owns no user state: credential verification, registration and
// Google-account linking all happen on the account service, and this package
// only maps the HTTP conversation into typed results. Failures come back as
// the authentication error taxonomy (InvalidCredentials, ServerUnreachable,
// ProviderLinkFailed, Unknown), never raw transport errors.
package accounts
