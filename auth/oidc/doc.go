// Package oidc implements the OAuth2 Authorization Code flow against Google.
//
// Only the pieces the sign-in flow needs are implemented: building the
// authorization URL with a CSRF state, exchanging the code for tokens, and
// fetching the standard UserInfo claims. The account link itself (creating
// or matching a Chatly account for the Google identity) is the accounts
// package's job.
package oidc
