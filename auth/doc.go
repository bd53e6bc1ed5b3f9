// Package auth defines the token contracts shared by the session codec and
// the access gate.
//
// The gate depends on TokenValidator rather than the concrete session codec
// so alternative token formats can be dropped in without touching the
// middleware. Validated claims travel through request context via the
// authctx subpackage.
package auth
