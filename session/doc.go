// Package session implements the client-held session state machine.
//
// A session is a signed JWT carrying the user's identity claims, sealed
// with authenticated encryption and encoded so it survives a cookie
// round-trip. The server keeps no session storage: every request carries
// the full session blob, and every mutation produces a replacement blob.
//
// The lifecycle is: Create mints a session from a freshly resolved user
// record, Update applies a whitelisted field patch without touching the
// identity or expiry, and Resolve opens a blob back into claims. The
// gate package consumes the same codec through auth.TokenValidator.
package session
