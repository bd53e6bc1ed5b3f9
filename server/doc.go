// Package server provides the HTTP server, middleware stack, and
// response envelope for the auth service.
//
// The server wires a Gin engine behind an h2c handler, applies the
// standard middleware (recovery, request id, CORS, body size, request
// logging), and exposes /health and /version. Auth routes are registered
// by the handler package.
package server
