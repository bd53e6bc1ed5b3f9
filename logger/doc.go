// Package logger provides structured logging for authkit built on zerolog.
//
// A single global logger is initialized from config at startup; packages
// obtain component-tagged children via WithComponent. Output is JSON by
// default with an optional human-readable console format for development.
package logger
