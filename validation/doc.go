// Package validation wraps go-playground/validator for request payloads.
//
// Handlers validate bound request structs with Validate; failures come back
// as *errors.AppError values with INVALID_INPUT codes and human-readable
// per-field messages, ready for RespondWithError.
package validation
