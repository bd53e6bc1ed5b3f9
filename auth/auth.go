package auth

// TokenValidator validates a token string and returns the parsed claims.
// The access gate and handlers depend on this interface rather than the
// concrete session codec.
//
// The returned value can be any type (here, *session.SessionToken). It is
// stored in request context via authctx.Set and retrieved with authctx.Get[T].
type TokenValidator interface {
	ValidateToken(token string) (any, error)
}

// TokenValidatorFunc adapts an ordinary function to the TokenValidator interface.
type TokenValidatorFunc func(token string) (any, error)

// ValidateToken implements TokenValidator.
func (f TokenValidatorFunc) ValidateToken(token string) (any, error) {
	return f(token)
}

// TokenGenerator generates a signed token from claims.
type TokenGenerator interface {
	GenerateToken(claims any) (string, error)
}

// TokenGeneratorFunc adapts an ordinary function to the TokenGenerator interface.
type TokenGeneratorFunc func(claims any) (string, error)

// GenerateToken implements TokenGenerator.
func (f TokenGeneratorFunc) GenerateToken(claims any) (string, error) {
	return f(claims)
}

// NewValidator creates a TokenValidator from a validation function.
func NewValidator(fn func(string) (any, error)) TokenValidator {
	return TokenValidatorFunc(fn)
}
