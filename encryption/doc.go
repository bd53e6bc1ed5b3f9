// Package encryption seals the session token blob before it is handed to the
// client. The signed JWT is already tamper-proof; encryption additionally
// makes the cookie contents opaque so profile fields are not readable by
// anyone holding the cookie.
//
// Ciphertexts are base64url-encoded so they are safe to carry in cookies.
//
//	enc, err := encryption.New(secret, encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
//	blob, err := enc.Encrypt(signedJWT)
package encryption
