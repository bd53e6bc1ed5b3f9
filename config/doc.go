// Package config loads the authkit service configuration.
//
// Configuration comes from three layers, later winning over earlier:
// a YAML file, a .env file, and process environment variables. Secrets
// (signing key, encryption key, OAuth client secret) are expected from
// the environment and never belong in the YAML file.
//
//	var cfg config.Config
//	err := config.Load("authkit", &cfg)
//
// Environment variables map onto nested keys with underscores, so
// SESSION_JWT_SECRET sets session.jwt.secret.
package config
