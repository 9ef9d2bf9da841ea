// Package common defines shared constants and sentinel errors used across
// client and server transports. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Request-shape errors.
	ErrorInvalidArgument = errors.New("invalid argument")

	// Auth errors (invalid or malformed key).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
