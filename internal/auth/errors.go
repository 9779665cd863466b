package auth

import "errors"

// Validation and login failures. Transport collapses all of these to a generic
// unauthorized response except ErrIdentityDisabled, which is an account-state
// fact rather than a forgery hint and may be surfaced distinctly.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSignature   = errors.New("token signature invalid")
	ErrMalformedToken     = errors.New("token malformed")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUnknownSubject     = errors.New("unknown subject")
	ErrIdentityDisabled   = errors.New("identity disabled")
)
