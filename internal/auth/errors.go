package auth

import "errors"

// Domain errors returned by Service. They are the only contract between
// the session manager and the HTTP layer: handlers map each to a status
// code, nothing is panicked or thrown across the boundary.
var (
	// ErrValidation wraps a user-correctable input problem; the wrapped
	// message names the offending field.
	ErrValidation = errors.New("validation failed")
	// ErrEmailTaken signals a duplicate signup email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is deliberately identical for unknown email
	// and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyLoggedOut is returned by Logout when neither cookie was
	// presented.
	ErrAlreadyLoggedOut = errors.New("already logged out")
	// ErrMissingToken is returned by Refresh when no refresh cookie was
	// presented.
	ErrMissingToken = errors.New("refresh token missing")
	// ErrTokenExpired is returned by Refresh when the token's embedded
	// expiry has passed; the client must log in again.
	ErrTokenExpired = errors.New("refresh token expired")
	// ErrSessionRevoked covers every refresh token that verifies but is
	// not the stored one: superseded by rotation, removed by logout, or
	// a replay. Also used for tokens that fail verification outright.
	ErrSessionRevoked = errors.New("refresh token revoked or superseded")
	// ErrUserNotFound is returned by Profile when the subject no longer
	// exists.
	ErrUserNotFound = errors.New("user not found")
)
