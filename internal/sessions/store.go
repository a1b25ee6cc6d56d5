// Package sessions tracks the single currently-valid refresh token per
// user. A refresh token that verifies cryptographically but does not match
// the stored value is treated as revoked: it was either superseded by a
// rotation, removed by logout, or aged out of the store.
package sessions

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoSession is returned by Get when no refresh token is stored
	// for the user.
	ErrNoSession = errors.New("sessions: no active session")
	// ErrStoreUnavailable wraps transport failures talking to the
	// backing store. Callers must not conflate it with a revoked
	// session: the remediation is a retry, not a re-login.
	ErrStoreUnavailable = errors.New("sessions: store unavailable")
)

// Store persists the current refresh token per user. Put fully replaces
// any previous value (last writer wins), which is the intended conflict
// resolution for concurrent refreshes.
type Store interface {
	// Put stores token as the user's current refresh token with the
	// given TTL, overwriting any previous entry.
	Put(ctx context.Context, userID, token string, ttl time.Duration) error
	// Get returns the user's current refresh token, or ErrNoSession.
	Get(ctx context.Context, userID string) (string, error)
	// Delete removes the user's entry. Deleting an absent entry is a
	// no-op.
	Delete(ctx context.Context, userID string) error
}
