// Package auth orchestrates signup, login, logout and token refresh over
// the token codec, the revocation store and the user repository. It holds
// no mutable state of its own: every session fact lives in the store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/neerajjagga/auth/internal/models"
	"github.com/neerajjagga/auth/internal/sessions"
	"github.com/neerajjagga/auth/internal/tokens"
	"github.com/neerajjagga/auth/internal/users"
	"github.com/neerajjagga/auth/pkg/logger"
	"github.com/neerajjagga/auth/pkg/metrics"
)

// TokenPair is one access + refresh token issued together, with the TTLs
// the transport needs for cookie max-age.
type TokenPair struct {
	Access     string
	Refresh    string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Service is the session manager.
type Service struct {
	users *users.Service
	codec *tokens.Codec
	store sessions.Store
}

func NewService(u *users.Service, c *tokens.Codec, s sessions.Store) *Service {
	return &Service{users: u, codec: c, store: s}
}

func validateSignup(name, email, password string) error {
	switch {
	case len(strings.TrimSpace(name)) < 3:
		return fmt.Errorf("%w: name must be at least 3 characters", ErrValidation)
	case len(password) < 6:
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return fmt.Errorf("%w: email is not valid", ErrValidation)
	}
	return nil
}

// issuePair creates a fresh access+refresh pair and stores the refresh
// token as the user's single current one, overwriting any predecessor.
func (s *Service) issuePair(ctx context.Context, userID string) (TokenPair, error) {
	access, err := s.codec.Issue(userID, tokens.KindAccess)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.codec.Issue(userID, tokens.KindRefresh)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}
	refreshTTL := s.codec.TTL(tokens.KindRefresh)
	if err := s.store.Put(ctx, userID, refresh, refreshTTL); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		Access:     access,
		Refresh:    refresh,
		AccessTTL:  s.codec.TTL(tokens.KindAccess),
		RefreshTTL: refreshTTL,
	}, nil
}

// Signup registers a user and starts a session for it.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*models.User, TokenPair, error) {
	if err := validateSignup(name, email, password); err != nil {
		return nil, TokenPair{}, err
	}
	u, err := s.users.Register(ctx, name, email, password)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			return nil, TokenPair{}, ErrEmailTaken
		}
		return nil, TokenPair{}, err
	}
	pair, err := s.issuePair(ctx, u.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	metrics.SignupsTotal.Inc()
	return u, pair, nil
}

// Login verifies credentials and starts a session, overwriting any stored
// refresh token. Only one session per user is ever active.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, TokenPair, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	pair, err := s.issuePair(ctx, u.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return u, pair, nil
}

// Logout ends the session named by the refresh cookie. Verification
// failures are intentionally swallowed: the purpose of logout is clearing
// the client's cookies, and that must succeed even with a garbage or
// expired token. Only "no cookies at all" is an error.
func (s *Service) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken == "" && refreshToken == "" {
		return ErrAlreadyLoggedOut
	}
	if refreshToken == "" {
		return nil
	}
	sub, err := s.codec.Verify(refreshToken, tokens.KindRefresh)
	if err != nil {
		logger.Debugf("logout: ignoring unverifiable refresh token: %v", err)
		return nil
	}
	if err := s.store.Delete(ctx, sub); err != nil {
		logger.Warnf("logout: failed to delete session for %s: %v", sub, err)
	}
	return nil
}

// Refresh rotates the session: it verifies the presented refresh token,
// checks it is still the stored one, and issues a new pair that replaces
// it. Rotation is mandatory, so a captured token is usable at most once;
// the losing copy's next refresh fails with ErrSessionRevoked and forces
// a visible re-login.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrMissingToken
	}
	sub, err := s.codec.Verify(refreshToken, tokens.KindRefresh)
	if err != nil {
		if errors.Is(err, tokens.ErrTokenExpired) {
			metrics.RefreshesTotal.WithLabelValues("expired").Inc()
			return TokenPair{}, ErrTokenExpired
		}
		metrics.RefreshesTotal.WithLabelValues("invalid").Inc()
		return TokenPair{}, ErrSessionRevoked
	}
	current, err := s.store.Get(ctx, sub)
	if err != nil {
		if errors.Is(err, sessions.ErrNoSession) {
			metrics.RefreshesTotal.WithLabelValues("revoked").Inc()
			return TokenPair{}, ErrSessionRevoked
		}
		// store unreachable is not a revoked session
		return TokenPair{}, err
	}
	if current != refreshToken {
		metrics.RefreshesTotal.WithLabelValues("revoked").Inc()
		return TokenPair{}, ErrSessionRevoked
	}
	pair, err := s.issuePair(ctx, sub)
	if err != nil {
		return TokenPair{}, err
	}
	metrics.RefreshesTotal.WithLabelValues("ok").Inc()
	return pair, nil
}

// Profile returns the public profile for an already-authenticated subject.
func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
