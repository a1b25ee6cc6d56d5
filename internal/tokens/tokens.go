package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind discriminates the two token flavours carried in the "type" claim.
// Each kind is signed with its own secret so a leaked access secret cannot
// be used to forge refresh tokens (or vice versa).
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	// ErrInvalidToken covers malformed tokens and bad signatures.
	ErrInvalidToken = errors.New("tokens: invalid token")
	// ErrTokenExpired is returned when the signature is fine but the
	// embedded expiry has passed.
	ErrTokenExpired = errors.New("tokens: token expired")
	// ErrTokenType is returned when a token of one kind is presented
	// where the other kind is expected.
	ErrTokenType = errors.New("tokens: unexpected token type")
)

// Claims is the payload signed into every token.
type Claims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Codec issues and verifies signed tokens. It is stateless: expiry is
// encoded as an absolute timestamp, so verification only needs the clock.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewCodec(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// TTL reports the configured lifetime for the given kind.
func (c *Codec) TTL(kind Kind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

func (c *Codec) secret(kind Kind) []byte {
	if kind == KindRefresh {
		return c.refreshSecret
	}
	return c.accessSecret
}

// Issue creates a signed HS256 token for the subject. The jti claim is a
// fresh UUID so two tokens issued within the same second still differ.
func (c *Codec) Issue(subject string, kind Kind) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.TTL(kind))),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret(kind))
}

// Verify checks signature, expiry and kind. A token with a bad signature
// is reported invalid even when it is also expired; a token with a good
// signature that merely expired is reported expired, never invalid.
func (c *Codec) Verify(raw string, kind Kind) (string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret(kind), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrInvalidToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		default:
			return "", ErrInvalidToken
		}
	}
	if claims.TokenType != string(kind) {
		return "", ErrTokenType
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
