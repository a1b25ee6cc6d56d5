package users

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_HashesPassword(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ann", "  Ann@X.com ", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "ann@x.com", u.Email)
	require.NotEqual(t, "secret1", u.PasswordHash, "plaintext must never be stored")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ann", "a@x.com", "secret1")
	require.NoError(t, err)

	// same address in different case still collides
	_, err = svc.Register(ctx, "Ann Again", "A@X.COM", "secret2")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Ann", "a@x.com", "secret1")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, reg.ID, u.ID)

	// unknown email and wrong password produce the same error value
	_, errUnknown := svc.Authenticate(ctx, "nobody@x.com", "secret1")
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)

	_, errWrong := svc.Authenticate(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)
	require.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestUserJSON_OmitsPasswordHash(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	u, err := svc.Register(context.Background(), "Ann", "a@x.com", "secret1")
	require.NoError(t, err)

	b, err := json.Marshal(u)
	require.NoError(t, err)
	require.NotContains(t, string(b), "secret1")
	require.NotContains(t, string(b), u.PasswordHash)
	require.NotContains(t, string(b), "passwordHash")
}
