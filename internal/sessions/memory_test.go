package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "u1")
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.Put(ctx, "u1", "tok-1", time.Minute))
	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "tok-1", got)

	require.NoError(t, s.Put(ctx, "u1", "tok-2", time.Minute))
	got, err = s.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "tok-2", got)

	require.NoError(t, s.Delete(ctx, "u1"))
	_, err = s.Get(ctx, "u1")
	require.ErrorIs(t, err, ErrNoSession)
	require.NoError(t, s.Delete(ctx, "u1"))
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "u1", "tok-1", -time.Second))
	_, err := s.Get(ctx, "u1")
	require.ErrorIs(t, err, ErrNoSession)
}
