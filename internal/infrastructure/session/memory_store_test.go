package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hocus-focus/internal/domain/repository"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := s.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Create(ctx, repository.Session{UserID: "user-1", SessionID: "sid-a", Email: "a@b.c"}, time.Hour))
	got, err = s.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "sid-a", got.SessionID)

	require.NoError(t, s.Create(ctx, repository.Session{UserID: "user-1", SessionID: "sid-b"}, time.Hour))
	got, err = s.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "sid-b", got.SessionID, "a new login replaces the previous session")

	require.NoError(t, s.Delete(ctx, "user-1"))
	got, err = s.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Create(ctx, repository.Session{UserID: "u", SessionID: "x"}, time.Minute))
	now = now.Add(59 * time.Second)
	got, err := s.Get(ctx, "u")
	require.NoError(t, err)
	assert.NotNil(t, got)

	now = now.Add(time.Second)
	got, err = s.Get(ctx, "u")
	require.NoError(t, err)
	assert.Nil(t, got)
}
