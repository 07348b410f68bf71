package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hocus-focus/internal/storage"
	"github.com/oksasatya/hocus-focus/internal/storage/storagetest"
)

func TestBackendConformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) (storage.Backend, string) {
		return NewBackend(), "docs"
	})
}

func TestUndeclaredCollection(t *testing.T) {
	b := NewBackend()
	_, _, err := b.Get(context.Background(), "ghost", "k")
	assert.ErrorIs(t, err, storage.ErrNotDeclared)
}

func TestGetAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()
	require.NoError(t, b.Declare(ctx, storage.Schema{Collection: "c"}))
	for _, k := range []string{"z", "a", "m"} {
		require.NoError(t, b.Put(ctx, "c", storage.Entry{Key: k, Data: []byte(`"` + k + `"`)}))
	}
	// replacing keeps the original position
	require.NoError(t, b.Put(ctx, "c", storage.Entry{Key: "z", Data: []byte(`"z2"`)}))

	all, err := b.GetAll(ctx, "c")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, `"z2"`, string(all[0]))
	assert.Equal(t, `"a"`, string(all[1]))
	assert.Equal(t, `"m"`, string(all[2]))
}

func TestReturnedBytesAreCopies(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()
	require.NoError(t, b.Declare(ctx, storage.Schema{Collection: "c"}))
	data := []byte(`"v"`)
	require.NoError(t, b.Put(ctx, "c", storage.Entry{Key: "k", Data: data}))
	data[1] = 'x'

	got, found, err := b.Get(ctx, "c", "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `"v"`, string(got))
}
