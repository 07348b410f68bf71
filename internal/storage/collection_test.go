package storage_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hocus-focus/internal/infrastructure/memory"
	"github.com/oksasatya/hocus-focus/internal/storage"
)

type countingBackend struct {
	storage.Backend
	declares atomic.Int32
	failNext atomic.Bool
}

func (b *countingBackend) Declare(ctx context.Context, s storage.Schema) error {
	b.declares.Add(1)
	if b.failNext.CompareAndSwap(true, false) {
		return errors.New("engine unavailable")
	}
	return b.Backend.Declare(ctx, s)
}

type item struct {
	ID  string `json:"id"`
	Tag string `json:"tag"`
}

func newItems(b storage.Backend) *storage.Collection[item] {
	return storage.NewCollection(b, storage.Definition[item]{
		Schema:      storage.Schema{Collection: "items", Indexes: []storage.Index{{Name: "tag"}}},
		Key:         func(i item) string { return i.ID },
		IndexValues: func(i item) map[string]string { return map[string]string{"tag": i.Tag} },
	})
}

func TestConcurrentOpenDeclaresOnce(t *testing.T) {
	b := &countingBackend{Backend: memory.NewBackend()}
	c := newItems(b)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Open(context.Background()))
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), b.declares.Load())

	_, err := c.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), b.declares.Load())
}

func TestInvalidateRedeclares(t *testing.T) {
	b := &countingBackend{Backend: memory.NewBackend()}
	c := newItems(b)
	ctx := context.Background()

	require.NoError(t, c.Open(ctx))
	c.Invalidate()
	require.NoError(t, c.Open(ctx))
	assert.Equal(t, int32(2), b.declares.Load())
}

func TestFailedOpenIsRetried(t *testing.T) {
	b := &countingBackend{Backend: memory.NewBackend()}
	b.failNext.Store(true)
	c := newItems(b)
	ctx := context.Background()

	err := c.Put(ctx, item{ID: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open items")

	require.NoError(t, c.Put(ctx, item{ID: "a", Tag: "x"}))
	got, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "x", got.Tag)
}

func TestUnknownIndexFailsBeforeBackend(t *testing.T) {
	b := &countingBackend{Backend: memory.NewBackend()}
	c := newItems(b)

	_, err := c.GetAllByIndex(context.Background(), "color", "red")
	assert.ErrorIs(t, err, storage.ErrUnknownIndex)
	assert.Zero(t, b.declares.Load())
}

func TestCompositeKey(t *testing.T) {
	k := storage.CompositeKey("user-1", "yoga-1")
	assert.NotEqual(t, storage.CompositeKey("user-1y", "oga-1"), k)
	assert.Equal(t, []string{"user-1", "yoga-1"}, storage.SplitCompositeKey(k))
}

func TestCompositeKeyPartsCannotCollide(t *testing.T) {
	a := storage.CompositeKey("a\x1fb", "c")
	b := storage.CompositeKey("a", "b\x1fc")
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, storage.CompositeKey("a:1", "b"), storage.CompositeKey("a", "1:b"))
	assert.Equal(t, []string{"a\x1fb", "c"}, storage.SplitCompositeKey(a))
	assert.Equal(t, []string{"", "x"}, storage.SplitCompositeKey(storage.CompositeKey("", "x")))
	assert.Nil(t, storage.SplitCompositeKey("9:short"))
}
