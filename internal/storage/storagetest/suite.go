// Package storagetest holds the behaviour every storage.Backend must share.
// Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hocus-focus/internal/storage"
)

type doc struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Kind  string `json:"kind"`
}

// Factory returns a fresh, empty backend and a collection name unique to the
// calling subtest.
type Factory func(t *testing.T) (storage.Backend, string)

func newCollection(b storage.Backend, name string) *storage.Collection[doc] {
	return storage.NewCollection(b, storage.Definition[doc]{
		Schema: storage.Schema{
			Collection: name,
			Indexes: []storage.Index{
				{Name: "email", Unique: true},
				{Name: "kind"},
			},
		},
		Key: func(d doc) string { return d.ID },
		IndexValues: func(d doc) map[string]string {
			return map[string]string{"email": d.Email, "kind": d.Kind}
		},
	})
}

// Run executes the conformance suite.
func Run(t *testing.T, factory Factory) {
	ctx := context.Background()

	t.Run("get missing is not an error", func(t *testing.T) {
		c := newCollection(factory(t))
		got, err := c.Get(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("put is an upsert", func(t *testing.T) {
		c := newCollection(factory(t))
		require.NoError(t, c.Put(ctx, doc{ID: "a", Email: "a@x.io", Kind: "one"}))
		require.NoError(t, c.Put(ctx, doc{ID: "a", Email: "a@x.io", Kind: "two"}))

		n, err := c.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		got, err := c.Get(ctx, "a")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "two", got.Kind)

		byOld, err := c.GetAllByIndex(ctx, "kind", "one")
		require.NoError(t, err)
		assert.Empty(t, byOld, "stale index entry must be dropped on replace")
	})

	t.Run("count tracks puts and deletes", func(t *testing.T) {
		c := newCollection(factory(t))
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, c.Put(ctx, doc{ID: id, Email: id + "@x.io", Kind: "k"}))
		}
		n, err := c.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		require.NoError(t, c.Delete(ctx, "b"))
		n, err = c.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		require.NoError(t, c.Delete(ctx, "absent"))
		n, err = c.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("secondary index lookup", func(t *testing.T) {
		c := newCollection(factory(t))
		require.NoError(t, c.Put(ctx, doc{ID: "a", Email: "a@x.io", Kind: "yoga"}))
		require.NoError(t, c.Put(ctx, doc{ID: "b", Email: "b@x.io", Kind: "yoga"}))
		require.NoError(t, c.Put(ctx, doc{ID: "c", Email: "c@x.io", Kind: "hiking"}))

		yoga, err := c.GetAllByIndex(ctx, "kind", "yoga")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, ids(yoga))

		byEmail, err := c.GetAllByIndex(ctx, "email", "c@x.io")
		require.NoError(t, err)
		require.Len(t, byEmail, 1)
		assert.Equal(t, "c", byEmail[0].ID)

		_, err = c.GetAllByIndex(ctx, "missing", "x")
		assert.ErrorIs(t, err, storage.ErrUnknownIndex)
	})

	t.Run("unique index rejects a conflicting key", func(t *testing.T) {
		c := newCollection(factory(t))
		require.NoError(t, c.Put(ctx, doc{ID: "a", Email: "same@x.io"}))
		err := c.Put(ctx, doc{ID: "b", Email: "same@x.io"})
		assert.ErrorIs(t, err, storage.ErrConstraint)

		got, err := c.Get(ctx, "b")
		require.NoError(t, err)
		assert.Nil(t, got)

		// the owner may rewrite its own value, and a freed value can be reused
		require.NoError(t, c.Put(ctx, doc{ID: "a", Email: "same@x.io", Kind: "k"}))
		require.NoError(t, c.Put(ctx, doc{ID: "a", Email: "other@x.io"}))
		require.NoError(t, c.Put(ctx, doc{ID: "b", Email: "same@x.io"}))
	})

	t.Run("delete releases unique values", func(t *testing.T) {
		c := newCollection(factory(t))
		require.NoError(t, c.Put(ctx, doc{ID: "a", Email: "u@x.io"}))
		require.NoError(t, c.Delete(ctx, "a"))
		require.NoError(t, c.Put(ctx, doc{ID: "b", Email: "u@x.io"}))
	})

	t.Run("clear empties the collection", func(t *testing.T) {
		c := newCollection(factory(t))
		require.NoError(t, c.Put(ctx, doc{ID: "a", Email: "a@x.io", Kind: "k"}))
		require.NoError(t, c.Put(ctx, doc{ID: "b", Email: "b@x.io", Kind: "k"}))
		require.NoError(t, c.Clear(ctx))

		n, err := c.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		all, err := c.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
		byKind, err := c.GetAllByIndex(ctx, "kind", "k")
		require.NoError(t, err)
		assert.Empty(t, byKind)

		require.NoError(t, c.Put(ctx, doc{ID: "c", Email: "a@x.io"}))
	})

	t.Run("composite keys round trip", func(t *testing.T) {
		c := newCollection(factory(t))
		key := storage.CompositeKey("user-1", "yoga-1")
		require.NoError(t, c.Put(ctx, doc{ID: key, Email: "", Kind: "member"}))
		got, err := c.Get(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, []string{"user-1", "yoga-1"}, storage.SplitCompositeKey(got.ID))
	})

	t.Run("redeclare keeps data", func(t *testing.T) {
		b, name := factory(t)
		c := newCollection(b, name)
		require.NoError(t, c.Put(ctx, doc{ID: "a", Email: "a@x.io"}))
		c.Invalidate()
		require.NoError(t, c.Open(ctx))
		n, err := c.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func ids(docs []doc) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}
