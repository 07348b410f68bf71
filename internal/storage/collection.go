package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/oksasatya/hocus-focus/internal/observability"
)

// Definition binds a record type to its schema: how to derive the primary key
// and the value of every declared index from a record.
type Definition[T any] struct {
	Schema      Schema
	Key         func(T) string
	IndexValues func(T) map[string]string
}

// Collection is a typed handle over one backend collection. The first call to
// Open declares the schema; later calls reuse the handle until Invalidate.
type Collection[T any] struct {
	def     Definition[T]
	backend Backend

	mu    sync.Mutex
	ready bool
}

// NewCollection creates a handle; nothing touches the backend until Open.
func NewCollection[T any](backend Backend, def Definition[T]) *Collection[T] {
	return &Collection[T]{def: def, backend: backend}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.def.Schema.Collection }

// Schema returns the declared schema.
func (c *Collection[T]) Schema() Schema { return c.def.Schema }

// Open declares the collection on first use. Concurrent callers block on the
// same guard, so the schema is declared once. A failed declare is not
// memoized.
func (c *Collection[T]) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return nil
	}
	started := time.Now()
	err := c.backend.Declare(ctx, c.def.Schema)
	observability.ObserveStorageOp(c.Name(), "open", started, err)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.Name(), err)
	}
	c.ready = true
	return nil
}

// Invalidate drops the cached handle; the next call re-declares.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	c.ready = false
	c.mu.Unlock()
}

// Get returns the record stored under key, or nil when there is none.
func (c *Collection[T]) Get(ctx context.Context, key string) (*T, error) {
	if err := c.Open(ctx); err != nil {
		return nil, err
	}
	started := time.Now()
	data, found, err := c.backend.Get(ctx, c.Name(), key)
	observability.ObserveStorageOp(c.Name(), "get", started, err)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", c.Name(), key, err)
	}
	if !found {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", c.Name(), key, err)
	}
	return &v, nil
}

// GetAll returns every record. Ordering is backend-defined.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	if err := c.Open(ctx); err != nil {
		return nil, err
	}
	started := time.Now()
	raw, err := c.backend.GetAll(ctx, c.Name())
	observability.ObserveStorageOp(c.Name(), "get_all", started, err)
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", c.Name(), err)
	}
	return c.decodeAll(raw)
}

// GetAllByIndex returns every record whose index field equals value.
func (c *Collection[T]) GetAllByIndex(ctx context.Context, index, value string) ([]T, error) {
	if _, ok := c.def.Schema.Lookup(index); !ok {
		return nil, fmt.Errorf("%s index %q: %w", c.Name(), index, ErrUnknownIndex)
	}
	if err := c.Open(ctx); err != nil {
		return nil, err
	}
	started := time.Now()
	raw, err := c.backend.GetAllByIndex(ctx, c.Name(), index, value)
	observability.ObserveStorageOp(c.Name(), "get_by_index", started, err)
	if err != nil {
		return nil, fmt.Errorf("get %s by %s: %w", c.Name(), index, err)
	}
	return c.decodeAll(raw)
}

// Put inserts or fully replaces the record under its primary key.
func (c *Collection[T]) Put(ctx context.Context, v T) error {
	if err := c.Open(ctx); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.Name(), err)
	}
	e := Entry{Key: c.def.Key(v), Data: data, Indexes: map[string]string{}}
	if c.def.IndexValues != nil {
		e.Indexes = c.def.IndexValues(v)
	}
	started := time.Now()
	err = c.backend.Put(ctx, c.Name(), e)
	observability.ObserveStorageOp(c.Name(), "put", started, err)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", c.Name(), e.Key, err)
	}
	return nil
}

// Delete removes the record if present.
func (c *Collection[T]) Delete(ctx context.Context, key string) error {
	if err := c.Open(ctx); err != nil {
		return err
	}
	started := time.Now()
	err := c.backend.Delete(ctx, c.Name(), key)
	observability.ObserveStorageOp(c.Name(), "delete", started, err)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", c.Name(), key, err)
	}
	return nil
}

// Count returns the number of stored records.
func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	if err := c.Open(ctx); err != nil {
		return 0, err
	}
	started := time.Now()
	n, err := c.backend.Count(ctx, c.Name())
	observability.ObserveStorageOp(c.Name(), "count", started, err)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.Name(), err)
	}
	return n, nil
}

// Clear removes every record.
func (c *Collection[T]) Clear(ctx context.Context) error {
	if err := c.Open(ctx); err != nil {
		return err
	}
	started := time.Now()
	err := c.backend.Clear(ctx, c.Name())
	observability.ObserveStorageOp(c.Name(), "clear", started, err)
	if err != nil {
		return fmt.Errorf("clear %s: %w", c.Name(), err)
	}
	return nil
}

func (c *Collection[T]) decodeAll(raw [][]byte) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, data := range raw {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
		}
		out = append(out, v)
	}
	return out, nil
}
