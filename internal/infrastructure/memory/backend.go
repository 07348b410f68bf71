// Package memory provides an in-process storage backend used for tests,
// local development and ephemeral deployments.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/oksasatya/hocus-focus/internal/storage"
)

var _ storage.Backend = (*Backend)(nil)

type entry struct {
	data    []byte
	indexes map[string]string
	seq     uint64
}

type collection struct {
	schema  storage.Schema
	records map[string]entry
	// unique index name -> value -> owning key
	unique map[string]map[string]string
}

// Backend keeps every collection in maps guarded by one RWMutex.
type Backend struct {
	mu          sync.RWMutex
	collections map[string]*collection
	seq         uint64
}

func NewBackend() *Backend {
	return &Backend{collections: map[string]*collection{}}
}

// Declare creates the collection if absent. Redeclaring keeps the existing
// schema and data.
func (b *Backend) Declare(_ context.Context, schema storage.Schema) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.collections[schema.Collection]; ok {
		return nil
	}
	c := &collection{
		schema:  schema,
		records: map[string]entry{},
		unique:  map[string]map[string]string{},
	}
	for _, idx := range schema.Indexes {
		if idx.Unique {
			c.unique[idx.Name] = map[string]string{}
		}
	}
	b.collections[schema.Collection] = c
	return nil
}

func (b *Backend) lookup(name string) (*collection, error) {
	c, ok := b.collections[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, storage.ErrNotDeclared)
	}
	return c, nil
}

func (b *Backend) Get(_ context.Context, name, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, err := b.lookup(name)
	if err != nil {
		return nil, false, err
	}
	e, ok := c.records[key]
	if !ok {
		return nil, false, nil
	}
	return clone(e.data), true, nil
}

func (b *Backend) GetAll(_ context.Context, name string) ([][]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, err := b.lookup(name)
	if err != nil {
		return nil, err
	}
	return collect(c, func(entry) bool { return true }), nil
}

func (b *Backend) GetAllByIndex(_ context.Context, name, index, value string) ([][]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, err := b.lookup(name)
	if err != nil {
		return nil, err
	}
	if _, ok := c.schema.Lookup(index); !ok {
		return nil, fmt.Errorf("%s index %q: %w", name, index, storage.ErrUnknownIndex)
	}
	return collect(c, func(e entry) bool {
		v, ok := e.indexes[index]
		return ok && v == value
	}), nil
}

func (b *Backend) Put(_ context.Context, name string, e storage.Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.lookup(name)
	if err != nil {
		return err
	}
	for idx, owners := range c.unique {
		v := e.Indexes[idx]
		if v == "" {
			continue
		}
		if owner, ok := owners[v]; ok && owner != e.Key {
			return fmt.Errorf("%s.%s=%q: %w", name, idx, v, storage.ErrConstraint)
		}
	}

	seq := b.nextSeq()
	if old, ok := c.records[e.Key]; ok {
		seq = old.seq
		c.releaseUnique(e.Key, old)
	}
	stored := entry{data: clone(e.Data), indexes: make(map[string]string, len(e.Indexes)), seq: seq}
	for k, v := range e.Indexes {
		stored.indexes[k] = v
	}
	c.records[e.Key] = stored
	for idx, owners := range c.unique {
		if v := stored.indexes[idx]; v != "" {
			owners[v] = e.Key
		}
	}
	return nil
}

func (b *Backend) Delete(_ context.Context, name, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.lookup(name)
	if err != nil {
		return err
	}
	if old, ok := c.records[key]; ok {
		c.releaseUnique(key, old)
		delete(c.records, key)
	}
	return nil
}

func (b *Backend) Count(_ context.Context, name string) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, err := b.lookup(name)
	if err != nil {
		return 0, err
	}
	return len(c.records), nil
}

func (b *Backend) Clear(_ context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.lookup(name)
	if err != nil {
		return err
	}
	c.records = map[string]entry{}
	for idx := range c.unique {
		c.unique[idx] = map[string]string{}
	}
	return nil
}

func (b *Backend) nextSeq() uint64 {
	b.seq++
	return b.seq
}

func (c *collection) releaseUnique(key string, old entry) {
	for idx, owners := range c.unique {
		if v := old.indexes[idx]; v != "" && owners[v] == key {
			delete(owners, v)
		}
	}
}

// collect returns matching documents in insertion order.
func collect(c *collection, match func(entry) bool) [][]byte {
	matched := make([]entry, 0, len(c.records))
	for _, e := range c.records {
		if match(e) {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })
	out := make([][]byte, 0, len(matched))
	for _, e := range matched {
		out = append(out, clone(e.data))
	}
	return out
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
