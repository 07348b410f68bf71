// Package storage implements the per-collection storage engine: a typed
// collection with a primary key and named secondary indexes, layered over a
// pluggable Backend (memory, Redis or Postgres).
package storage

import (
	"context"
	"strconv"
	"strings"
)

// SchemaVersion is the single schema version every backend records when a
// collection is declared.
const SchemaVersion = 1

// Index declares a secondary lookup path. Indexes are non-unique unless
// Unique is set.
type Index struct {
	Name   string `json:"name"`
	Unique bool   `json:"unique"`
}

// Schema describes one collection and its secondary indexes.
type Schema struct {
	Collection string  `json:"collection"`
	Indexes    []Index `json:"indexes"`
}

// Lookup returns the index with the given name.
func (s Schema) Lookup(name string) (Index, bool) {
	for _, idx := range s.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return Index{}, false
}

// Entry is an encoded record as a backend stores it: the primary key, the
// serialized document and the value of every declared index.
type Entry struct {
	Key     string
	Data    []byte
	Indexes map[string]string
}

// Backend is the raw key-value engine behind every collection. Each call is
// atomic on its own; sequences of calls are not.
//
// Get reports a missing key with found=false and a nil error. Delete of a
// missing key is a no-op. Put is an upsert that must reject a unique index
// value owned by another key with ErrConstraint.
type Backend interface {
	Declare(ctx context.Context, schema Schema) error
	Get(ctx context.Context, collection, key string) (data []byte, found bool, err error)
	GetAll(ctx context.Context, collection string) ([][]byte, error)
	GetAllByIndex(ctx context.Context, collection, index, value string) ([][]byte, error)
	Put(ctx context.Context, collection string, e Entry) error
	Delete(ctx context.Context, collection, key string) error
	Count(ctx context.Context, collection string) (int, error)
	Clear(ctx context.Context, collection string) error
}

// CompositeKey joins the parts of a multi-field primary key. Each part is
// length-prefixed so no choice of part contents can collide with another.
func CompositeKey(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}

// SplitCompositeKey is the inverse of CompositeKey. It returns nil for a key
// CompositeKey could not have produced.
func SplitCompositeKey(key string) []string {
	var parts []string
	for key != "" {
		i := strings.IndexByte(key, ':')
		if i <= 0 {
			return nil
		}
		n, err := strconv.Atoi(key[:i])
		if err != nil || n < 0 || i+1+n > len(key) {
			return nil
		}
		parts = append(parts, key[i+1:i+1+n])
		key = key[i+1+n:]
	}
	return parts
}
