// Package redisstore stores collections in Redis. Each record is a hash holding
// the JSON document and its index values; a key set, per-value index sets and
// a value->key hash per unique index make up the rest of the layout:
//
//	<prefix>:<collection>:r:<key>            hash  {data, i:<index>...}
//	<prefix>:<collection>:keys               set   primary keys
//	<prefix>:<collection>:i:<index>:<value>  set   primary keys
//	<prefix>:<collection>:u:<index>          hash  value -> primary key
//	<prefix>:schema:<collection>             hash  {version, indexes}
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/hocus-focus/internal/storage"
)

var _ storage.Backend = (*Backend)(nil)

const (
	fieldData   = "data"
	indexPrefix = "i:"
	// optimistic transactions are retried only on WATCH conflicts
	maxTxRetries = 8
)

type Backend struct {
	rdb    redis.UniversalClient
	prefix string

	mu      sync.RWMutex
	schemas map[string]storage.Schema
}

func NewBackend(rdb redis.UniversalClient, prefix string) *Backend {
	if prefix == "" {
		prefix = "hocus"
	}
	return &Backend{rdb: rdb, prefix: prefix, schemas: map[string]storage.Schema{}}
}

func (b *Backend) recordKey(c, key string) string { return b.prefix + ":" + c + ":r:" + key }
func (b *Backend) keysKey(c string) string        { return b.prefix + ":" + c + ":keys" }
func (b *Backend) indexKey(c, idx, v string) string {
	return b.prefix + ":" + c + ":i:" + idx + ":" + v
}
func (b *Backend) uniqueKey(c, idx string) string { return b.prefix + ":" + c + ":u:" + idx }
func (b *Backend) schemaKey(c string) string      { return b.prefix + ":schema:" + c }

// Declare records the schema in Redis the first time the collection is seen;
// an existing declaration is left untouched.
func (b *Backend) Declare(ctx context.Context, schema storage.Schema) error {
	indexes, err := json.Marshal(schema.Indexes)
	if err != nil {
		return err
	}
	key := b.schemaKey(schema.Collection)
	if _, err := b.rdb.HSetNX(ctx, key, "version", storage.SchemaVersion).Result(); err != nil {
		return err
	}
	if _, err := b.rdb.HSetNX(ctx, key, "indexes", string(indexes)).Result(); err != nil {
		return err
	}
	b.mu.Lock()
	b.schemas[schema.Collection] = schema
	b.mu.Unlock()
	return nil
}

func (b *Backend) schema(c string) (storage.Schema, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.schemas[c]
	if !ok {
		return storage.Schema{}, fmt.Errorf("%s: %w", c, storage.ErrNotDeclared)
	}
	return s, nil
}

func (b *Backend) Get(ctx context.Context, c, key string) ([]byte, bool, error) {
	if _, err := b.schema(c); err != nil {
		return nil, false, err
	}
	data, err := b.rdb.HGet(ctx, b.recordKey(c, key), fieldData).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b *Backend) GetAll(ctx context.Context, c string) ([][]byte, error) {
	if _, err := b.schema(c); err != nil {
		return nil, err
	}
	keys, err := b.rdb.SMembers(ctx, b.keysKey(c)).Result()
	if err != nil {
		return nil, err
	}
	return b.fetch(ctx, c, keys)
}

func (b *Backend) GetAllByIndex(ctx context.Context, c, index, value string) ([][]byte, error) {
	s, err := b.schema(c)
	if err != nil {
		return nil, err
	}
	if _, ok := s.Lookup(index); !ok {
		return nil, fmt.Errorf("%s index %q: %w", c, index, storage.ErrUnknownIndex)
	}
	keys, err := b.rdb.SMembers(ctx, b.indexKey(c, index, value)).Result()
	if err != nil {
		return nil, err
	}
	return b.fetch(ctx, c, keys)
}

// fetch loads documents in one pipeline. Keys removed between the set read
// and the pipeline are skipped.
func (b *Backend) fetch(ctx context.Context, c string, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return [][]byte{}, nil
	}
	pipe := b.rdb.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, k := range keys {
		cmds[i] = pipe.HGet(ctx, b.recordKey(c, k), fieldData)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	out := make([][]byte, 0, len(keys))
	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

func (b *Backend) Put(ctx context.Context, c string, e storage.Entry) error {
	s, err := b.schema(c)
	if err != nil {
		return err
	}
	rec := b.recordKey(c, e.Key)
	watched := []string{rec}
	for _, idx := range s.Indexes {
		if idx.Unique {
			watched = append(watched, b.uniqueKey(c, idx.Name))
		}
	}

	txf := func(tx *redis.Tx) error {
		old, err := tx.HGetAll(ctx, rec).Result()
		if err != nil {
			return err
		}
		for _, idx := range s.Indexes {
			v := e.Indexes[idx.Name]
			if !idx.Unique || v == "" {
				continue
			}
			owner, err := tx.HGet(ctx, b.uniqueKey(c, idx.Name), v).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			if err == nil && owner != e.Key {
				return fmt.Errorf("%s.%s=%q: %w", c, idx.Name, v, storage.ErrConstraint)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			b.unlink(ctx, pipe, s, e.Key, old)
			fields := map[string]any{fieldData: e.Data}
			for _, idx := range s.Indexes {
				v := e.Indexes[idx.Name]
				fields[indexPrefix+idx.Name] = v
				pipe.SAdd(ctx, b.indexKey(c, idx.Name, v), e.Key)
				if idx.Unique && v != "" {
					pipe.HSet(ctx, b.uniqueKey(c, idx.Name), v, e.Key)
				}
			}
			pipe.HSet(ctx, rec, fields)
			pipe.SAdd(ctx, b.keysKey(c), e.Key)
			return nil
		})
		return err
	}
	return b.watch(ctx, txf, watched...)
}

func (b *Backend) Delete(ctx context.Context, c, key string) error {
	s, err := b.schema(c)
	if err != nil {
		return err
	}
	rec := b.recordKey(c, key)
	txf := func(tx *redis.Tx) error {
		old, err := tx.HGetAll(ctx, rec).Result()
		if err != nil {
			return err
		}
		if len(old) == 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			b.unlink(ctx, pipe, s, key, old)
			pipe.Del(ctx, rec)
			pipe.SRem(ctx, b.keysKey(c), key)
			return nil
		})
		return err
	}
	return b.watch(ctx, txf, rec)
}

// unlink queues removal of the index memberships recorded in old.
func (b *Backend) unlink(ctx context.Context, pipe redis.Pipeliner, s storage.Schema, key string, old map[string]string) {
	if len(old) == 0 {
		return
	}
	for _, idx := range s.Indexes {
		v, ok := old[indexPrefix+idx.Name]
		if !ok {
			continue
		}
		pipe.SRem(ctx, b.indexKey(s.Collection, idx.Name, v), key)
		if idx.Unique && v != "" {
			// only drop the mapping we still own
			pipe.Eval(ctx, releaseUniqueScript, []string{b.uniqueKey(s.Collection, idx.Name)}, v, key)
		}
	}
}

const releaseUniqueScript = `
if redis.call("HGET", KEYS[1], ARGV[1]) == ARGV[2] then
  return redis.call("HDEL", KEYS[1], ARGV[1])
end
return 0
`

func (b *Backend) watch(ctx context.Context, txf func(*redis.Tx) error, keys ...string) error {
	var err error
	for i := 0; i < maxTxRetries; i++ {
		err = b.rdb.Watch(ctx, txf, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

func (b *Backend) Count(ctx context.Context, c string) (int, error) {
	if _, err := b.schema(c); err != nil {
		return 0, err
	}
	n, err := b.rdb.SCard(ctx, b.keysKey(c)).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Clear deletes every key of the collection except its schema declaration.
func (b *Backend) Clear(ctx context.Context, c string) error {
	if _, err := b.schema(c); err != nil {
		return err
	}
	iter := b.rdb.Scan(ctx, 0, b.prefix+":"+c+":*", 500).Iterator()
	batch := make([]string, 0, 500)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := b.rdb.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return b.rdb.Del(ctx, batch...).Err()
	}
	return nil
}
