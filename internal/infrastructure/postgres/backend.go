package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/hocus-focus/internal/storage"
)

var _ storage.Backend = (*Backend)(nil)

const uniqueViolation = "23505"

// DB is the subset of *pgxpool.Pool the backend uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Backend stores every collection in the kv_* tables created by the
// migrations under db/migrations.
type Backend struct {
	db DB

	mu      sync.RWMutex
	schemas map[string]storage.Schema
}

func NewBackend(db DB) *Backend {
	return &Backend{db: db, schemas: map[string]storage.Schema{}}
}

func (b *Backend) Declare(ctx context.Context, schema storage.Schema) error {
	indexes, err := json.Marshal(schema.Indexes)
	if err != nil {
		return err
	}
	_, err = b.db.Exec(ctx, `
		INSERT INTO kv_collections (name, schema_version, indexes)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING
	`, schema.Collection, storage.SchemaVersion, indexes)
	if err != nil {
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
	var data []byte
	err := b.db.QueryRow(ctx, `
		SELECT data FROM kv_records WHERE collection = $1 AND key = $2
	`, c, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
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
	rows, err := b.db.Query(ctx, `
		SELECT data FROM kv_records WHERE collection = $1 ORDER BY seq
	`, c)
	if err != nil {
		return nil, err
	}
	return scanDocs(rows)
}

func (b *Backend) GetAllByIndex(ctx context.Context, c, index, value string) ([][]byte, error) {
	s, err := b.schema(c)
	if err != nil {
		return nil, err
	}
	if _, ok := s.Lookup(index); !ok {
		return nil, fmt.Errorf("%s index %q: %w", c, index, storage.ErrUnknownIndex)
	}
	rows, err := b.db.Query(ctx, `
		SELECT r.data
		FROM kv_index_entries i
		JOIN kv_records r ON r.collection = i.collection AND r.key = i.key
		WHERE i.collection = $1 AND i.index_name = $2 AND i.value = $3
		ORDER BY r.seq
	`, c, index, value)
	if err != nil {
		return nil, err
	}
	return scanDocs(rows)
}

// Put upserts the record and rewrites its index rows in one transaction. The
// partial unique index on kv_index_entries enforces unique indexes.
func (b *Backend) Put(ctx context.Context, c string, e storage.Entry) (err error) {
	s, err := b.schema(c)
	if err != nil {
		return err
	}
	tx, err := b.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `
		INSERT INTO kv_records (collection, key, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, key) DO UPDATE SET data = EXCLUDED.data
	`, c, e.Key, e.Data); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `
		DELETE FROM kv_index_entries WHERE collection = $1 AND key = $2
	`, c, e.Key); err != nil {
		return err
	}
	for _, idx := range s.Indexes {
		v := e.Indexes[idx.Name]
		if _, err = tx.Exec(ctx, `
			INSERT INTO kv_index_entries (collection, key, index_name, value, is_unique)
			VALUES ($1, $2, $3, $4, $5)
		`, c, e.Key, idx.Name, v, idx.Unique && v != ""); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				err = fmt.Errorf("%s.%s=%q: %w", c, idx.Name, v, storage.ErrConstraint)
			}
			return err
		}
	}
	return tx.Commit(ctx)
}

func (b *Backend) Delete(ctx context.Context, c, key string) error {
	if _, err := b.schema(c); err != nil {
		return err
	}
	_, err := b.db.Exec(ctx, `
		DELETE FROM kv_records WHERE collection = $1 AND key = $2
	`, c, key)
	return err
}

func (b *Backend) Count(ctx context.Context, c string) (int, error) {
	if _, err := b.schema(c); err != nil {
		return 0, err
	}
	var n int
	err := b.db.QueryRow(ctx, `
		SELECT count(*) FROM kv_records WHERE collection = $1
	`, c).Scan(&n)
	return n, err
}

func (b *Backend) Clear(ctx context.Context, c string) error {
	if _, err := b.schema(c); err != nil {
		return err
	}
	_, err := b.db.Exec(ctx, `DELETE FROM kv_records WHERE collection = $1`, c)
	return err
}

func scanDocs(rows pgx.Rows) ([][]byte, error) {
	defer rows.Close()
	out := [][]byte{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, rows.Err()
}
