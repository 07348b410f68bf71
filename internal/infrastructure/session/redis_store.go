// Package session holds the server-side login session stores.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/hocus-focus/internal/domain/repository"
)

var _ repository.SessionRepository = (*RedisStore)(nil)

// RedisStore keeps each session as a hash under user:session:<id>.
type RedisStore struct {
	rdb redis.UniversalClient
}

func NewRedisStore(rdb redis.UniversalClient) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func (s *RedisStore) Create(ctx context.Context, sess repository.Session, ttl time.Duration) error {
	key := sessionKey(sess.UserID)
	fields := map[string]any{
		"user_id":    sess.UserID,
		"sid":        sess.SessionID,
		"email":      sess.Email,
		"name":       sess.Name,
		"created_at": sess.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create session %s: %w", sess.UserID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*repository.Session, error) {
	data, err := s.rdb.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", userID, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	created, _ := time.Parse(time.RFC3339Nano, data["created_at"])
	return &repository.Session{
		UserID:    data["user_id"],
		SessionID: data["sid"],
		Email:     data["email"],
		Name:      data["name"],
		CreatedAt: created,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", userID, err)
	}
	return nil
}
