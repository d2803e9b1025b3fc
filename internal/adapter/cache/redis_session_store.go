package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coastlinevibe/eubiosis/internal/checkout"
	"github.com/coastlinevibe/eubiosis/internal/usecase"
)

var ErrSessionNotFound = errors.New("session not found")

// RedisSessionStore keeps in-progress checkout sessions as JSON under a
// TTL. A session is only ever touched by the one caller driving it, so
// plain SET/GET is enough; no locking.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *checkout.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, "checkout:session:"+sess.ID, b, s.ttl).Err()
}

func (s *RedisSessionStore) Load(ctx context.Context, id string) (*checkout.Session, error) {
	b, err := s.rdb.Get(ctx, "checkout:session:"+id).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess checkout.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

var _ usecase.SessionStore = (*RedisSessionStore)(nil)
